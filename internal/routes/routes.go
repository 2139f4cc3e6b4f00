package routes

import (
	"time"

	"github.com/acmelabs/launchpad/internal/config"
	"github.com/acmelabs/launchpad/internal/handlers"
	"github.com/acmelabs/launchpad/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	onboardingHandler *handlers.OnboardingHandler,
	healthHandler *handlers.HealthHandler,
) {
	v1 := app.Group("/v1")

	// General API rate limiter: 60 req/min per IP
	v1.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	v1.Get("/health", healthHandler.Check)

	// Credential-bearing endpoints get a stricter limit: 10 req/min per IP
	strict := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	auth := v1.Group("/auth")
	auth.Post("/login", strict, authHandler.Login)
	auth.Post("/refresh", strict, authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.AccessGuard(cfg), authHandler.Me)

	v1.Post("/onboarding", strict, onboardingHandler.Onboard)
}
