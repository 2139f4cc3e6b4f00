package middleware

import (
	"github.com/acmelabs/launchpad/internal/config"
	"github.com/acmelabs/launchpad/internal/dto"
	"github.com/acmelabs/launchpad/internal/token"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const claimsKey = "claims"

// AccessGuard protects a route with the access_token cookie. The
// verified claims end up in locals under claimsKey for handlers to read
// via CurrentClaims. A refresh token presented here is rejected.
func AccessGuard(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "cookie:" + token.AccessCookie,
		SuccessHandler: func(c *fiber.Ctx) error {
			jwtToken, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c, "Invalid or expired token")
			}
			claims, err := token.FromJWT(jwtToken)
			if err != nil || claims.Kind != token.KindAccess {
				return unauthorized(c, "Invalid or expired token")
			}
			c.Locals(claimsKey, claims)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if c.Cookies(token.AccessCookie) == "" {
				return unauthorized(c, "No access token provided")
			}
			return unauthorized(c, "Invalid or expired token")
		},
	})
}

// CurrentClaims returns the claims AccessGuard stored for this request.
func CurrentClaims(c *fiber.Ctx) (*token.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*token.Claims)
	return claims, ok
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
