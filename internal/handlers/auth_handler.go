package handlers

import (
	"errors"

	"github.com/acmelabs/launchpad/internal/dto"
	"github.com/acmelabs/launchpad/internal/middleware"
	"github.com/acmelabs/launchpad/internal/services"
	"github.com/acmelabs/launchpad/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService *services.AuthService
	tokens      *token.Service
}

func NewAuthHandler(authService *services.AuthService, tokens *token.Service) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if fields := req.Validate(); len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed", Fields: fields,
		})
	}

	user, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid credentials",
			})
		}
		return fiber.ErrInternalServerError
	}

	if err := h.issueSession(c, user.ID, user.Email, user.TenantID); err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{"message": "Login successful"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired token",
		})
	}

	user, err := h.authService.GetUser(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return fiber.ErrInternalServerError
	}

	return c.JSON(dto.MeResponse{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Tenant:   dto.TenantInfo{Name: user.Tenant.Name},
	})
}

// Refresh exchanges a valid refresh cookie for a fresh token pair.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	raw := c.Cookies(token.RefreshCookie)
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "No refresh token provided",
		})
	}

	claims, err := h.tokens.Verify(raw)
	if err != nil || claims.Kind != token.KindRefresh {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired token",
		})
	}

	// The subject may have been deleted since the token was issued.
	user, err := h.authService.GetUser(c.Context(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired token",
		})
	}

	if err := h.issueSession(c, user.ID, user.Email, user.TenantID); err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{"message": "Token refreshed"})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.tokens.ClearCookies(c)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) issueSession(c *fiber.Ctx, userID uuid.UUID, email string, tenantID uuid.UUID) error {
	return issueSession(c, h.tokens, userID, email, tenantID)
}

// issueSession signs an access/refresh pair and attaches both cookies.
// Shared with the onboarding handler, which establishes a session the
// moment redemption succeeds.
func issueSession(c *fiber.Ctx, tokens *token.Service, userID uuid.UUID, email string, tenantID uuid.UUID) error {
	access, err := tokens.Issue(userID, email, tenantID, token.KindAccess)
	if err != nil {
		return err
	}
	refresh, err := tokens.Issue(userID, email, tenantID, token.KindRefresh)
	if err != nil {
		return err
	}
	tokens.AttachCookie(c, access, token.KindAccess)
	tokens.AttachCookie(c, refresh, token.KindRefresh)
	return nil
}
