package handlers

import (
	"errors"

	"github.com/acmelabs/launchpad/internal/dto"
	"github.com/acmelabs/launchpad/internal/services"
	"github.com/acmelabs/launchpad/internal/token"
	"github.com/gofiber/fiber/v2"
)

type OnboardingHandler struct {
	onboarding *services.OnboardingService
	tokens     *token.Service
}

func NewOnboardingHandler(onboarding *services.OnboardingService, tokens *token.Service) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding, tokens: tokens}
}

func (h *OnboardingHandler) Onboard(c *fiber.Ctx) error {
	var req dto.OnboardingRequest
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

	result, err := h.onboarding.Onboard(c.Context(), services.OnboardingInput{
		LicenseKey:  req.LicenseKey,
		CompanyName: req.CompanyName,
		CompanyURL:  req.CompanyURL,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLicense):
			return badRequest(c, "Invalid license key")
		case errors.Is(err, services.ErrLicenseExpired):
			return badRequest(c, "License has expired")
		case errors.Is(err, services.ErrLicenseUsed):
			return conflict(c, "License key already used")
		case errors.Is(err, services.ErrEmailTaken):
			return conflict(c, "Email already registered")
		case errors.Is(err, services.ErrSlugTaken):
			return conflict(c, "Company name already in use")
		default:
			return fiber.ErrInternalServerError
		}
	}

	if err := issueSession(c, h.tokens, result.UserID, result.Email, result.TenantID); err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OnboardingResponse{
		Success:  true,
		UserID:   result.UserID,
		TenantID: result.TenantID,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: message})
}
