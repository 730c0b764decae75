package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/KataCreate/report-sys/internal/auth"
	"github.com/KataCreate/report-sys/internal/middleware"
	"github.com/KataCreate/report-sys/internal/model"
	"github.com/KataCreate/report-sys/internal/service"
)

type AuthHandler struct {
	svc *service.SignupService
}

func NewAuthHandler(svc *service.SignupService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	var req model.SignUpRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	email, msg := middleware.ValidateEmail(req.Email)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_EMAIL", msg)
	}
	if len(req.Password) < 8 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	session, err := h.svc.SignUp(c.Context(), email, req.Password)
	if err != nil {
		return providerErrorResponse(c, err, "Failed to sign up")
	}

	return c.Status(fiber.StatusCreated).JSON(sessionResponse(session))
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(c fiber.Ctx) error {
	var req model.SignInRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	email, msg := middleware.ValidateEmail(req.Email)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_EMAIL", msg)
	}
	if req.Password == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PASSWORD", "Password is required")
	}

	session, err := h.svc.SignIn(c.Context(), email, req.Password)
	if err != nil {
		return providerErrorResponse(c, err, "Failed to sign in")
	}

	return c.JSON(sessionResponse(session))
}

func sessionResponse(s *auth.Session) model.SessionResponse {
	return model.SessionResponse{
		UserID:      s.User.ID,
		Email:       s.User.Email,
		AccessToken: s.AccessToken,
	}
}

// providerErrorResponse maps identity-provider errors onto the API envelope.
// Client-caused provider statuses pass through; anything else is a 502.
func providerErrorResponse(c fiber.Ctx, err error, fallback string) error {
	var pe *auth.ProviderError
	if errors.As(err, &pe) {
		if pe.Status >= 400 && pe.Status < 500 {
			return middleware.ErrorResponse(c, pe.Status, "AUTH_ERROR", pe.Message)
		}
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "AUTH_PROVIDER_ERROR", "Identity provider request failed")
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}
