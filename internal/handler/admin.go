package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/KataCreate/report-sys/internal/middleware"
	"github.com/KataCreate/report-sys/internal/service"
)

type AdminHandler struct {
	svc *service.SignupService
}

func NewAdminHandler(svc *service.SignupService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.svc.AdminUsers(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list admin users")
	}

	return c.JSON(fiber.Map{"users": users, "count": len(users)})
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_USER_ID", "User ID must be a UUID")
	}

	if err := h.svc.DeleteAdminUser(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Admin user not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete admin user")
	}

	return c.JSON(fiber.Map{"success": true})
}
