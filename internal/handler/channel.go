package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/KataCreate/report-sys/internal/middleware"
	"github.com/KataCreate/report-sys/internal/model"
	"github.com/KataCreate/report-sys/internal/service"
	"github.com/KataCreate/report-sys/internal/youtube"
)

type ChannelHandler struct {
	svc *service.ChannelService
}

func NewChannelHandler(svc *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// Add handles POST /api/channels
func (h *ChannelHandler) Add(c fiber.Ctx) error {
	var req model.AddChannelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	channelID, msg := middleware.ValidateChannelID(req.ChannelID)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CHANNEL_ID", msg)
	}

	channel, err := h.svc.Add(c.Context(), channelID, middleware.AuthUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrChannelExists) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ALREADY_REGISTERED", "Channel is already registered")
		}
		if errors.Is(err, youtube.ErrChannelNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found on YouTube")
		}
		var upstream *youtube.UpstreamError
		if errors.As(err, &upstream) {
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "YouTube API request failed")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register channel")
	}

	return c.Status(fiber.StatusCreated).JSON(channel)
}

// List handles GET /api/channels?active=true
func (h *ChannelHandler) List(c fiber.Ctx) error {
	var (
		channels []model.Channel
		err      error
	)
	if fiber.Query[string](c, "active") == "true" {
		channels, err = h.svc.ListActive(c.Context())
	} else {
		channels, err = h.svc.List(c.Context())
	}
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list channels")
	}

	return c.JSON(fiber.Map{"channels": channels, "count": len(channels)})
}

// SetActive handles PATCH /api/channels/:channelId
func (h *ChannelHandler) SetActive(c fiber.Ctx) error {
	channelID, msg := middleware.ValidateChannelID(c.Params("channelId"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CHANNEL_ID", msg)
	}

	var req model.UpdateChannelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	if err := h.svc.SetActive(c.Context(), channelID, req.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not registered")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update channel")
	}

	return c.JSON(fiber.Map{"success": true, "isActive": req.IsActive})
}

// Delete handles DELETE /api/channels/:channelId
func (h *ChannelHandler) Delete(c fiber.Ctx) error {
	channelID, msg := middleware.ValidateChannelID(c.Params("channelId"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CHANNEL_ID", msg)
	}

	if err := h.svc.Delete(c.Context(), channelID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not registered")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete channel")
	}

	return c.JSON(fiber.Map{"success": true})
}
