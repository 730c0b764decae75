package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/KataCreate/report-sys/internal/middleware"
	"github.com/KataCreate/report-sys/internal/model"
	"github.com/KataCreate/report-sys/internal/repository"
	"github.com/KataCreate/report-sys/internal/service"
	"github.com/KataCreate/report-sys/internal/youtube"
)

type ReportHandler struct {
	svc          *service.ReportService
	defaultLimit int
}

func NewReportHandler(svc *service.ReportService, defaultLimit int) *ReportHandler {
	if defaultLimit < 1 {
		defaultLimit = repository.DefaultReportLimit
	}
	return &ReportHandler{svc: svc, defaultLimit: defaultLimit}
}

// Generate handles POST /api/reports/generate
func (h *ReportHandler) Generate(c fiber.Ctx) error {
	var req model.GenerateReportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	channelID, msg := middleware.ValidateChannelID(req.ChannelID)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CHANNEL_ID", msg)
	}
	if msg := middleware.ValidateYearMonth(req.Year, req.Month); msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PERIOD", msg)
	}

	outcome, err := h.svc.Generate(c.Context(), channelID, req.Year, req.Month)
	if err != nil {
		Metrics.ReportsGenerated.WithLabelValues("aborted").Inc()

		if errors.Is(err, youtube.ErrChannelNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
		}
		var upstream *youtube.UpstreamError
		if errors.As(err, &upstream) {
			return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "YouTube API request failed")
		}
		var persist *repository.PersistenceError
		if errors.As(err, &persist) {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to save report")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate report")
	}

	if outcome.SummaryError != "" {
		Metrics.ReportsGenerated.WithLabelValues("without_narrative").Inc()
		Metrics.SummaryFailures.Inc()
	} else {
		Metrics.ReportsGenerated.WithLabelValues("with_narrative").Inc()
	}

	return c.Status(fiber.StatusCreated).JSON(model.GenerateReportResponse{
		Success:      true,
		Report:       outcome.Report,
		Summary:      outcome.Narrative,
		SummaryError: outcome.SummaryError,
	})
}

// List handles GET /api/reports?limit=N
func (h *ReportHandler) List(c fiber.Ctx) error {
	limit := h.defaultLimit
	if raw := fiber.Query[string](c, "limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer between 1 and 100")
		}
		limit = n
	}

	reports, err := h.svc.List(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reports")
	}

	return c.JSON(fiber.Map{"reports": reports, "count": len(reports)})
}

// Get handles GET /api/reports/:id
func (h *ReportHandler) Get(c fiber.Ctx) error {
	id, msg := middleware.ValidateReportID(c.Params("id"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REPORT_ID", msg)
	}

	report, err := h.svc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Report not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch report")
	}

	return c.JSON(report)
}

// Delete handles DELETE /api/reports/:id
func (h *ReportHandler) Delete(c fiber.Ctx) error {
	id, msg := middleware.ValidateReportID(c.Params("id"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REPORT_ID", msg)
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Report not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete report")
	}

	return c.JSON(fiber.Map{"success": true})
}

// Videos handles GET /api/reports/:id/videos
func (h *ReportHandler) Videos(c fiber.Ctx) error {
	id, msg := middleware.ValidateReportID(c.Params("id"))
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REPORT_ID", msg)
	}

	videos, err := h.svc.Videos(c.Context(), id)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list report videos")
	}

	return c.JSON(fiber.Map{"videos": videos, "count": len(videos)})
}

// Stats handles GET /api/reports/stats
func (h *ReportHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute report stats")
	}

	return c.JSON(stats)
}
