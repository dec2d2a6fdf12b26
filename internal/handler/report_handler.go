package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/scholaris/sis-portal-api/internal/service"
	"github.com/scholaris/sis-portal-api/internal/utils"
)

// ReportHandler exposes the admin dashboard report.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches report routes to the router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/summary", h.summary)
}

func (h *ReportHandler) summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context(), auditActorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build report summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build report summary")
	}

	return utils.SendSuccess(c, "report summary generated", summary)
}
