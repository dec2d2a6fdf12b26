package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/service"
	"github.com/scholaris/sis-portal-api/internal/utils"
)

// SystemLogHandler exposes the operator log view.
type SystemLogHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewSystemLogHandler constructs the handler.
func NewSystemLogHandler(service service.AuditService, logger zerolog.Logger) *SystemLogHandler {
	return &SystemLogHandler{
		service: service,
		logger:  logger.With().Str("component", "system_log_handler").Logger(),
	}
}

// Register attaches the log routes to the router group.
func (h *SystemLogHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *SystemLogHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	req := dto.SystemLogListRequest{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Limit:    limit,
	}

	response, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list system logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list system logs")
	}

	return utils.SendSuccess(c, "system logs retrieved", response)
}
