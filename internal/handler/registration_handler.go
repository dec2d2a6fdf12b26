package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/service"
	"github.com/scholaris/sis-portal-api/internal/utils"
)

// RegistrationHandler wires the public submission route and the registrar
// decision routes.
type RegistrationHandler struct {
	service service.RegistrationService
	logger  zerolog.Logger
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(service service.RegistrationService, logger zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
		logger:  logger.With().Str("component", "registration_handler").Logger(),
	}
}

// Register attaches registrar routes to the router group.
func (h *RegistrationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/:id/approve", h.approve)
	router.Post("/:id/reject", h.reject)
}

// RegisterPublic attaches the forms submission route.
func (h *RegistrationHandler) RegisterPublic(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *RegistrationHandler) submit(c *fiber.Ctx) error {
	var payload dto.RegistrationSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	registration, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccessCodeInvalid):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrYearLevelNotFound):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to submit registration")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit registration")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registration submitted", registration)
}

func (h *RegistrationHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if page <= 0 {
		page = 1
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if pageSize <= 0 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}

	req := dto.RegistrationListRequest{
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	response, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list registrations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list registrations")
	}

	return utils.SendSuccess(c, "registrations retrieved", response)
}

func (h *RegistrationHandler) approve(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	decision, err := h.service.Approve(c.Context(), id, auditActorFromContext(c))
	if err != nil {
		return h.sendDecisionError(c, err, "failed to approve registration")
	}

	return utils.SendSuccess(c, "registration approved", decision)
}

func (h *RegistrationHandler) reject(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.RegistrationRejectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	decision, err := h.service.Reject(c.Context(), id, payload.Reason, auditActorFromContext(c))
	if err != nil {
		return h.sendDecisionError(c, err, "failed to reject registration")
	}

	return utils.SendSuccess(c, "registration rejected", decision)
}

func (h *RegistrationHandler) sendDecisionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrRegistrationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRegistrationAlreadyApproved),
		errors.Is(err, service.ErrRegistrationAlreadyRejected):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
