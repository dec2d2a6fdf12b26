package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/service"
	"github.com/scholaris/sis-portal-api/internal/utils"
)

// AccessCodeHandler wires the public validation route and the admin code
// management routes.
type AccessCodeHandler struct {
	service service.AccessCodeService
	logger  zerolog.Logger
}

// NewAccessCodeHandler constructs the handler.
func NewAccessCodeHandler(service service.AccessCodeService, logger zerolog.Logger) *AccessCodeHandler {
	return &AccessCodeHandler{
		service: service,
		logger:  logger.With().Str("component", "access_code_handler").Logger(),
	}
}

// Register attaches admin access code routes to the router group.
func (h *AccessCodeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Post("/:id/deactivate", h.deactivate)
}

// RegisterPublic attaches the forms validation route.
func (h *AccessCodeHandler) RegisterPublic(router fiber.Router) {
	router.Post("/validate", h.validate)
}

func (h *AccessCodeHandler) validate(c *fiber.Ctx) error {
	var payload dto.AccessCodeValidateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Validate(c.Context(), payload.Code)
	if err != nil {
		if errors.Is(err, service.ErrAccessCodeInvalid) {
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to validate access code")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to validate access code")
	}

	return utils.SendSuccess(c, "access code valid", result)
}

func (h *AccessCodeHandler) list(c *fiber.Ctx) error {
	response, err := h.service.List(c.Context(), auditActorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list access codes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list access codes")
	}

	return utils.SendSuccess(c, "access codes retrieved", response)
}

func (h *AccessCodeHandler) create(c *fiber.Ctx) error {
	var payload dto.AccessCodeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	code, err := h.service.Create(c.Context(), payload, auditActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create access code")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create access code")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "access code created", code)
}

func (h *AccessCodeHandler) deactivate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Deactivate(c.Context(), id, auditActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrAccessCodeNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to deactivate access code")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to deactivate access code")
	}

	return utils.SendSuccess(c, "access code deactivated", fiber.Map{"id": id})
}
