package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/service"
	"github.com/scholaris/sis-portal-api/internal/utils"
)

// YearLevelHandler wires admin year level endpoints.
type YearLevelHandler struct {
	service service.YearLevelService
	logger  zerolog.Logger
}

// NewYearLevelHandler constructs the handler.
func NewYearLevelHandler(service service.YearLevelService, logger zerolog.Logger) *YearLevelHandler {
	return &YearLevelHandler{
		service: service,
		logger:  logger.With().Str("component", "year_level_handler").Logger(),
	}
}

// Register attaches year level routes to the router group.
func (h *YearLevelHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.add)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *YearLevelHandler) list(c *fiber.Ctx) error {
	response, err := h.service.List(c.Context(), auditActorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list year levels")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list year levels")
	}

	return utils.SendSuccess(c, "year levels retrieved", response)
}

func (h *YearLevelHandler) add(c *fiber.Ctx) error {
	var payload dto.YearLevelCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	level, err := h.service.Add(c.Context(), payload, auditActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrYearLevelNameTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to add year level")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to add year level")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "year level added", fiber.Map{"yearLevel": level})
}

func (h *YearLevelHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.YearLevelUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	level, err := h.service.Update(c.Context(), id, payload, auditActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrYearLevelNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrYearLevelNameTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update year level")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update year level")
		}
	}

	return utils.SendSuccess(c, "year level updated", fiber.Map{"yearLevel": level})
}

func (h *YearLevelHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), id, auditActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrYearLevelNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete year level")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete year level")
	}

	return utils.SendSuccess(c, "year level deleted", fiber.Map{"id": id})
}
