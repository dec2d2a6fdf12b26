package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/service"
	"github.com/scholaris/sis-portal-api/internal/utils"
)

// PolicyHandler wires the policy document endpoints.
type PolicyHandler struct {
	service service.PolicyService
	logger  zerolog.Logger
}

// NewPolicyHandler constructs the handler.
func NewPolicyHandler(service service.PolicyService, logger zerolog.Logger) *PolicyHandler {
	return &PolicyHandler{
		service: service,
		logger:  logger.With().Str("component", "policy_handler").Logger(),
	}
}

// Register attaches policy routes to the router group.
func (h *PolicyHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Put("", h.save)
}

func (h *PolicyHandler) get(c *fiber.Ctx) error {
	policy, err := h.service.Get(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrPolicyNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "policy not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch policy")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch policy")
	}

	return utils.SendSuccess(c, "policy retrieved", policy)
}

func (h *PolicyHandler) save(c *fiber.Ctx) error {
	var payload dto.PolicySaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	policy, err := h.service.Save(c.Context(), payload, auditActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPolicyContentEmpty):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to save policy")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to save policy")
		}
	}

	return utils.SendSuccess(c, "policy saved", policy)
}
