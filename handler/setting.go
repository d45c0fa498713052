package handler

import (
	"errors"
	"log/slog"

	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// RotatePaymentSecret replaces the webhook secret stored in settings.
func (h *Handler) RotatePaymentSecret(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.RotateSecretInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	if err := h.Secrets.RotatePaymentSecret(c.UserContext(), input.Secret); err != nil {
		if errors.Is(err, model.ErrValidation) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_BODY, err)
		}
		h.Log.Error("rotate payment secret", slog.String("error", err.Error()))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"key": constants.SETTING_PAYMENT_SECRET_KEY})
}
