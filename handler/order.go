package handler

import (
	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CheckoutInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	s, _ := session(c)

	order, fail := h.Orders.PlaceOrder(c.UserContext(), s.Actor(), input).Unwrap()
	if fail != nil {
		return failure(c, fail)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

func (h *Handler) GetOrder(c *fiber.Ctx) error {
	s, _ := session(c)

	order, fail := h.Orders.GetOrder(c.UserContext(), s.Actor(), c.Params("orderId")).Unwrap()
	if fail != nil {
		return failure(c, fail)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
