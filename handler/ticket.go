package handler

import (
	"fmt"

	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// RegenerateTickets materializes tickets for a completed order that has none.
func (h *Handler) RegenerateTickets(c *fiber.Ctx) error {
	s, ok := session(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	orderID := c.Params("orderId")
	out, fail := h.Materializer.Materialize(c.UserContext(), s.Actor(), orderID).Unwrap()
	if fail != nil {
		return c.Status(statusForKind(fail.Kind)).JSON(fiber.Map{"error": fail.Message})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Generated %d tickets", out.TicketsGenerated),
		"data":    out,
	})
}

func (h *Handler) TicketQRCode(c *fiber.Ctx) error {
	s, _ := session(c)

	ticket, fail := h.Checkin.GetTicket(c.UserContext(), s.Actor(), c.Params("ticketCode")).Unwrap()
	if fail != nil {
		return failure(c, fail)
	}

	png, err := utils.GenerateQRCode(ticket.VerificationPayload, utils.TicketQRSize)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not render QR code", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Send(png)
}

func (h *Handler) VerifyTicket(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.VerifyTicketInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not read request data", nil)
	}
	s, _ := session(c)

	ticket, fail := h.Checkin.Verify(c.UserContext(), s.Actor(), input.Payload).Unwrap()
	if fail != nil {
		return failure(c, fail)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}
