package handler

import (
	"github.com/gofiber/fiber/v2"
)

// PaymentWebhook always answers the provider with a status body so it never
// retries because of a timeout or an empty response.
func (h *Handler) PaymentWebhook(c *fiber.Ctx) error {
	outcome := h.Reconciler.Reconcile(c.UserContext(), c.Body(), c.Get(h.SignatureHeader))
	return c.Status(outcome.HTTPStatus).JSON(outcome)
}
