package validate

import (
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
)

func VerifyTicket() fiber.Handler {
	return body[model.VerifyTicketInput]()
}
