package validate

import (
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
)

func Checkout() fiber.Handler {
	return body[model.CheckoutInput]()
}
