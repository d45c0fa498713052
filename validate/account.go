package validate

import (
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
)

func Login() fiber.Handler {
	return body[model.LoginInput]()
}

func RotatePaymentSecret() fiber.Handler {
	return body[model.RotateSecretInput]()
}
