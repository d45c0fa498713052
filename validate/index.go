package validate

import (
	"errors"
	"strings"

	"event_ticketing/constants"
	"event_ticketing/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// body parses the request into T, validates it and stores it under "input".
func body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_BODY, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_BODY, err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

// GetById checks that the path parameter key is a UUID and stores it under key.
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := strings.TrimSpace(c.Params(key))
		if _, err := uuid.Parse(value); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid "+key, errors.New("params invalid"))
		}

		c.Locals(key, value)
		return c.Next()
	}
}
