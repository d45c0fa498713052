package validate

import (
	"errors"
	"mime/multipart"
	"strings"

	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

const maxCoverSize = 5 * 1024 * 1024

func CreateEvent() fiber.Handler {
	return body[model.CreateEventInput]()
}

func CreateTicketType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateTicketTypeInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_BODY, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_BODY, err)
		}
		if input.Price.IsNegative() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_BODY, errors.New("price must not be negative"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

// UploadCover requires a multipart "cover" image and stores it under coverFile.
func UploadCover() fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("cover")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cover image is required", err)
		}
		if file.Size > maxCoverSize {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cover image is too large", nil)
		}
		if !isImage(file) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cover must be an image", nil)
		}

		c.Locals("coverFile", file)
		return c.Next()
	}
}

func isImage(file *multipart.FileHeader) bool {
	return strings.HasPrefix(file.Header.Get("Content-Type"), "image/")
}
