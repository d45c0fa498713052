package handler

import (
	"mime/multipart"

	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	s, _ := session(c)

	event, fail := h.Catalog.CreateEvent(c.UserContext(), s.Actor(), input).Unwrap()
	if fail != nil {
		return failure(c, fail)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func (h *Handler) GetEventBySlug(c *fiber.Ctx) error {
	event, fail := h.Catalog.GetEventBySlug(c.UserContext(), c.Params("slug")).Unwrap()
	if fail != nil {
		return failure(c, fail)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) CreateTicketType(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateTicketTypeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	eventID, _ := c.Locals("eventId").(string)
	s, _ := session(c)

	ticketType, fail := h.Catalog.AddTicketType(c.UserContext(), s.Actor(), eventID, input).Unwrap()
	if fail != nil {
		return failure(c, fail)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, ticketType)
}

func (h *Handler) UploadEventCover(c *fiber.Ctx) error {
	file, ok := c.Locals("coverFile").(*multipart.FileHeader)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	eventID, _ := c.Locals("eventId").(string)
	s, _ := session(c)

	reader, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not read cover image", err)
	}
	defer reader.Close()

	url, fail := h.Catalog.UploadCover(c.UserContext(), s.Actor(), eventID, reader).Unwrap()
	if fail != nil {
		return failure(c, fail)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"coverUrl": url})
}
