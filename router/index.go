package router

import (
	"event_ticketing/constants"
	"event_ticketing/handler"
	"event_ticketing/middleware"
	"event_ticketing/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, h *handler.Handler, jwtSecret string) {
	protected := middleware.Protected(jwtSecret)
	organizers := middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_STAFF, constants.ROLE_ORGANIZER)

	app.Get("/health", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), h.Login)
	auth.Post("/logout", h.Logout)

	payments := v1.Group("/payments")
	payments.Post("/webhook", h.PaymentWebhook)

	events := v1.Group("/events")
	events.Get("/:slug", h.GetEventBySlug)
	events.Post("/", protected, organizers, validate.CreateEvent(), h.CreateEvent)
	events.Post("/:eventId/ticket-types", protected, organizers, validate.GetById("eventId"), validate.CreateTicketType(), h.CreateTicketType)
	events.Post("/:eventId/cover", protected, organizers, validate.GetById("eventId"), validate.UploadCover(), h.UploadEventCover)

	orders := v1.Group("/orders")
	orders.Post("/", protected, validate.Checkout(), h.CreateOrder)
	orders.Get("/:orderId", protected, h.GetOrder)
	orders.Post("/:orderId/tickets/regenerate", protected, h.RegenerateTickets)

	tickets := v1.Group("/tickets")
	tickets.Get("/:ticketCode/qr", protected, h.TicketQRCode)
	tickets.Post("/verify", protected, organizers, validate.VerifyTicket(), h.VerifyTicket)

	settings := v1.Group("/settings")
	settings.Put("/payment-secret", protected, middleware.RequireRoles(constants.ROLE_ADMIN), validate.RotatePaymentSecret(), h.RotatePaymentSecret)

	app.Get("/ws/orders/:orderId", protected, h.OrderStreamUpgrade, websocket.New(h.OrderStream))
}
