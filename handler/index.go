package handler

import (
	"context"
	"log/slog"

	"event_ticketing/helper"
	"event_ticketing/service"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// OrderSubscriber opens a live feed of one order's updates.
type OrderSubscriber interface {
	SubscribeOrder(ctx context.Context, orderID string) *redis.PubSub
}

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Auth            *service.AuthService
	Catalog         *service.CatalogService
	Orders          *service.OrderService
	Materializer    *service.TicketMaterializer
	Reconciler      *service.PaymentReconciler
	Checkin         *service.CheckinService
	Secrets         *service.SecretResolver
	OrderFeed       OrderSubscriber
	HealthChecks    map[string]HealthCheck
	SignatureHeader string
	SecureCookies   bool
	Log             *slog.Logger
}

type Handler struct {
	Deps
}

func New(deps Deps) *Handler {
	return &Handler{Deps: deps}
}

func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindUnauthorized:
		return fiber.StatusForbidden
	case service.KindNotFound:
		return fiber.StatusNotFound
	case service.KindInvalidState, service.KindDistributionFailed, service.KindValidation:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func failure(c *fiber.Ctx, f *service.Failure) error {
	return utils.ErrorResponse(c, statusForKind(f.Kind), f.Message, f)
}

func session(c *fiber.Ctx) (helper.Session, bool) {
	return helper.SessionFromCtx(c)
}
