package service

import (
	"context"
	"io"
	"time"

	"event_ticketing/model"
	"event_ticketing/repository"
)

type OrderReader interface {
	FindByID(ctx context.Context, id string) (*model.Order, error)
}

type OrderPaymentStore interface {
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByPaymentReference(ctx context.Context, reference string) (*model.Order, error)
	MarkCompleted(ctx context.Context, id string, paidAt time.Time) (bool, error)
	MarkFailedByReference(ctx context.Context, reference string) (bool, error)
}

type OrderCheckoutStore interface {
	PlaceOrder(ctx context.Context, order *model.Order, lines []repository.OrderLine) error
	FindWithTickets(ctx context.Context, id string) (*model.Order, error)
}

type OrderSweepStore interface {
	ListCompletedWithoutTickets(ctx context.Context, limit int) ([]model.Order, error)
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
}

type TicketWriter interface {
	CountByOrder(ctx context.Context, orderID string) (int64, error)
	CreateForOrder(ctx context.Context, orderID string, tickets []model.Ticket) error
}

type TicketCheckinStore interface {
	FindByCode(ctx context.Context, code string) (*model.Ticket, error)
	MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error)
}

type TicketTypeLister interface {
	ListEligibleByEvent(ctx context.Context, eventID string) ([]model.TicketType, error)
}

type TicketTypeFinder interface {
	FindByIDs(ctx context.Context, eventID string, ids []string) ([]model.TicketType, error)
}

type TicketTypeCreator interface {
	Create(ctx context.Context, ticketType *model.TicketType) error
}

type EventReader interface {
	FindByID(ctx context.Context, id string) (*model.Event, error)
}

type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	UpdateCover(ctx context.Context, id, url string) error
}

type AccountReader interface {
	FindByID(ctx context.Context, id string) (*model.Account, error)
}

type AccountFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}

type SettingStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type WebhookEventRecorder interface {
	Record(ctx context.Context, event *model.WebhookEvent) error
}

// TicketNotifier delivers the confirmation for freshly issued tickets.
type TicketNotifier interface {
	SendTicketConfirmation(ctx context.Context, buyer *model.Account, event *model.Event, tickets []model.Ticket) error
}

// OrderPublisher pushes order status changes to live subscribers.
type OrderPublisher interface {
	PublishOrderUpdate(ctx context.Context, update model.OrderUpdate) error
}

// CoverUploader stores an event cover image and returns its public URL.
type CoverUploader interface {
	UploadCover(ctx context.Context, file io.Reader, publicID string) (string, error)
	RemoveCover(ctx context.Context, url string) error
}
