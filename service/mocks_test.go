package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"event_ticketing/model"

	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockOrders struct{ mock.Mock }

func (m *mockOrders) FindByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockOrders) FindByPaymentReference(ctx context.Context, reference string) (*model.Order, error) {
	args := m.Called(ctx, reference)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockOrders) MarkCompleted(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrders) MarkFailedByReference(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

type mockTickets struct{ mock.Mock }

func (m *mockTickets) CountByOrder(ctx context.Context, orderID string) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTickets) CreateForOrder(ctx context.Context, orderID string, tickets []model.Ticket) error {
	return m.Called(ctx, orderID, tickets).Error(0)
}

type mockTicketTypes struct{ mock.Mock }

func (m *mockTicketTypes) ListEligibleByEvent(ctx context.Context, eventID string) ([]model.TicketType, error) {
	args := m.Called(ctx, eventID)
	types, _ := args.Get(0).([]model.TicketType)
	return types, args.Error(1)
}

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) FindByID(ctx context.Context, id string) (*model.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*model.Account)
	return account, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendTicketConfirmation(ctx context.Context, buyer *model.Account, event *model.Event, tickets []model.Ticket) error {
	return m.Called(ctx, buyer, event, tickets).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishOrderUpdate(ctx context.Context, update model.OrderUpdate) error {
	return m.Called(ctx, update).Error(0)
}

type mockSettings struct{ mock.Mock }

func (m *mockSettings) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockSettings) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

type mockAudit struct{ mock.Mock }

func (m *mockAudit) Record(ctx context.Context, event *model.WebhookEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockCompleter struct{ mock.Mock }

func (m *mockCompleter) Complete(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

type staticSecret string

func (s staticSecret) PaymentSecret(context.Context) (string, error) {
	if s == "" {
		return "", model.ErrMissingSecret
	}
	return string(s), nil
}
