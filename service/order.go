package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"event_ticketing/model"
	"event_ticketing/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService handles checkout and order lookups.
type OrderService struct {
	events      EventReader
	ticketTypes TicketTypeFinder
	orders      OrderCheckoutStore
	log         *slog.Logger
}

func NewOrderService(events EventReader, ticketTypes TicketTypeFinder, orders OrderCheckoutStore, log *slog.Logger) *OrderService {
	return &OrderService{events: events, ticketTypes: ticketTypes, orders: orders, log: log}
}

// PlaceOrder reserves the requested tickets and opens a PENDING order whose
// payment reference the provider will echo back in its webhook.
func (s *OrderService) PlaceOrder(ctx context.Context, buyer model.Actor, input model.CheckoutInput) Result[*model.Order] {
	if buyer.AccountID == "" {
		return Fail[*model.Order](KindUnauthorized, "not authorized")
	}

	if _, err := s.events.FindByID(ctx, input.EventID); err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return Fail[*model.Order](KindNotFound, "event not found")
		}
		s.log.Error("load event", slog.String("event_id", input.EventID), slog.String("error", err.Error()))
		return Fail[*model.Order](KindInternal, "failed to load event")
	}

	lines := mergeLines(input.Items)
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.TicketTypeID)
	}

	types, err := s.ticketTypes.FindByIDs(ctx, input.EventID, ids)
	if err != nil {
		s.log.Error("load ticket types", slog.String("error", err.Error()))
		return Fail[*model.Order](KindInternal, "failed to load ticket types")
	}
	prices := make(map[string]decimal.Decimal, len(types))
	for _, tt := range types {
		prices[tt.ID] = tt.Price
	}

	quantity := 0
	total := decimal.Zero
	for _, line := range lines {
		price, ok := prices[line.TicketTypeID]
		if !ok {
			return Fail[*model.Order](KindNotFound, "ticket type not found")
		}
		quantity += line.Quantity
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	reference := "ORD-" + uuid.NewString()
	order := &model.Order{
		BuyerID:          buyer.AccountID,
		EventID:          input.EventID,
		Quantity:         quantity,
		TotalAmount:      total,
		PaymentStatus:    model.PaymentPending,
		PaymentReference: &reference,
	}

	if err := s.orders.PlaceOrder(ctx, order, lines); err != nil {
		switch {
		case errors.Is(err, model.ErrInsufficientStock):
			return Fail[*model.Order](KindInvalidState, model.ErrInsufficientStock.Error())
		case errors.Is(err, model.ErrTicketTypeNotFound):
			return Fail[*model.Order](KindNotFound, "ticket type not found")
		}
		s.log.Error("place order", slog.String("error", err.Error()))
		return Fail[*model.Order](KindInternal, "failed to place order")
	}

	s.log.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("reference", reference),
		slog.Int("quantity", quantity),
	)
	return Ok(order)
}

// GetOrder returns an order with its tickets to its buyer, the event organizer or staff.
func (s *OrderService) GetOrder(ctx context.Context, actor model.Actor, orderID string) Result[*model.Order] {
	order, err := s.orders.FindWithTickets(ctx, orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return Fail[*model.Order](KindNotFound, "order not found")
		}
		s.log.Error("load order", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return Fail[*model.Order](KindInternal, "failed to load order")
	}
	if order.BuyerID != actor.AccountID && !actor.CanManageEvent(order.Event) {
		return Fail[*model.Order](KindUnauthorized, "not authorized")
	}
	return Ok(order)
}

// mergeLines folds repeated ticket types together and orders lines by id so
// concurrent checkouts reserve rows in the same order.
func mergeLines(items []model.CheckoutItemInput) []repository.OrderLine {
	byType := make(map[string]int, len(items))
	for _, item := range items {
		byType[item.TicketTypeID] += item.Quantity
	}
	lines := make([]repository.OrderLine, 0, len(byType))
	for id, qty := range byType {
		lines = append(lines, repository.OrderLine{TicketTypeID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].TicketTypeID < lines[j].TicketTypeID
	})
	return lines
}
