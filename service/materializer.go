package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"event_ticketing/model"
	"event_ticketing/monitoring"

	"github.com/shopspring/decimal"
)

type TicketTypeSummary struct {
	TicketTypeID string `json:"ticketTypeId"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
}

type MaterializeOutput struct {
	TicketsGenerated int                 `json:"ticketsGenerated"`
	TicketTypes      []TicketTypeSummary `json:"ticketTypes"`
}

// TicketMaterializer turns a paid order into one ticket per purchased unit.
type TicketMaterializer struct {
	orders      OrderReader
	tickets     TicketWriter
	ticketTypes TicketTypeLister
	accounts    AccountReader
	notifier    TicketNotifier
	publisher   OrderPublisher
	signer      *TicketSigner
	log         *slog.Logger
	now         func() time.Time
	distribute  func(quantity int, total decimal.Decimal, types []model.TicketType) []Allocation
}

func NewTicketMaterializer(
	orders OrderReader,
	tickets TicketWriter,
	ticketTypes TicketTypeLister,
	accounts AccountReader,
	notifier TicketNotifier,
	publisher OrderPublisher,
	signer *TicketSigner,
	log *slog.Logger,
) *TicketMaterializer {
	return &TicketMaterializer{
		orders:      orders,
		tickets:     tickets,
		ticketTypes: ticketTypes,
		accounts:    accounts,
		notifier:    notifier,
		publisher:   publisher,
		signer:      signer,
		log:         log,
		now:         time.Now,
		distribute:  Distribute,
	}
}

func (m *TicketMaterializer) Materialize(ctx context.Context, actor model.Actor, orderID string) Result[MaterializeOutput] {
	log := m.log.With(slog.String("order_id", orderID), slog.String("actor_role", actor.Role))

	if !actor.IsStaff() && !actor.IsOrganizer() {
		return materializeFailed(KindUnauthorized, "not authorized")
	}

	order, err := m.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return materializeFailed(KindNotFound, "order not found")
		}
		log.Error("load order", slog.String("error", err.Error()))
		return materializeFailed(KindInternal, "failed to load order")
	}
	if !actor.CanManageEvent(order.Event) {
		return materializeFailed(KindUnauthorized, "not authorized")
	}
	if order.PaymentStatus != model.PaymentCompleted {
		return materializeFailed(KindInvalidState, "not completed")
	}

	existing, err := m.tickets.CountByOrder(ctx, order.ID)
	if err != nil {
		log.Error("count tickets", slog.String("error", err.Error()))
		return materializeFailed(KindInternal, "failed to load tickets")
	}
	if existing > 0 {
		return materializeFailed(KindInvalidState, "tickets already exist")
	}
	if order.Quantity <= 0 {
		return materializeFailed(KindInvalidState, "order has no quantity")
	}

	types, err := m.ticketTypes.ListEligibleByEvent(ctx, order.EventID)
	if err != nil {
		log.Error("list ticket types", slog.String("error", err.Error()))
		return materializeFailed(KindInternal, "failed to load ticket types")
	}
	if len(types) == 0 {
		return materializeFailed(KindInvalidState, "no ticket types available")
	}

	allocations := m.distribute(order.Quantity, order.TotalAmount, types)
	if err := VerifyAllocations(order.Quantity, allocations); err != nil {
		log.Error("distribution rejected", slog.String("error", err.Error()))
		return materializeFailed(KindDistributionFailed, "distribution validation failed")
	}

	tickets, err := m.buildTickets(order, allocations)
	if err != nil {
		log.Error("build tickets", slog.String("error", err.Error()))
		return materializeFailed(KindInternal, "failed to generate tickets")
	}

	if err := m.tickets.CreateForOrder(ctx, order.ID, tickets); err != nil {
		switch {
		case errors.Is(err, model.ErrTicketsAlreadyExist):
			return materializeFailed(KindInvalidState, "tickets already exist")
		case errors.Is(err, model.ErrOrderNotFound):
			return materializeFailed(KindNotFound, "order not found")
		}
		log.Error("persist tickets", slog.String("error", err.Error()))
		return materializeFailed(KindInternal, "failed to create tickets")
	}

	monitoring.RecordMaterialization("success")
	monitoring.RecordTicketsIssued(len(tickets))
	log.Info("tickets materialized", slog.Int("count", len(tickets)))

	m.afterCommit(context.WithoutCancel(ctx), order, tickets)

	return Ok(summarize(allocations, len(tickets)))
}

func (m *TicketMaterializer) buildTickets(order *model.Order, allocations []Allocation) ([]model.Ticket, error) {
	issuedAt := m.now().UTC()
	tickets := make([]model.Ticket, 0, order.Quantity)
	index := 1

	for _, a := range allocations {
		ticketType := a.TicketType
		for i := 0; i < a.Quantity; i++ {
			code, err := NewTicketCode(order.ID, issuedAt, index)
			if err != nil {
				return nil, err
			}
			payload, err := m.signer.Sign(TicketClaims{
				TicketCode: code,
				EventID:    order.EventID,
				UserID:     order.BuyerID,
				IssuedAt:   issuedAt.Unix(),
			})
			if err != nil {
				return nil, err
			}
			tickets = append(tickets, model.Ticket{
				TicketCode:          code,
				UserID:              order.BuyerID,
				TicketTypeID:        ticketType.ID,
				OrderID:             order.ID,
				Status:              model.TicketUnused,
				IssuedAt:            issuedAt,
				VerificationPayload: payload,
				TicketType:          &ticketType,
			})
			index++
		}
	}
	return tickets, nil
}

// afterCommit runs the side effects of a successful materialization. None of
// them can change the result.
func (m *TicketMaterializer) afterCommit(ctx context.Context, order *model.Order, tickets []model.Ticket) {
	log := m.log.With(slog.String("order_id", order.ID))

	if err := m.publisher.PublishOrderUpdate(ctx, model.OrderUpdate{
		OrderID:          order.ID,
		PaymentStatus:    order.PaymentStatus,
		TicketsGenerated: len(tickets),
		At:               m.now().UTC(),
	}); err != nil {
		log.Warn("publish order update", slog.String("error", err.Error()))
	}

	buyer, err := m.accounts.FindByID(ctx, order.BuyerID)
	if err != nil {
		log.Warn("ticket email skipped, buyer not loaded", slog.String("error", err.Error()))
		return
	}
	if err := m.notifier.SendTicketConfirmation(ctx, buyer, order.Event, tickets); err != nil {
		log.Warn("ticket email not delivered", slog.String("error", err.Error()))
	}
}

func summarize(allocations []Allocation, generated int) MaterializeOutput {
	out := MaterializeOutput{
		TicketsGenerated: generated,
		TicketTypes:      make([]TicketTypeSummary, 0, len(allocations)),
	}
	for _, a := range allocations {
		out.TicketTypes = append(out.TicketTypes, TicketTypeSummary{
			TicketTypeID: a.TicketType.ID,
			Name:         a.TicketType.Name,
			Quantity:     a.Quantity,
		})
	}
	return out
}

func materializeFailed(kind Kind, message string) Result[MaterializeOutput] {
	monitoring.RecordMaterialization(string(kind))
	return Fail[MaterializeOutput](kind, message)
}
