package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"event_ticketing/model"
	"event_ticketing/monitoring"

	"github.com/jinzhu/copier"
)

// CheckinService validates scanned tickets and admits them once.
type CheckinService struct {
	tickets TicketCheckinStore
	events  EventReader
	signer  *TicketSigner
	log     *slog.Logger
	now     func() time.Time
}

func NewCheckinService(tickets TicketCheckinStore, events EventReader, signer *TicketSigner, log *slog.Logger) *CheckinService {
	return &CheckinService{tickets: tickets, events: events, signer: signer, log: log, now: time.Now}
}

func (s *CheckinService) Verify(ctx context.Context, actor model.Actor, payload string) Result[model.TicketResponse] {
	res := s.verify(ctx, actor, payload)
	if _, failure := res.Unwrap(); failure != nil {
		monitoring.RecordCheckin(string(failure.Kind))
	} else {
		monitoring.RecordCheckin("admitted")
	}
	return res
}

func (s *CheckinService) verify(ctx context.Context, actor model.Actor, payload string) Result[model.TicketResponse] {
	if !actor.IsStaff() && !actor.IsOrganizer() {
		return Fail[model.TicketResponse](KindUnauthorized, "not authorized")
	}

	claims, err := s.signer.Verify(payload)
	if err != nil {
		if errors.Is(err, model.ErrMissingSecret) {
			s.log.Error("ticket signing secret missing")
			return Fail[model.TicketResponse](KindInternal, "ticket verification unavailable")
		}
		return Fail[model.TicketResponse](KindValidation, model.ErrInvalidTicketPayload.Error())
	}

	ticket, failure := s.load(ctx, claims.TicketCode)
	if failure != nil {
		return Fail[model.TicketResponse](failure.Kind, failure.Message)
	}
	if ticket.UserID != claims.UserID || ticket.TicketType == nil || ticket.TicketType.EventID != claims.EventID {
		return Fail[model.TicketResponse](KindValidation, model.ErrInvalidTicketPayload.Error())
	}

	event, err := s.events.FindByID(ctx, claims.EventID)
	if err != nil && !errors.Is(err, model.ErrEventNotFound) {
		s.log.Error("load event", slog.String("event_id", claims.EventID), slog.String("error", err.Error()))
		return Fail[model.TicketResponse](KindInternal, "failed to load event")
	}
	if !actor.CanManageEvent(event) {
		return Fail[model.TicketResponse](KindUnauthorized, "not authorized")
	}

	switch ticket.Status {
	case model.TicketUsed:
		return Fail[model.TicketResponse](KindInvalidState, model.ErrTicketAlreadyUsed.Error())
	case model.TicketRefunded:
		return Fail[model.TicketResponse](KindInvalidState, "ticket refunded")
	}

	usedAt := s.now().UTC()
	admitted, err := s.tickets.MarkUsed(ctx, ticket.ID, usedAt)
	if err != nil {
		s.log.Error("check in ticket", slog.String("ticket_code", ticket.TicketCode), slog.String("error", err.Error()))
		return Fail[model.TicketResponse](KindInternal, "failed to check in ticket")
	}
	if !admitted {
		return Fail[model.TicketResponse](KindInvalidState, model.ErrTicketAlreadyUsed.Error())
	}
	ticket.Status = model.TicketUsed
	ticket.UsedAt = &usedAt

	resp, err := toTicketResponse(ticket)
	if err != nil {
		s.log.Error("build ticket response", slog.String("ticket_code", ticket.TicketCode), slog.String("error", err.Error()))
		return Fail[model.TicketResponse](KindInternal, "failed to read ticket")
	}
	return Ok(resp)
}

// GetTicket returns a ticket to its holder, the event organizer or staff.
func (s *CheckinService) GetTicket(ctx context.Context, actor model.Actor, code string) Result[*model.Ticket] {
	ticket, failure := s.load(ctx, code)
	if failure != nil {
		return Fail[*model.Ticket](failure.Kind, failure.Message)
	}
	if ticket.UserID == actor.AccountID {
		return Ok(ticket)
	}

	var event *model.Event
	if ticket.TicketType != nil {
		var err error
		event, err = s.events.FindByID(ctx, ticket.TicketType.EventID)
		if err != nil && !errors.Is(err, model.ErrEventNotFound) {
			s.log.Error("load event", slog.String("error", err.Error()))
			return Fail[*model.Ticket](KindInternal, "failed to load event")
		}
	}
	if !actor.CanManageEvent(event) {
		return Fail[*model.Ticket](KindUnauthorized, "not authorized")
	}
	return Ok(ticket)
}

func (s *CheckinService) load(ctx context.Context, code string) (*model.Ticket, *Failure) {
	ticket, err := s.tickets.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrTicketNotFound) {
			return nil, &Failure{Kind: KindNotFound, Message: "ticket not found"}
		}
		s.log.Error("load ticket", slog.String("ticket_code", code), slog.String("error", err.Error()))
		return nil, &Failure{Kind: KindInternal, Message: "failed to load ticket"}
	}
	return ticket, nil
}

func toTicketResponse(ticket *model.Ticket) (model.TicketResponse, error) {
	var resp model.TicketResponse
	if err := copier.Copy(&resp, ticket); err != nil {
		return model.TicketResponse{}, err
	}
	return resp, nil
}
