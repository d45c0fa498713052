package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"event_ticketing/helper"
	"event_ticketing/model"

	"github.com/jinzhu/copier"
)

// CatalogService manages events and their ticket types.
type CatalogService struct {
	events      EventStore
	ticketTypes TicketTypeCreator
	uploader    CoverUploader
	log         *slog.Logger
}

func NewCatalogService(events EventStore, ticketTypes TicketTypeCreator, uploader CoverUploader, log *slog.Logger) *CatalogService {
	return &CatalogService{events: events, ticketTypes: ticketTypes, uploader: uploader, log: log}
}

func (s *CatalogService) CreateEvent(ctx context.Context, actor model.Actor, input model.CreateEventInput) Result[*model.Event] {
	if !actor.IsStaff() && !actor.IsOrganizer() {
		return Fail[*model.Event](KindUnauthorized, "not authorized")
	}

	var event model.Event
	if err := copier.Copy(&event, &input); err != nil {
		return Fail[*model.Event](KindInternal, "failed to read event")
	}
	event.OrganizerID = actor.AccountID

	slug, err := helper.GenerateUniqueSlug(ctx, input.Title, s.events.SlugExists)
	if err != nil {
		s.log.Error("generate slug", slog.String("error", err.Error()))
		return Fail[*model.Event](KindInternal, "failed to create event")
	}
	event.Slug = slug

	if err := s.events.Create(ctx, &event); err != nil {
		s.log.Error("create event", slog.String("error", err.Error()))
		return Fail[*model.Event](KindInternal, "failed to create event")
	}
	return Ok(&event)
}

func (s *CatalogService) GetEventBySlug(ctx context.Context, slug string) Result[*model.Event] {
	event, err := s.events.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return Fail[*model.Event](KindNotFound, "event not found")
		}
		s.log.Error("load event", slog.String("slug", slug), slog.String("error", err.Error()))
		return Fail[*model.Event](KindInternal, "failed to load event")
	}
	return Ok(event)
}

func (s *CatalogService) AddTicketType(ctx context.Context, actor model.Actor, eventID string, input model.CreateTicketTypeInput) Result[*model.TicketType] {
	event, failure := s.managedEvent(ctx, actor, eventID)
	if failure != nil {
		return Fail[*model.TicketType](failure.Kind, failure.Message)
	}
	if input.Price.IsNegative() {
		return Fail[*model.TicketType](KindValidation, "price must not be negative")
	}

	var ticketType model.TicketType
	if err := copier.Copy(&ticketType, &input); err != nil {
		return Fail[*model.TicketType](KindInternal, "failed to read ticket type")
	}
	ticketType.EventID = event.ID
	ticketType.Price = input.Price.Round(2)

	if err := s.ticketTypes.Create(ctx, &ticketType); err != nil {
		s.log.Error("create ticket type", slog.String("event_id", eventID), slog.String("error", err.Error()))
		return Fail[*model.TicketType](KindInternal, "failed to create ticket type")
	}
	return Ok(&ticketType)
}

// UploadCover stores a cover image and points the event at it.
func (s *CatalogService) UploadCover(ctx context.Context, actor model.Actor, eventID string, file io.Reader) Result[string] {
	event, failure := s.managedEvent(ctx, actor, eventID)
	if failure != nil {
		return Fail[string](failure.Kind, failure.Message)
	}
	if s.uploader == nil {
		return Fail[string](KindInvalidState, "cover uploads are not configured")
	}

	publicID := fmt.Sprintf("event_%s_cover_%d", event.ID, time.Now().Unix())
	url, err := s.uploader.UploadCover(ctx, file, publicID)
	if err != nil {
		s.log.Error("upload cover", slog.String("event_id", eventID), slog.String("error", err.Error()))
		return Fail[string](KindInternal, "failed to upload cover")
	}
	if err := s.events.UpdateCover(ctx, event.ID, url); err != nil {
		s.log.Error("save cover", slog.String("event_id", eventID), slog.String("error", err.Error()))
		return Fail[string](KindInternal, "failed to save cover")
	}
	if event.CoverURL != nil && *event.CoverURL != url {
		if err := s.uploader.RemoveCover(ctx, *event.CoverURL); err != nil {
			s.log.Warn("remove previous cover", slog.String("event_id", eventID), slog.String("error", err.Error()))
		}
	}
	return Ok(url)
}

func (s *CatalogService) managedEvent(ctx context.Context, actor model.Actor, eventID string) (*model.Event, *Failure) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return nil, &Failure{Kind: KindNotFound, Message: "event not found"}
		}
		s.log.Error("load event", slog.String("event_id", eventID), slog.String("error", err.Error()))
		return nil, &Failure{Kind: KindInternal, Message: "failed to load event"}
	}
	if !actor.CanManageEvent(event) {
		return nil, &Failure{Kind: KindUnauthorized, Message: "not authorized"}
	}
	return event, nil
}
