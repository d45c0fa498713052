package repository

import (
	"context"
	"errors"
	"fmt"

	"event_ticketing/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event %s: %w", id, err)
	}
	return &event, nil
}

func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("TicketTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("price ASC")
		}).
		Where("slug = ?", slug).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event by slug %s: %w", slug, err)
	}
	return &event, nil
}

func (r *EventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Event{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slug %s: %w", slug, err)
	}
	return count > 0, nil
}

func (r *EventRepository) UpdateCover(ctx context.Context, id, url string) error {
	result := r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Update("cover_url", url)
	if result.Error != nil {
		return fmt.Errorf("update cover of event %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrEventNotFound
	}
	return nil
}
