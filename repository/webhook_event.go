package repository

import (
	"context"
	"fmt"

	"event_ticketing/model"

	"gorm.io/gorm"
)

type WebhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

func (r *WebhookEventRepository) Record(ctx context.Context, event *model.WebhookEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("record webhook event %s: %w", event.Event, err)
	}
	return nil
}

func (r *WebhookEventRepository) ListByReference(ctx context.Context, reference string) ([]model.WebhookEvent, error) {
	var events []model.WebhookEvent
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).Order("id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list webhook events for %s: %w", reference, err)
	}
	return events, nil
}
