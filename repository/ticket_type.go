package repository

import (
	"context"
	"errors"
	"fmt"

	"event_ticketing/model"

	"gorm.io/gorm"
)

type TicketTypeRepository struct {
	db *gorm.DB
}

func NewTicketTypeRepository(db *gorm.DB) *TicketTypeRepository {
	return &TicketTypeRepository{db: db}
}

// ListEligibleByEvent returns the event's ticket types with a non-negative
// remaining quantity in creation order.
func (r *TicketTypeRepository) ListEligibleByEvent(ctx context.Context, eventID string) ([]model.TicketType, error) {
	var types []model.TicketType
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND remaining_quantity >= 0", eventID).
		Order("created_at ASC, id ASC").
		Find(&types).Error
	if err != nil {
		return nil, fmt.Errorf("list ticket types of event %s: %w", eventID, err)
	}
	return types, nil
}

func (r *TicketTypeRepository) FindByIDs(ctx context.Context, eventID string, ids []string) ([]model.TicketType, error) {
	var types []model.TicketType
	if err := r.db.WithContext(ctx).Where("event_id = ? AND id IN ?", eventID, ids).Find(&types).Error; err != nil {
		return nil, fmt.Errorf("find ticket types: %w", err)
	}
	return types, nil
}

func (r *TicketTypeRepository) FindByID(ctx context.Context, id string) (*model.TicketType, error) {
	var ticketType model.TicketType
	if err := r.db.WithContext(ctx).First(&ticketType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTicketTypeNotFound
		}
		return nil, fmt.Errorf("find ticket type %s: %w", id, err)
	}
	return &ticketType, nil
}

func (r *TicketTypeRepository) Create(ctx context.Context, ticketType *model.TicketType) error {
	if err := r.db.WithContext(ctx).Create(ticketType).Error; err != nil {
		return fmt.Errorf("create ticket type: %w", err)
	}
	return nil
}
