package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event_ticketing/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) CountByOrder(ctx context.Context, orderID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Ticket{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count tickets of order %s: %w", orderID, err)
	}
	return count, nil
}

// CreateForOrder inserts all tickets of an order or none of them. The order
// row is locked where the dialect allows it and the zero-ticket guard is
// checked again inside the transaction.
func (r *TicketRepository) CreateForOrder(ctx context.Context, orderID string, tickets []model.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := tx
		if tx.Dialector.Name() == "postgres" {
			lock = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var order model.Order
		if err := lock.Select("id").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrOrderNotFound
			}
			return fmt.Errorf("lock order %s: %w", orderID, err)
		}

		var existing int64
		if err := tx.Model(&model.Ticket{}).Where("order_id = ?", orderID).Count(&existing).Error; err != nil {
			return fmt.Errorf("count tickets of order %s: %w", orderID, err)
		}
		if existing > 0 {
			return model.ErrTicketsAlreadyExist
		}

		if err := tx.Omit(clause.Associations).CreateInBatches(&tickets, 100).Error; err != nil {
			return fmt.Errorf("insert tickets of order %s: %w", orderID, err)
		}
		return nil
	})
}

func (r *TicketRepository) FindByCode(ctx context.Context, code string) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := r.db.WithContext(ctx).Preload("TicketType").Where("ticket_code = ?", code).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket %s: %w", code, err)
	}
	return &ticket, nil
}

// MarkUsed flips an UNUSED ticket to USED; false means it was not UNUSED.
func (r *TicketRepository) MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Where("id = ? AND status = ?", id, model.TicketUnused).
		Updates(map[string]any{
			"status":  model.TicketUsed,
			"used_at": usedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("check in ticket %s: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}
