package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event_ticketing/model"

	"gorm.io/gorm"
)

// OrderLine is one ticket type and how many units of it a checkout reserves.
type OrderLine struct {
	TicketTypeID string
	Quantity     int
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Event").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return &order, nil
}

func (r *OrderRepository) FindByPaymentReference(ctx context.Context, reference string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Where("payment_reference = ?", reference).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order by reference %s: %w", reference, err)
	}
	return &order, nil
}

// FindWithTickets loads the order, its event and every ticket with its type.
func (r *OrderRepository) FindWithTickets(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("ticket_code ASC")
		}).
		Preload("Tickets.TicketType").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order %s with tickets: %w", id, err)
	}
	return &order, nil
}

// MarkCompleted moves a PENDING order to COMPLETED. It reports false when
// no row matched, which means the order is missing or no longer PENDING.
func (r *OrderRepository) MarkCompleted(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND payment_status = ?", id, model.PaymentPending).
		Updates(map[string]any{
			"payment_status": model.PaymentCompleted,
			"paid_at":        paidAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("complete order %s: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *OrderRepository) MarkFailedByReference(ctx context.Context, reference string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("payment_reference = ? AND payment_status = ?", reference, model.PaymentPending).
		Update("payment_status", model.PaymentFailed)
	if result.Error != nil {
		return false, fmt.Errorf("fail order by reference %s: %w", reference, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// PlaceOrder reserves stock for every line and inserts the order in one transaction.
func (r *OrderRepository) PlaceOrder(ctx context.Context, order *model.Order, lines []OrderLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			result := tx.Model(&model.TicketType{}).
				Where("id = ? AND event_id = ? AND remaining_quantity >= ?", line.TicketTypeID, order.EventID, line.Quantity).
				Update("remaining_quantity", gorm.Expr("remaining_quantity - ?", line.Quantity))
			if result.Error != nil {
				return fmt.Errorf("reserve ticket type %s: %w", line.TicketTypeID, result.Error)
			}
			if result.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&model.TicketType{}).
					Where("id = ? AND event_id = ?", line.TicketTypeID, order.EventID).
					Count(&count).Error; err != nil {
					return fmt.Errorf("check ticket type %s: %w", line.TicketTypeID, err)
				}
				if count == 0 {
					return model.ErrTicketTypeNotFound
				}
				return fmt.Errorf("ticket type %s: %w", line.TicketTypeID, model.ErrInsufficientStock)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
}

// ListCompletedWithoutTickets returns paid orders that were never materialized, oldest first.
func (r *OrderRepository) ListCompletedWithoutTickets(ctx context.Context, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", model.PaymentCompleted).
		Where("NOT EXISTS (SELECT 1 FROM tickets WHERE tickets.order_id = orders.id)").
		Order("paid_at ASC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list unmaterialized orders: %w", err)
	}
	return orders, nil
}

// ExpirePending fails PENDING orders created before cutoff and returns how many changed.
func (r *OrderRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("payment_status = ? AND created_at < ?", model.PaymentPending, cutoff).
		Update("payment_status", model.PaymentFailed)
	if result.Error != nil {
		return 0, fmt.Errorf("expire pending orders: %w", result.Error)
	}
	return result.RowsAffected, nil
}
