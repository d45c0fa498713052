package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"event_ticketing/model"
)

// OrderCompleter applies the PENDING to COMPLETED transition for a paid order.
type OrderCompleter struct {
	orders    OrderPaymentStore
	publisher OrderPublisher
	log       *slog.Logger
	now       func() time.Time
}

func NewOrderCompleter(orders OrderPaymentStore, publisher OrderPublisher, log *slog.Logger) *OrderCompleter {
	return &OrderCompleter{orders: orders, publisher: publisher, log: log, now: time.Now}
}

// Complete returns nil only for the call that performed the transition.
// A concurrent or repeated call gets ErrOrderAlreadyCompleted; an order in
// any other state gets ErrOrderNotPending.
func (c *OrderCompleter) Complete(ctx context.Context, orderID string) error {
	paidAt := c.now().UTC()
	changed, err := c.orders.MarkCompleted(ctx, orderID, paidAt)
	if err != nil {
		return err
	}
	if !changed {
		order, err := c.orders.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("reload order %s: %w", orderID, err)
		}
		if order.PaymentStatus == model.PaymentCompleted {
			return model.ErrOrderAlreadyCompleted
		}
		return fmt.Errorf("order %s is %s: %w", orderID, order.PaymentStatus, model.ErrOrderNotPending)
	}

	if err := c.publisher.PublishOrderUpdate(context.WithoutCancel(ctx), model.OrderUpdate{
		OrderID:       orderID,
		PaymentStatus: model.PaymentCompleted,
		At:            paidAt,
	}); err != nil {
		c.log.Warn("publish order update", slog.String("order_id", orderID), slog.String("error", err.Error()))
	}
	return nil
}
