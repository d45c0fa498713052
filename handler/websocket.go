package handler

import (
	"context"
	"log/slog"

	"event_ticketing/model"
	"event_ticketing/monitoring"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// OrderStreamUpgrade authorizes the caller for the order before the
// connection is upgraded.
func (h *Handler) OrderStreamUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	s, _ := session(c)

	order, fail := h.Orders.GetOrder(c.UserContext(), s.Actor(), c.Params("orderId")).Unwrap()
	if fail != nil {
		return failure(c, fail)
	}

	c.Locals("orderSnapshot", model.OrderUpdate{
		OrderID:          order.ID,
		PaymentStatus:    order.PaymentStatus,
		TicketsGenerated: len(order.Tickets),
		At:               order.UpdatedAt,
	})
	return c.Next()
}

// OrderStream sends the current order state and then relays every update
// published on the order's channel until the client goes away.
func (h *Handler) OrderStream(conn *websocket.Conn) {
	snapshot, _ := conn.Locals("orderSnapshot").(model.OrderUpdate)
	log := h.Log.With(slog.String("order_id", snapshot.OrderID))

	monitoring.OrderStreamOpened()
	defer monitoring.OrderStreamClosed()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := conn.WriteJSON(snapshot); err != nil {
		return
	}

	pubsub := h.OrderFeed.SubscribeOrder(ctx, snapshot.OrderID)
	defer pubsub.Close()

	// The client only ever closes; a failed read ends the stream.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-channel:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Debug("order stream write failed", slog.String("error", err.Error()))
				return
			}
		}
	}
}
