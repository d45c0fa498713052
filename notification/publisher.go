package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"event_ticketing/model"

	"github.com/redis/go-redis/v9"
)

func OrderChannel(orderID string) string {
	return "order:" + orderID
}

// RedisPublisher fans order updates out over Redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) PublishOrderUpdate(ctx context.Context, update model.OrderUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("encode order update: %w", err)
	}
	if err := p.client.Publish(ctx, OrderChannel(update.OrderID), body).Err(); err != nil {
		return fmt.Errorf("publish order update %s: %w", update.OrderID, err)
	}
	return nil
}

func (p *RedisPublisher) SubscribeOrder(ctx context.Context, orderID string) *redis.PubSub {
	return p.client.Subscribe(ctx, OrderChannel(orderID))
}

type NopPublisher struct{}

func (NopPublisher) PublishOrderUpdate(context.Context, model.OrderUpdate) error { return nil }
