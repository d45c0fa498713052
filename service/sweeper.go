package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"event_ticketing/model"
)

// Sweeper runs the periodic order maintenance jobs.
type Sweeper struct {
	orders       OrderSweepStore
	materializer *TicketMaterializer
	log          *slog.Logger
	now          func() time.Time
}

func NewSweeper(orders OrderSweepStore, materializer *TicketMaterializer, log *slog.Logger) *Sweeper {
	return &Sweeper{orders: orders, materializer: materializer, log: log, now: time.Now}
}

// MaterializeCompleted issues tickets for paid orders that have none yet and
// returns how many orders succeeded.
func (s *Sweeper) MaterializeCompleted(ctx context.Context, batch int) (int, error) {
	orders, err := s.orders.ListCompletedWithoutTickets(ctx, batch)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			return done, ctx.Err()
		}
		_, failure := s.materializer.Materialize(ctx, model.SystemActor(), order.ID).Unwrap()
		if failure != nil {
			s.log.Warn("sweep could not materialize order",
				slog.String("order_id", order.ID),
				slog.String("kind", string(failure.Kind)),
				slog.String("message", failure.Message),
			)
			continue
		}
		done++
	}
	return done, nil
}

// ExpireStale fails PENDING orders older than ttl. Reserved stock is not returned.
func (s *Sweeper) ExpireStale(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, fmt.Errorf("%w: ttl must be positive", model.ErrValidation)
	}
	return s.orders.ExpirePending(ctx, s.now().UTC().Add(-ttl))
}
