package helper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"event_ticketing/config"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

// OrderSweeper is the work the background jobs drive.
type OrderSweeper interface {
	MaterializeCompleted(ctx context.Context, batch int) (int, error)
	ExpireStale(ctx context.Context, ttl time.Duration) (int64, error)
}

// Scheduler owns the ticket sweep (robfig/cron) and the daily order expiry (gocron).
type Scheduler struct {
	sweep  *cron.Cron
	daily  gocron.Scheduler
	cancel context.CancelFunc
}

func StartScheduler(cfg config.JobsConfig, sweeper OrderSweeper, log *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load job timezone %q: %w", cfg.TimeZone, err)
	}
	ctx, cancel := context.WithCancel(context.Background())

	sweep := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err = sweep.AddFunc(cfg.MaterializeCron, func() {
		n, err := sweeper.MaterializeCompleted(ctx, cfg.MaterializeBatch)
		if err != nil {
			log.Error("[CRON] ticket sweep failed", slog.String("error", err.Error()))
			return
		}
		if n > 0 {
			log.Info("[CRON] ticket sweep materialized orders", slog.Int("orders", n))
		}
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("schedule ticket sweep: %w", err)
	}

	daily, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create daily scheduler: %w", err)
	}
	_, err = daily.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(cfg.ExpiryHour, cfg.ExpiryMinute, 0),
			),
		),
		gocron.NewTask(func() {
			n, err := sweeper.ExpireStale(ctx, cfg.PendingOrderTTL)
			if err != nil {
				log.Error("[CRON] order expiry failed", slog.String("error", err.Error()))
				return
			}
			log.Info("[CRON] expired pending orders", slog.Int64("orders", n))
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("schedule order expiry: %w", err)
	}

	sweep.Start()
	daily.Start()

	return &Scheduler{sweep: sweep, daily: daily, cancel: cancel}, nil
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() error {
	s.cancel()
	<-s.sweep.Stop().Done()
	return s.daily.Shutdown()
}
