package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"event_ticketing/constants"
	"event_ticketing/model"

	"github.com/redis/go-redis/v9"
)

const settingsCachePrefix = "settings:"

// SecretResolver looks up the payment webhook secret: Redis cache, then the
// settings table, then the static value from the environment.
type SecretResolver struct {
	cache    redis.Cmdable
	settings SettingStore
	fallback string
	ttl      time.Duration
	log      *slog.Logger
}

func NewSecretResolver(cache redis.Cmdable, settings SettingStore, fallback string, ttl time.Duration, log *slog.Logger) *SecretResolver {
	return &SecretResolver{cache: cache, settings: settings, fallback: fallback, ttl: ttl, log: log}
}

func (s *SecretResolver) PaymentSecret(ctx context.Context) (string, error) {
	key := settingsCachePrefix + constants.SETTING_PAYMENT_SECRET_KEY

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		switch {
		case err == nil && cached != "":
			return cached, nil
		case err != nil && !errors.Is(err, redis.Nil):
			s.log.Warn("settings cache unavailable", slog.String("error", err.Error()))
		}
	}

	value, err := s.settings.Get(ctx, constants.SETTING_PAYMENT_SECRET_KEY)
	switch {
	case err == nil && strings.TrimSpace(value) != "":
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, value, s.ttl).Err(); err != nil {
				s.log.Warn("cache payment secret", slog.String("error", err.Error()))
			}
		}
		return value, nil
	case err != nil && !errors.Is(err, model.ErrSettingNotFound):
		s.log.Warn("read payment secret setting", slog.String("error", err.Error()))
	}

	if s.fallback == "" {
		return "", model.ErrMissingSecret
	}
	return s.fallback, nil
}

// RotatePaymentSecret stores a new secret and drops the cached copy.
func (s *SecretResolver) RotatePaymentSecret(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: secret must not be empty", model.ErrValidation)
	}
	if err := s.settings.Set(ctx, constants.SETTING_PAYMENT_SECRET_KEY, value); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, settingsCachePrefix+constants.SETTING_PAYMENT_SECRET_KEY).Err(); err != nil {
			s.log.Warn("invalidate payment secret cache", slog.String("error", err.Error()))
		}
	}
	return nil
}
