package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LimiterConfig holds login throttling parameters.
type LimiterConfig struct {
	MaxAttempts int
	Window      time.Duration
}

// LoginLimiter counts failed logins per email and per IP in fixed windows.
// Key format: login:fail:email:<email> and login:fail:ip:<ip>
type LoginLimiter struct {
	client redis.UniversalClient
	cfg    LimiterConfig
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client redis.UniversalClient, cfg LimiterConfig) *LoginLimiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	return &LoginLimiter{client: client, cfg: cfg}
}

// Check returns domain.ErrTooManyAttempts once either counter has reached
// the budget for the current window.
func (l *LoginLimiter) Check(ctx context.Context, email, ip string) error {
	for _, key := range l.keys(email, ip) {
		count, err := l.client.Get(ctx, key).Int64()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return fmt.Errorf("limiter check: %w", err)
		}
		if count >= int64(l.cfg.MaxAttempts) {
			return domain.ErrTooManyAttempts
		}
	}
	return nil
}

// Fail records one failed attempt against both counters.
func (l *LoginLimiter) Fail(ctx context.Context, email, ip string) error {
	throttled := false
	for _, key := range l.keys(email, ip) {
		count, err := l.incrementWithTTL(ctx, key)
		if err != nil {
			return err
		}
		if count >= int64(l.cfg.MaxAttempts) {
			throttled = true
		}
	}
	if throttled {
		return domain.ErrTooManyAttempts
	}
	return nil
}

// Reset clears the email counter after a successful login. The IP counter is
// left to expire so one good account cannot launder guesses against others.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	if err := l.client.Del(ctx, emailKey(email)).Err(); err != nil {
		return fmt.Errorf("limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) incrementWithTTL(ctx context.Context, key string) (int64, error) {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("limiter incr: %w", err)
	}
	// Fixed window: the TTL is only set on the first hit.
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.cfg.Window).Err(); err != nil {
			return 0, fmt.Errorf("limiter expire: %w", err)
		}
	}
	return count, nil
}

func (l *LoginLimiter) keys(email, ip string) []string {
	keys := make([]string, 0, 2)
	if email != "" {
		keys = append(keys, emailKey(email))
	}
	if ip != "" {
		keys = append(keys, "login:fail:ip:"+ip)
	}
	return keys
}

func emailKey(email string) string { return "login:fail:email:" + email }
