package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginAttemptStore tracks failed login attempts per account in Redis so
// every server instance shares the same view of the counter. Counters
// expire on their own; a successful login resets them.
type LoginAttemptStore struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginAttemptStore creates a LoginAttemptStore allowing maxAttempts
// failures per window.
func NewLoginAttemptStore(client *redis.Client, maxAttempts int64, window time.Duration) *LoginAttemptStore {
	return &LoginAttemptStore{client: client, maxAttempts: maxAttempts, window: window}
}

func (s *LoginAttemptStore) key(email string) string {
	return fmt.Sprintf("login:attempts:%s", email)
}

// Locked reports whether the account has exhausted its attempts.
func (s *LoginAttemptStore) Locked(ctx context.Context, email string) (bool, error) {
	count, err := s.client.Get(ctx, s.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read login attempts: %w", err)
	}
	return count >= s.maxAttempts, nil
}

// RecordFailure increments the account's failure counter, starting the
// expiry window on the first failure.
func (s *LoginAttemptStore) RecordFailure(ctx context.Context, email string) error {
	key := s.key(email)
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			return fmt.Errorf("set login attempt expiry: %w", err)
		}
	}
	return nil
}

// Reset clears the account's failure counter.
func (s *LoginAttemptStore) Reset(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}
