package mem

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOTPStore keeps codes, attempt counters and resend throttles in Redis
// so every API replica sees the same state.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func otpKey(phone string) string      { return fmt.Sprintf("otp:%s", phone) }
func attemptsKey(phone string) string { return fmt.Sprintf("otp:att:%s", phone) }
func resendKey(phone string) string   { return fmt.Sprintf("otp:res:%s", phone) }

func (s *RedisOTPStore) Save(ctx context.Context, phone, code string, ttl, resendWindow time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, otpKey(phone), code, ttl)
	pipe.Set(ctx, attemptsKey(phone), 0, ttl)
	pipe.Set(ctx, resendKey(phone), 1, resendWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Verify(ctx context.Context, phone, code string, maxAttempts int) error {
	exists, err := s.client.Exists(ctx, otpKey(phone)).Result()
	if err != nil {
		return fmt.Errorf("read otp: %w", err)
	}
	if exists == 0 {
		return ErrOTPNotFound
	}

	attempts, err := s.client.Incr(ctx, attemptsKey(phone)).Result()
	if err != nil {
		return fmt.Errorf("increment otp attempts: %w", err)
	}
	if attempts > int64(maxAttempts) {
		s.client.Del(ctx, otpKey(phone), attemptsKey(phone))
		return ErrOTPMaxAttempts
	}

	stored, err := s.client.Get(ctx, otpKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("read otp: %w", err)
	}
	if stored != code {
		return ErrOTPMismatch
	}

	s.client.Del(ctx, otpKey(phone), attemptsKey(phone))
	return nil
}

func (s *RedisOTPStore) CanResend(ctx context.Context, phone string) (bool, time.Duration, error) {
	ttl, err := s.client.TTL(ctx, resendKey(phone)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("check resend ttl: %w", err)
	}
	if ttl <= 0 {
		return true, 0, nil
	}
	return false, ttl, nil
}
