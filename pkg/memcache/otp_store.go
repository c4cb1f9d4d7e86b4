// pkg/mem/otp_store.go
package mem

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrOTPNotFound    = errors.New("otp not found or expired")
	ErrOTPMismatch    = errors.New("otp does not match")
	ErrOTPMaxAttempts = errors.New("otp attempts exhausted")
)

type OTPStore interface {
	// Save stores code for phone, resetting the attempt counter, and opens a
	// resend window during which CanResend reports false.
	Save(ctx context.Context, phone, code string, ttl, resendWindow time.Duration) error

	// Verify consumes the code on success. Every call counts as an attempt;
	// once maxAttempts is exceeded the code is discarded.
	Verify(ctx context.Context, phone, code string, maxAttempts int) error

	// CanResend returns false and the remaining wait while the window is open.
	CanResend(ctx context.Context, phone string) (bool, time.Duration, error)
}

type entry struct {
	code        string
	attempts    int
	expiresAt   time.Time
	resendAfter time.Time
}

type MemoryOTPStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemoryOTPStore) Save(_ context.Context, phone, code string, ttl, resendWindow time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.data[phone] = entry{
		code:        code,
		expiresAt:   now.Add(ttl),
		resendAfter: now.Add(resendWindow),
	}
	return nil
}

func (s *MemoryOTPStore) Verify(_ context.Context, phone, code string, maxAttempts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[phone]
	if !ok || e.code == "" {
		return ErrOTPNotFound
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, phone)
		return ErrOTPNotFound
	}

	e.attempts++
	if e.attempts > maxAttempts {
		delete(s.data, phone)
		return ErrOTPMaxAttempts
	}
	if e.code != code {
		s.data[phone] = e
		return ErrOTPMismatch
	}

	// single-use; keep the resend window
	e.code = ""
	s.data[phone] = e
	return nil
}

func (s *MemoryOTPStore) CanResend(_ context.Context, phone string) (bool, time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[phone]
	if !ok {
		return true, 0, nil
	}
	wait := e.resendAfter.Sub(s.now())
	if wait <= 0 {
		return true, 0, nil
	}
	return false, wait, nil
}
