package navigation

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"cv-builder-be/internal/pkg/apperror"
)

// BackoffConfig tunes network-failure retries.
type BackoffConfig struct {
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	MaxAttempts int
}

func DefaultBackoff() BackoffConfig {
	return BackoffConfig{
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    8 * time.Second,
		MaxAttempts: 5,
	}
}

// IsNetworkError classifies a failure as transient. Structural failures
// (corruption, not-found) are never retried.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	switch apperror.CodeOf(err) {
	case apperror.CodeNetworkError:
		return true
	case apperror.CodeSessionCorrupted, apperror.CodeSessionNotFound, apperror.CodeInvalidSessionId, apperror.CodeValidation:
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"connection refused", "connection reset", "timeout", "temporarily unavailable", "no such host"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// RetryWithExponentialBackoff runs fn until it succeeds, fails with a
// non-network error, or exhausts cfg.MaxAttempts. Delays double from
// BaseDelay up to MaxDelay. Exhaustion surfaces as NETWORK_ERROR.
func RetryWithExponentialBackoff(ctx context.Context, cfg BackoffConfig, fn func() error) error {
	delay := cfg.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsNetworkError(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return apperror.NetworkError("retry cancelled", ctx.Err())
		case <-time.After(delay):
		}

		delay *= 2
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return apperror.NetworkError("retries exhausted", lastErr)
}
