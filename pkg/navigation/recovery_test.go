package navigation

import (
	"context"
	"errors"
	"testing"
	"time"

	"cv-builder-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func fastBackoff(attempts int) BackoffConfig {
	return BackoffConfig{
		BaseDelay:   time.Millisecond,
		MaxDelay:    4 * time.Millisecond,
		MaxAttempts: attempts,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := RetryWithExponentialBackoff(context.Background(), fastBackoff(5), func() error {
		calls++
		if calls < 3 {
			return apperror.NetworkError("flaky", nil)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryExhaustionSurfacesNetworkError(t *testing.T) {
	calls := 0
	err := RetryWithExponentialBackoff(context.Background(), fastBackoff(4), func() error {
		calls++
		return errors.New("connection refused")
	})

	assert.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.Equal(t, apperror.CodeNetworkError, apperror.CodeOf(err))
}

func TestRetryDoesNotRetryStructuralFailures(t *testing.T) {
	calls := 0
	corrupted := apperror.SessionCorrupted("step progress missing")
	err := RetryWithExponentialBackoff(context.Background(), fastBackoff(5), func() error {
		calls++
		return corrupted
	})

	assert.Equal(t, 1, calls, "corruption must surface immediately without retry")
	assert.Equal(t, apperror.CodeSessionCorrupted, apperror.CodeOf(err))
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryWithExponentialBackoff(ctx, fastBackoff(5), func() error {
		calls++
		return apperror.NetworkError("flaky", nil)
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, apperror.CodeNetworkError, apperror.CodeOf(err))
}

func TestIsNetworkErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "classified network error", err: apperror.NetworkError("down", nil), want: true},
		{name: "corruption is structural", err: apperror.SessionCorrupted("bad"), want: false},
		{name: "not found is structural", err: apperror.SessionNotFound("gone"), want: false},
		{name: "connection refused string", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "timeout string", err: errors.New("i/o timeout"), want: true},
		{name: "plain failure", err: errors.New("invalid payload"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNetworkError(tt.err))
		})
	}
}
