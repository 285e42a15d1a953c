package teams

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	r := NewRateLimiter(ServicePresence)
	require.NotNil(t, r)
	assert.Equal(t, ServicePresence, r.service)

	// Unknown services fall back to a sane default.
	r = NewRateLimiter(ServiceType("bogus"))
	require.NotNil(t, r)
}

func TestRateLimiter_Allow(t *testing.T) {
	r := NewRateLimiter(ServicePresence)

	// Burst allows the first requests through immediately.
	assert.True(t, r.Allow())
}

func TestRateLimiter_Backoff(t *testing.T) {
	r := NewRateLimiter(ServicePresence)

	r.RecordRateLimitError(30)
	assert.False(t, r.Allow(), "requests are blocked during the backoff window")

	// Wait must respect the backoff rather than the bucket.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := r.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_BackoffDefault(t *testing.T) {
	r := NewRateLimiter(ServiceAuthBroker)

	r.RecordRateLimitError(0)
	assert.False(t, r.Allow())
	assert.InDelta(t, 60, time.Until(r.retryAt).Seconds(), 1.0)
}

func TestRateLimiter_WaitWithoutBackoff(t *testing.T) {
	r := NewRateLimiter(ServicePresence)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, r.Wait(ctx))
}
