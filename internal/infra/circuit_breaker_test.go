package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAgentDown = errors.New("connection refused")

func falha() error   { return errAgentDown }
func sucesso() error { return nil }

func newTestCB(openTimeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      openTimeout,
	})
}

// Zero-value config falls back to the printer-agent profile: trip after 3
// consecutive failures.
func TestCircuitBreakerZeroConfigUsesDefaults(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})

	require.Error(t, cb.Execute(falha))
	require.Error(t, cb.Execute(falha))
	assert.Equal(t, CBClosed, cb.State())

	require.Error(t, cb.Execute(falha))
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreakerTripsAfterThreshold(t *testing.T) {
	cb := newTestCB(time.Minute)

	for i := 0; i < 3; i++ {
		assert.Equal(t, errAgentDown, cb.Execute(falha))
	}
	assert.Equal(t, CBOpen, cb.State())

	// fast-fail without invoking fn
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := newTestCB(time.Minute)

	require.Error(t, cb.Execute(falha))
	require.Error(t, cb.Execute(falha))
	require.NoError(t, cb.Execute(sucesso))
	require.Error(t, cb.Execute(falha))
	require.Error(t, cb.Execute(falha))

	// 2 falhas após o reset: ainda fechado
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb := newTestCB(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(falha)
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	// duas sondas bem-sucedidas fecham o circuito
	require.NoError(t, cb.Execute(sucesso))
	require.NoError(t, cb.Execute(sucesso))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerHalfOpenProbeFailureReopens(t *testing.T) {
	cb := newTestCB(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(falha)
	}
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(falha))
	assert.Equal(t, CBOpen, cb.State())
}
