package backoff_test

import (
	"testing"
	"time"

	"catalogo/pkg/backoff"

	"github.com/stretchr/testify/assert"
)

func TestExponential(t *testing.T) {
	base := time.Second
	max := 4 * time.Second

	assert.Equal(t, 1*time.Second, backoff.Exponential(base, max, 0))
	assert.Equal(t, 2*time.Second, backoff.Exponential(base, max, 1))
	assert.Equal(t, 4*time.Second, backoff.Exponential(base, max, 2))
	// Capped once the doubling passes max.
	assert.Equal(t, 4*time.Second, backoff.Exponential(base, max, 3))
	assert.Equal(t, 4*time.Second, backoff.Exponential(base, max, 10))
}

func TestExponentialBaseAboveMax(t *testing.T) {
	assert.Equal(t, time.Second, backoff.Exponential(5*time.Second, time.Second, 0))
}
