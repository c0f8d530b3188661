package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MemoryStore(t *testing.T) {
	l, err := New(context.Background(), "", "2-M")
	require.NoError(t, err)
	defer l.Close()
	assert.Equal(t, "memory", l.Backend)

	ctx := context.Background()
	first, err := l.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Remaining)
	assert.False(t, first.Reached)

	_, err = l.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	third, err := l.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, third.Reached)

	other, err := l.Get(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, other.Reached)
}

func TestNew_InvalidRate(t *testing.T) {
	_, err := New(context.Background(), "", "ten per minute")
	assert.ErrorContains(t, err, "invalid rate limit")
}

func TestNew_BadRedisURLFallsBack(t *testing.T) {
	l, err := New(context.Background(), "not-a-url://", "5-M")
	require.NoError(t, err)
	assert.Equal(t, "memory", l.Backend)
}
