package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/mockcoll/collection"
)

// AssertErrorIs checks that err is non-nil and wraps target.
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, target), "expected %v, got: %v", target, err)
}

// AssertValues checks that c holds want in iteration order.
func AssertValues[E any](t *testing.T, want []E, c collection.Collection[E]) {
	t.Helper()
	require.NotNil(t, c)
	assert.Equal(t, want, c.Values())
}

// AssertDistinctMocks checks that listeners are n distinct *MockListener values.
func AssertDistinctMocks(t *testing.T, n int, listeners []Listener) {
	t.Helper()
	require.Len(t, listeners, n)
	seen := make(map[Listener]bool, n)
	for _, l := range listeners {
		require.IsType(t, &MockListener{}, l)
		assert.False(t, seen[l], "listener %v appears twice", l)
		seen[l] = true
	}
}
