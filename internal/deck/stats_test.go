package deck

import (
	"testing"

	"github.com/conorfennell/cardtally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsIncrement(t *testing.T) {
	s := NewStats()
	s.Set("a", 0)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Increment("a"))
	}
	n, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	assert.ErrorIs(t, s.Increment("missing"), domain.ErrCardNotFound)
	assert.Equal(t, 1, s.Len(), "a failed increment must not start tracking the term")
}

func TestStatsReset(t *testing.T) {
	s := NewStats()
	s.Set("a", 4)
	s.Set("b", 1)
	s.Set("c", 0)

	s.Reset()

	assert.Equal(t, map[string]int{"a": 0, "b": 0, "c": 0}, s.Snapshot())
	assert.Equal(t, []string{"a", "b", "c"}, s.Terms(), "reset keeps every term in order")
}

func TestStatsSetClampsNegative(t *testing.T) {
	s := NewStats()
	s.Set("a", -2)

	n, _ := s.Get("a")
	assert.Zero(t, n)
}

func TestStatsSnapshotIsCopy(t *testing.T) {
	s := NewStats()
	s.Set("a", 1)
	snap := s.Snapshot()
	snap["a"] = 99

	n, _ := s.Get("a")
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a"}, s.Terms())
}

func TestStatsDelete(t *testing.T) {
	s := NewStats()
	s.Set("a", 2)
	s.Delete("a")
	s.Delete("never tracked")

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}
