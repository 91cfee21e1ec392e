package ranking

import (
	"testing"

	"github.com/conorfennell/cardtally/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHardest(t *testing.T) {
	testCases := []struct {
		name         string
		terms        []string
		counts       []int
		wantNoErrors bool
		wantMistakes int
		wantTerms    []string
	}{
		{
			name:         "Empty stats",
			wantNoErrors: true,
		},
		{
			name:         "All zero",
			terms:        []string{"A", "B"},
			counts:       []int{0, 0},
			wantNoErrors: true,
		},
		{
			name:         "Single hardest",
			terms:        []string{"A", "B", "C"},
			counts:       []int{1, 4, 2},
			wantMistakes: 4,
			wantTerms:    []string{"B"},
		},
		{
			name:         "Tie reports all",
			terms:        []string{"A", "B", "C"},
			counts:       []int{3, 3, 1},
			wantMistakes: 3,
			wantTerms:    []string{"A", "B"},
		},
		{
			name:         "Tie keeps insertion order",
			terms:        []string{"Z", "M", "A"},
			counts:       []int{2, 0, 2},
			wantMistakes: 2,
			wantTerms:    []string{"Z", "A"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stats := deck.NewStats()
			for i, term := range tc.terms {
				stats.Set(term, tc.counts[i])
			}

			got := Hardest(stats)
			require.Equal(t, tc.wantNoErrors, got.NoErrors())
			if tc.wantNoErrors {
				return
			}
			assert.Equal(t, tc.wantMistakes, got.Mistakes)
			assert.Equal(t, tc.wantTerms, got.Terms)
		})
	}
}
