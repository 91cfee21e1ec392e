package ranking

import "github.com/conorfennell/cardtally/internal/deck"

// Result lists every term sharing the highest non-zero mistake count.
type Result struct {
	Mistakes int
	Terms    []string
}

// NoErrors reports whether no card has been answered incorrectly.
func (r Result) NoErrors() bool {
	return len(r.Terms) == 0
}

// Hardest groups terms by mistake count and returns the top group.
// Ties are all returned, in the order the terms were added. Terms
// with zero mistakes are never ranked.
func Hardest(stats *deck.Stats) Result {
	var res Result
	for _, term := range stats.Terms() {
		n, _ := stats.Get(term)
		switch {
		case n == 0 || n < res.Mistakes:
		case n > res.Mistakes:
			res = Result{Mistakes: n, Terms: []string{term}}
		default:
			res.Terms = append(res.Terms, term)
		}
	}
	return res
}
