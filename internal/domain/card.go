package domain

// Card represents a single term-definition pair.
type Card struct {
	Term       string
	Definition string
}

// Record is one line of a deck file: a card plus the number of times
// it was answered incorrectly.
type Record struct {
	Card
	Mistakes int
}
