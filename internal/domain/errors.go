package domain

import "errors"

var (
	// ErrDuplicateTerm is returned when a card with the same term already exists.
	ErrDuplicateTerm = errors.New("term already exists")

	// ErrDuplicateDefinition is returned when another card already uses the definition.
	ErrDuplicateDefinition = errors.New("definition already exists")

	// ErrEmptyField is returned when a term or definition is the empty string.
	ErrEmptyField = errors.New("term and definition must not be empty")

	ErrCardNotFound = errors.New("card not found")
	ErrEmptyStore   = errors.New("no cards in the deck")

	// ErrNegativeCount is returned when a quiz is asked for fewer than zero questions.
	ErrNegativeCount = errors.New("question count must not be negative")

	ErrMalformedRecord        = errors.New("malformed record")
	ErrNonIntegerMistakeCount = errors.New("mistake count is not a non-negative integer")
	ErrUnencodable            = errors.New("card cannot be encoded")
	ErrFileNotFound           = errors.New("file not found")
)
