package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/conorfennell/cardtally/internal/deck"
	"github.com/conorfennell/cardtally/internal/domain"
)

// Outcome classifies an answer.
type Outcome int

const (
	Correct Outcome = iota
	Wrong
	// WrongWithHint means the answer is the definition of another card.
	WrongWithHint
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	case WrongWithHint:
		return "wrong_with_hint"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the graded answer to one question.
type Result struct {
	Term     string
	Expected string
	Given    string
	Outcome  Outcome
	HintTerm string // set only for WrongWithHint
}

// AnswerFunc asks the user for the definition of term and returns the reply.
type AnswerFunc func(ctx context.Context, term string) (string, error)

// Engine draws questions from a store and records mistakes in its stats.
type Engine struct {
	store *deck.Store
	rng   *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used to pick terms.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithSeed seeds the random source. A zero seed leaves the default.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = rand.New(rand.NewPCG(seed, seed))
		}
	}
}

// New creates an engine over store.
func New(store *deck.Store, opts ...Option) *Engine {
	now := uint64(time.Now().UnixNano())
	e := &Engine{
		store: store,
		rng:   rand.New(rand.NewPCG(now, now>>1)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pick returns a uniformly random term. The same term may be picked
// again on the next call.
func (e *Engine) Pick() (string, error) {
	terms := e.store.Terms()
	if len(terms) == 0 {
		return "", domain.ErrEmptyStore
	}
	return terms[e.rng.IntN(len(terms))], nil
}

// Check grades answer against the definition of term. A wrong answer
// counts as a mistake for term, never for the hinted card.
func (e *Engine) Check(term, answer string) (Result, error) {
	definition, ok := e.store.Get(term)
	if !ok {
		return Result{}, fmt.Errorf("failed to check answer for %q: %w", term, domain.ErrCardNotFound)
	}

	res := Result{Term: term, Expected: definition, Given: answer}
	if answer == definition {
		res.Outcome = Correct
		return res, nil
	}

	res.Outcome = Wrong
	if other, found := e.store.ReverseIndex()[answer]; found {
		res.Outcome = WrongWithHint
		res.HintTerm = other
	}
	if err := e.store.Stats().Increment(term); err != nil {
		return Result{}, err
	}
	return res, nil
}

// AskBatch asks count random questions. graded, if not nil, is called
// with each result before the next question is drawn. If answer fails,
// the results gathered so far are returned along with the error.
func (e *Engine) AskBatch(ctx context.Context, count int, answer AnswerFunc, graded func(Result)) ([]Result, error) {
	if count < 0 {
		return nil, domain.ErrNegativeCount
	}
	if count > 0 && e.store.Len() == 0 {
		return nil, domain.ErrEmptyStore
	}

	results := make([]Result, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		term, err := e.Pick()
		if err != nil {
			return results, err
		}
		given, err := answer(ctx, term)
		if err != nil {
			return results, fmt.Errorf("failed to read answer for %q: %w", term, err)
		}
		res, err := e.Check(term, given)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if graded != nil {
			graded(res)
		}
	}
	return results, nil
}
