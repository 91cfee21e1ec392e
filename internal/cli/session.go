package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/conorfennell/cardtally/internal/codec"
	"github.com/conorfennell/cardtally/internal/deck"
	"github.com/conorfennell/cardtally/internal/domain"
	"github.com/conorfennell/cardtally/internal/quiz"
	"github.com/conorfennell/cardtally/internal/ranking"
	"github.com/conorfennell/cardtally/internal/transcript"
	"github.com/google/uuid"
)

const actionPrompt = "Input the action (add, remove, import, export, ask, exit, log, hardest card, reset stats):"

// Options configures a session.
type Options struct {
	ImportFrom string // imported before the first prompt
	ExportTo   string // exported after exit
	DeckDir    string // searched first for relative import names
	Seed       uint64
}

// Session is one interactive run: a deck, a quiz engine over it, and a
// console that records the transcript.
type Session struct {
	id      string
	store   *deck.Store
	quiz    *quiz.Engine
	console *transcript.Console
	opts    Options
	logger  *slog.Logger
}

// New creates a session reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, opts Options) *Session {
	id := uuid.NewString()
	store := deck.NewStore()
	return &Session{
		id:      id,
		store:   store,
		quiz:    quiz.New(store, quiz.WithSeed(opts.Seed)),
		console: transcript.NewConsole(in, out, &transcript.Log{}),
		opts:    opts,
		logger:  slog.Default().With("session", id),
	}
}

// ID identifies the session in diagnostic logs.
func (s *Session) ID() string {
	return s.id
}

// Store returns the session's deck.
func (s *Session) Store() *deck.Store {
	return s.store
}

// Run imports the startup deck, then handles actions until exit, end of
// input, or cancellation of ctx.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("Session started", "import_from", s.opts.ImportFrom, "export_to", s.opts.ExportTo)

	if s.opts.ImportFrom != "" {
		s.importDeck(s.opts.ImportFrom)
		s.console.Println("")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := s.console.Prompt(actionPrompt)
		if err == nil {
			err = s.dispatch(ctx, strings.TrimSpace(action))
		}
		switch {
		case err == nil:
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			return s.exit()
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			// The input is unusable from here on; still save the deck.
			s.logger.Error("Reading input failed", "error", err)
			s.exit()
			return err
		}
		s.console.Println("")
	}
}

var errExit = errors.New("exit requested")

func (s *Session) dispatch(ctx context.Context, action string) error {
	switch action {
	case "add":
		return s.add()
	case "remove":
		return s.remove()
	case "import":
		return s.importAction()
	case "export":
		return s.exportAction()
	case "ask":
		return s.ask(ctx)
	case "exit":
		return errExit
	case "log":
		return s.saveLog()
	case "hardest card":
		s.hardest()
	case "reset stats":
		s.store.Stats().Reset()
		s.logger.Info("Statistics reset", "cards", s.store.Len())
		s.console.Println("Card statistics have been reset.")
	default:
		s.console.Println("Incorrect input.")
	}
	return nil
}

func (s *Session) add() error {
	term, err := s.readUnique("The card:", s.store.HasTerm, "The card \"%s\" already exists. Try again:")
	if err != nil {
		return err
	}
	definition, err := s.readUnique("The definition of the card:", s.store.HasDefinition, "The definition \"%s\" already exists. Try again:")
	if err != nil {
		return err
	}

	if err := s.store.Add(term, definition); err != nil {
		s.logger.Warn("Card not added", "term", term, "error", err)
		s.console.Println("Incorrect input.")
		return nil
	}
	s.console.Printf("The pair (\"%s\":\"%s\") has been added.", term, definition)
	return nil
}

// readUnique prompts until the reply is non-empty and taken reports false.
func (s *Session) readUnique(prompt string, taken func(string) bool, retry string) (string, error) {
	reply, err := s.console.Prompt(prompt)
	for err == nil {
		switch {
		case reply == "":
			reply, err = s.console.Prompt(prompt)
		case taken(reply):
			reply, err = s.console.Prompt(fmt.Sprintf(retry, reply))
		default:
			return reply, nil
		}
	}
	return "", err
}

func (s *Session) remove() error {
	term, err := s.console.Prompt("Which card?")
	if err != nil {
		return err
	}
	if s.store.Remove(term) {
		s.console.Println("The card has been removed.")
	} else {
		s.console.Printf("Can't remove \"%s\": there is no such card.", term)
	}
	return nil
}

func (s *Session) importAction() error {
	name, err := s.console.Prompt("File name:")
	if err != nil {
		return err
	}
	s.importDeck(name)
	return nil
}

func (s *Session) importDeck(name string) {
	path, err := resolveImportPath(name, s.opts.DeckDir)
	if err != nil {
		s.console.Println("File not found.")
		return
	}

	n, err := codec.ImportFile(path, s.store)
	switch {
	case errors.Is(err, domain.ErrFileNotFound):
		s.console.Println("File not found.")
	case err != nil:
		s.logger.Error("Import failed", "path", path, "error", err)
		s.console.Printf("Cards could not be loaded: %v", err)
	default:
		s.logger.Info("Deck imported", "path", path, "records", n, "cards", s.store.Len())
		s.console.Printf("%d cards have been loaded.", n)
	}
}

func (s *Session) exportAction() error {
	name, err := s.console.Prompt("File name:")
	if err != nil {
		return err
	}
	s.exportDeck(name)
	return nil
}

func (s *Session) exportDeck(path string) {
	n, err := codec.Export(path, s.store)
	if err != nil {
		s.logger.Error("Export failed", "path", path, "error", err)
		s.console.Printf("Cards could not be saved: %v", err)
		return
	}
	s.logger.Info("Deck exported", "path", path, "cards", n)
	s.console.Printf("%d cards have been saved.", n)
}

func (s *Session) ask(ctx context.Context) error {
	reply, err := s.console.Prompt("How many times to ask?")
	if err != nil {
		return err
	}
	count, convErr := strconv.Atoi(strings.TrimSpace(reply))
	if convErr != nil || count < 0 {
		s.console.Println("The number of questions must be a whole number.")
		return nil
	}

	answer := func(_ context.Context, term string) (string, error) {
		return s.console.Prompt(fmt.Sprintf("Print the definition of \"%s\":", term))
	}
	_, err = s.quiz.AskBatch(ctx, count, answer, s.grade)
	if errors.Is(err, domain.ErrEmptyStore) {
		s.console.Println("There are no cards to ask.")
		return nil
	}
	return err
}

func (s *Session) grade(res quiz.Result) {
	switch res.Outcome {
	case quiz.Correct:
		s.console.Println("Correct!")
	case quiz.WrongWithHint:
		s.console.Printf("Wrong. The right answer is \"%s\", but your definition is correct for \"%s\".", res.Expected, res.HintTerm)
	default:
		s.console.Printf("Wrong. The right answer is \"%s\".", res.Expected)
	}
}

func (s *Session) hardest() {
	res := ranking.Hardest(s.store.Stats())
	if res.NoErrors() {
		s.console.Println("There are no cards with errors.")
		return
	}

	quoted := make([]string, len(res.Terms))
	for i, term := range res.Terms {
		quoted[i] = `"` + term + `"`
	}
	if len(quoted) == 1 {
		s.console.Printf("The hardest card is %s. You have %d errors answering it.", quoted[0], res.Mistakes)
		return
	}
	s.console.Printf("The hardest cards are %s. You have %d errors answering them.", strings.Join(quoted, ", "), res.Mistakes)
}

func (s *Session) saveLog() error {
	path, err := s.console.Prompt("File name:")
	if err != nil {
		return err
	}
	if err := s.console.Log().Flush(path); err != nil {
		s.logger.Error("Log not saved", "path", path, "error", err)
		s.console.Printf("The log could not be saved: %v", err)
		return nil
	}
	s.console.Println("The log has been saved.")
	return nil
}

func (s *Session) exit() error {
	s.console.Println("Bye bye!")
	if s.opts.ExportTo != "" {
		s.exportDeck(s.opts.ExportTo)
	}
	s.logger.Info("Session finished", "cards", s.store.Len())
	return nil
}
