package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/conorfennell/cardtally/internal/deck"
	"github.com/conorfennell/cardtally/internal/domain"
)

const (
	separator  = ","
	fieldCount = 3
)

// ParseError reports the line of a deck file that could not be decoded.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Encode writes one term,definition,mistakes line per card in insertion
// order. Fields are not escaped, so a card containing the separator or a
// line break is refused before anything is written.
func Encode(w io.Writer, store *deck.Store) (int, error) {
	cards := store.Cards()
	if err := checkEncodable(cards); err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	for _, c := range cards {
		mistakes, _ := store.Stats().Get(c.Term)
		line := strings.Join([]string{c.Term, c.Definition, strconv.Itoa(mistakes)}, separator)
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return 0, err
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return len(cards), nil
}

func checkEncodable(cards []domain.Card) error {
	for _, c := range cards {
		if strings.ContainsAny(c.Term, separator+"\r\n") || strings.ContainsAny(c.Definition, separator+"\r\n") {
			return fmt.Errorf("failed to encode card %q: %w", c.Term, domain.ErrUnencodable)
		}
	}
	return nil
}

// Export writes the store to path, replacing any existing file. The deck
// is written to a temporary file next to path and renamed over it, so a
// failed export leaves the previous file as it was.
func Export(path string, store *deck.Store) (int, error) {
	if err := checkEncodable(store.Cards()); err != nil {
		return 0, fmt.Errorf("failed to export to %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	n, err := Encode(tmp, store)
	if err == nil {
		err = tmp.Chmod(0o644)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to export to %s: %w", path, err)
	}
	slog.Debug("Deck exported", "path", path, "cards", n)
	return n, nil
}

// Decode reads every record from r. Any malformed line fails the whole
// decode. Blank lines are skipped.
func Decode(r io.Reader) ([]domain.Record, error) {
	scanner := bufio.NewScanner(r)
	var records []domain.Record
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func parseLine(line string) (domain.Record, error) {
	fields := strings.Split(line, separator)
	if len(fields) != fieldCount {
		return domain.Record{}, fmt.Errorf("%w: want %d fields, got %d", domain.ErrMalformedRecord, fieldCount, len(fields))
	}
	if fields[0] == "" || fields[1] == "" {
		return domain.Record{}, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, domain.ErrEmptyField)
	}

	mistakes, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil || mistakes < 0 {
		return domain.Record{}, domain.ErrNonIntegerMistakeCount
	}

	return domain.Record{
		Card:     domain.Card{Term: fields[0], Definition: fields[1]},
		Mistakes: mistakes,
	}, nil
}

// Import decodes r and merges the records into store, imported values
// winning over existing ones. Nothing is merged unless every line decodes.
// The returned count is the number of records read, including those
// that overwrote an existing card.
func Import(r io.Reader, store *deck.Store) (int, error) {
	records, err := Decode(r)
	if err != nil {
		return 0, err
	}

	for _, rec := range records {
		for _, evicted := range store.Upsert(rec.Term, rec.Definition, rec.Mistakes) {
			slog.Warn("Card replaced by imported definition", "evicted", evicted, "term", rec.Term)
		}
	}
	return len(records), nil
}

// ImportFile opens path and imports it into store.
func ImportFile(path string, store *deck.Store) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("failed to open %s: %w", path, domain.ErrFileNotFound)
		}
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	n, err := Import(file, store)
	if err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", path, err)
	}
	slog.Debug("Deck imported", "path", path, "records", n)
	return n, nil
}
