// Package keywords loads weighted keyword patterns from a row-oriented file.
//
// Each line is "topic,weight,pattern". Lines starting with '#' are comments
// and blank lines are ignored. Everything after the second comma is the
// pattern, kept byte for byte, so patterns may contain commas and quotes.
package keywords

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	docerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/search"
)

// patternCacheSize bounds the number of compiled patterns kept for reuse.
const patternCacheSize = 1024

// maxLineBytes is the longest keyword line accepted.
const maxLineBytes = 1 << 20

// MalformedEntryError reports a keyword row that was dropped.
type MalformedEntryError struct {
	Topic  string
	Row    int
	Reason string
	Err    error
}

func (e *MalformedEntryError) Error() string {
	if e.Topic == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d (topic %q): %s", e.Row, e.Topic, e.Reason)
}

// Unwrap returns a coded ERR_402_MALFORMED_ENTRY error whose cause is the
// underlying parse or compile error, if any.
func (e *MalformedEntryError) Unwrap() error {
	return docerrors.New(docerrors.ErrCodeMalformedEntry, e.Reason, e.Err).
		WithDetail("row", strconv.Itoa(e.Row)).
		WithDetail("topic", e.Topic)
}

// Loader parses keyword files, compiling each distinct pattern source once.
// A Loader is not safe for concurrent use.
type Loader struct {
	patterns *lru.Cache[string, *search.Pattern]
}

// NewLoader creates a Loader with an empty pattern cache.
func NewLoader() (*Loader, error) {
	cache, err := lru.New[string, *search.Pattern](patternCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create pattern cache: %w", err)
	}
	return &Loader{patterns: cache}, nil
}

// Load reads the keyword file at path. See Parse.
func Load(path string) (*search.Topics, []error, error) {
	l, err := NewLoader()
	if err != nil {
		return nil, nil, docerrors.InternalError("keyword loader unavailable", err)
	}
	return l.Load(path)
}

// Parse reads keyword rows from r using a fresh Loader.
func Parse(r io.Reader) (*search.Topics, []error, error) {
	l, err := NewLoader()
	if err != nil {
		return nil, nil, docerrors.InternalError("keyword loader unavailable", err)
	}
	return l.Parse(r)
}

// Load reads the keyword file at path. A missing or unreadable file is a
// fatal ERR_201_KEYWORDS_NOT_FOUND error.
func (l *Loader) Load(path string) (*search.Topics, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, docerrors.FatalInput(docerrors.ErrCodeKeywordsNotFound,
			"cannot open keyword file", err).
			WithDetail("path", path).
			WithSuggestion("Check the --keywords path")
	}
	defer f.Close()

	topics, warnings, err := l.Parse(f)
	if err != nil {
		if de, ok := docerrors.As(err); ok {
			de.WithDetail("path", path)
		}
		return nil, nil, err
	}

	slog.Debug("keywords_loaded",
		slog.String("path", path),
		slog.Int("topics", topics.Len()),
		slog.Int("dropped", len(warnings)))
	return topics, warnings, nil
}

// Parse reads keyword rows from r, one per line. Malformed rows are dropped
// and returned as *MalformedEntryError warnings; the remaining rows still
// load. An error is returned only when reading r itself fails.
func (l *Loader) Parse(r io.Reader) (*search.Topics, []error, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	topics := search.NewTopics()
	var warnings []error
	row := 0
	for sc.Scan() {
		row++
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, werr := l.parseRow(line, row)
		if werr != nil {
			warnings = append(warnings, werr)
			continue
		}
		topics.Add(entry)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, docerrors.FatalInput(docerrors.ErrCodeKeywordsInvalid,
			fmt.Sprintf("failed to read keyword file after row %d", row), err)
	}
	return topics, warnings, nil
}

func (l *Loader) parseRow(line string, row int) (*search.Entry, error) {
	fields := strings.SplitN(line, ",", 3)
	topic := strings.TrimSpace(fields[0])
	if len(fields) < 3 {
		return nil, &MalformedEntryError{Topic: topic, Row: row,
			Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields))}
	}
	if topic == "" {
		return nil, &MalformedEntryError{Row: row, Reason: "missing topic"}
	}

	weightText := strings.TrimSpace(fields[1])
	weight, err := strconv.ParseFloat(weightText, 64)
	if err != nil {
		return nil, &MalformedEntryError{Topic: topic, Row: row,
			Reason: fmt.Sprintf("weight %q is not a number", weightText), Err: err}
	}

	source := fields[2]
	if source == "" {
		return nil, &MalformedEntryError{Topic: topic, Row: row, Reason: "missing pattern"}
	}
	pattern, err := l.compile(source)
	if err != nil {
		return nil, &MalformedEntryError{Topic: topic, Row: row, Reason: err.Error(), Err: err}
	}

	entry, err := search.NewEntry(topic, weight, pattern, row)
	if err != nil {
		return nil, &MalformedEntryError{Topic: topic, Row: row, Reason: err.Error(), Err: err}
	}
	return entry, nil
}

func (l *Loader) compile(source string) (*search.Pattern, error) {
	if p, ok := l.patterns.Get(source); ok {
		return p, nil
	}
	p, err := search.Compile(source)
	if err != nil {
		return nil, err
	}
	l.patterns.Add(source, p)
	return p, nil
}
