package search

import (
	"fmt"
	"regexp"

	docerrors "github.com/Aman-CERP/docrank/internal/errors"
)

// Pattern is a compiled keyword pattern. It is immutable and safe for
// concurrent use.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// InvalidPatternError reports a pattern source that failed to compile.
type InvalidPatternError struct {
	Source string
	Err    error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Source, e.Err)
}

// Unwrap returns a coded ERR_403_INVALID_PATTERN error wrapping the
// regexp error.
func (e *InvalidPatternError) Unwrap() error {
	return docerrors.New(docerrors.ErrCodeInvalidPattern, e.Err.Error(), e.Err)
}

// Compile compiles source using RE2 syntax. Multi-line mode is never turned
// on, so ^ and $ bind to the start and end of the line being matched.
func Compile(source string) (*Pattern, error) {
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, &InvalidPatternError{Source: source, Err: err}
	}
	return &Pattern{source: source, re: re}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level patterns.
func MustCompile(source string) *Pattern {
	p, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the pattern text.
func (p *Pattern) Source() string { return p.source }

// Count returns the number of non-overlapping matches in line.
// Callers pass a single line without its terminator; matches never span lines.
func (p *Pattern) Count(line string) int {
	return len(p.re.FindAllStringIndex(line, -1))
}

func (p *Pattern) String() string { return p.source }
