package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docerrors "github.com/Aman-CERP/docrank/internal/errors"
)

func TestPattern_Count(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		line    string
		want    int
	}{
		{name: "no match", pattern: "error", line: "all good here", want: 0},
		{name: "single match", pattern: "error", line: "an error occurred", want: 1},
		{name: "multiple matches", pattern: "error", line: "error, error and error", want: 3},
		{name: "non-overlapping", pattern: "aa", line: "aaaa", want: 2},
		{name: "case sensitive by default", pattern: "Error", line: "error ERROR Error", want: 1},
		{name: "inline case flag", pattern: "(?i)error", line: "error ERROR Error", want: 3},
		{name: "anchor binds to line start", pattern: "^#", line: "# heading # not", want: 1},
		{name: "end anchor", pattern: "done$", line: "done and done", want: 1},
		{name: "character class", pattern: "v[0-9]+", line: "v1 v22 vx", want: 2},
		{name: "group alternatives", pattern: "(warn|error)s?", line: "warns errors warn", want: 3},
		{name: "word boundary", pattern: `\bgo\b`, line: "go gopher go", want: 2},
		{name: "empty line", pattern: "x", line: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Count(tt.line))
		})
	}
}

func TestPattern_LineScoped(t *testing.T) {
	// A pattern spanning a newline only matches when handed both lines at
	// once, which the scan engine never does.
	p := MustCompile(`foo\nbar`)
	assert.Equal(t, 0, p.Count("foo"))
	assert.Equal(t, 0, p.Count("bar"))
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile("([unclosed")

	require.Error(t, err)
	var ipe *InvalidPatternError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, "([unclosed", ipe.Source)
	assert.Equal(t, docerrors.ErrCodeInvalidPattern, docerrors.GetCode(err))
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("(") })
}

func TestPattern_Source(t *testing.T) {
	p := MustCompile("warn(ing)?")
	assert.Equal(t, "warn(ing)?", p.Source())
	assert.Equal(t, "warn(ing)?", p.String())
}
