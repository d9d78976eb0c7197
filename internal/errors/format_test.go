package errors

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForCLI(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "nil error",
			err:      nil,
			contains: nil,
		},
		{
			name: "doc error with suggestion",
			err: New(ErrCodeKeywordsNotFound, "keyword file not found", nil).
				WithSuggestion("Check the --keywords path"),
			contains: []string{"Error: keyword file not found", "Hint: Check the --keywords path", "Code: ERR_201_KEYWORDS_NOT_FOUND"},
		},
		{
			name:     "standard error",
			err:      errors.New("boom"),
			contains: []string{"Error: boom", "Code: ERR_501_INTERNAL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatForCLI(tt.err)
			if tt.err == nil {
				assert.Empty(t, out)
				return
			}
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(ErrCodeCorpusRoot, "corpus root missing", errors.New("stat /docs: no such file")).
		WithDetail("root", "/docs")

	data, jerr := FormatJSON(err)
	require.NoError(t, jerr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ErrCodeCorpusRoot, decoded["code"])
	assert.Equal(t, "FATAL", decoded["severity"])
	assert.Equal(t, "stat /docs: no such file", decoded["cause"])
}

func TestLogAttrs(t *testing.T) {
	err := New(ErrCodeUnitUnreadable, "unit unreadable", nil).
		WithDetail("unit", "/docs/m/includes/1.md").
		WithDetail("module", "/docs/m")

	attrs := LogAttrs(err)

	// error_code, error, severity, then details sorted by key
	require.Len(t, attrs, 5)
	assert.Equal(t, "error_code="+ErrCodeUnitUnreadable, attrString(attrs[0]))
	assert.Equal(t, "module=/docs/m", attrString(attrs[3]))
	assert.Equal(t, "unit=/docs/m/includes/1.md", attrString(attrs[4]))

	assert.Nil(t, LogAttrs(nil))
	assert.Len(t, LogAttrs(errors.New("plain")), 1)
}

func attrString(a any) string {
	type stringer interface{ String() string }
	if s, ok := a.(stringer); ok {
		return s.String()
	}
	return ""
}
