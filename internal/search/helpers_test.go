package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/docrank/internal/corpus"
)

// buildCorpus creates one module per name, each with the given number of
// units, and returns the built corpus.
func buildCorpus(t *testing.T, units map[string]int) *corpus.Corpus {
	t.Helper()
	root := t.TempDir()
	var paths []string
	for name, n := range units {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "includes"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.yml"), []byte("title: "+name+"\n"), 0o644))
		for i := 1; i <= n; i++ {
			p := filepath.Join(dir, "includes", string(rune('0'+i))+".md")
			require.NoError(t, os.WriteFile(p, nil, 0o644))
			paths = append(paths, p)
		}
	}
	return corpus.Layout{}.Build(paths)
}

func moduleNamed(t *testing.T, c *corpus.Corpus, name string) *corpus.Module {
	t.Helper()
	for _, m := range c.Modules() {
		if m.Name() == name {
			return m
		}
	}
	t.Fatalf("module %s not found", name)
	return nil
}

func newEntry(t *testing.T, topic string, weight float64, source string) *Entry {
	t.Helper()
	e, err := NewEntry(topic, weight, MustCompile(source), 0)
	require.NoError(t, err)
	return e
}
