package scan

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Aman-CERP/docrank/internal/corpus"
	"github.com/Aman-CERP/docrank/internal/search"
)

var benchWords = []string{
	"azure", "storage", "account", "container", "deploy", "function",
	"network", "security", "identity", "policy", "monitor", "error",
	"pipeline", "cluster", "database", "query", "secret", "vault",
}

// setupBenchCorpus writes modules*units synthetic units of lines lines each.
func setupBenchCorpus(b *testing.B, modules, units, lines int) *corpus.Corpus {
	b.Helper()
	root := b.TempDir()
	rng := rand.New(rand.NewSource(42))

	for m := 0; m < modules; m++ {
		dir := filepath.Join(root, fmt.Sprintf("module-%04d", m))
		if err := os.MkdirAll(filepath.Join(dir, "includes"), 0o755); err != nil {
			b.Fatal(err)
		}
		desc := fmt.Sprintf("uid: learn.module-%04d\ntitle: Module %d\n", m, m)
		if err := os.WriteFile(filepath.Join(dir, "index.yml"), []byte(desc), 0o644); err != nil {
			b.Fatal(err)
		}
		for u := 0; u < units; u++ {
			var sb strings.Builder
			for l := 0; l < lines; l++ {
				for w := 0; w < 12; w++ {
					if w > 0 {
						sb.WriteByte(' ')
					}
					sb.WriteString(benchWords[rng.Intn(len(benchWords))])
				}
				sb.WriteByte('\n')
			}
			name := filepath.Join(dir, "includes", fmt.Sprintf("%d-unit.md", u+1))
			if err := os.WriteFile(name, []byte(sb.String()), 0o644); err != nil {
				b.Fatal(err)
			}
		}
	}

	paths, err := corpus.Discover(context.Background(), corpus.DiscoverOptions{Root: root})
	if err != nil {
		b.Fatal(err)
	}
	return corpus.Layout{}.Build(paths)
}

func benchTopics(b *testing.B) *search.Topics {
	b.Helper()
	topics := search.NewTopics()
	patterns := map[string][]string{
		"storage":  {`storage`, `container`, `blob|queue|table`},
		"security": {`secret`, `vault`, `identity|policy`},
		"ops":      {`monitor`, `pipeline`, `deploy(ment)?`},
	}
	for topic, sources := range patterns {
		for i, src := range sources {
			e, err := search.NewEntry(topic, float64(i+1), search.MustCompile(src), 0)
			if err != nil {
				b.Fatal(err)
			}
			topics.Add(e)
		}
	}
	return topics
}

// BenchmarkEngine_Scan compares sequential and parallel scans at a few
// corpus sizes.
func BenchmarkEngine_Scan(b *testing.B) {
	scales := []struct{ modules, units int }{
		{10, 5},
		{100, 5},
		{200, 10},
	}

	for _, scale := range scales {
		c := setupBenchCorpus(b, scale.modules, scale.units, 40)
		topics := benchTopics(b)

		for _, workers := range []int{1, 4} {
			name := fmt.Sprintf("units_%d/workers_%d", scale.modules*scale.units, workers)
			b.Run(name, func(b *testing.B) {
				engine := &Engine{Workers: workers}
				ctx := context.Background()

				b.ResetTimer()
				b.ReportAllocs()

				for i := 0; i < b.N; i++ {
					if _, err := engine.Scan(ctx, c, topics, ""); err != nil {
						b.Fatalf("scan failed: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkRank measures ranking over a scanned corpus.
func BenchmarkRank(b *testing.B) {
	c := setupBenchCorpus(b, 100, 5, 40)
	topics := benchTopics(b)
	if _, err := (&Engine{}).Scan(context.Background(), c, topics, ""); err != nil {
		b.Fatal(err)
	}
	all := topics.All()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		for _, t := range all {
			_ = search.Rank(t.Name, t.Entries)
		}
	}
}
