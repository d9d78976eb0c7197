// Package scan runs keyword entries over every unit of a corpus and records
// per-unit and per-module hit counts on each entry.
package scan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/docrank/internal/corpus"
	docerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/search"
)

// DefaultMaxLineBytes is the longest line a unit may contain.
const DefaultMaxLineBytes = 1 << 20

// OpenFunc opens a unit for reading.
type OpenFunc func(path string) (io.ReadCloser, error)

// Engine scans a corpus. The zero value scans sequentially.
type Engine struct {
	// Workers is the number of units scanned concurrently. Values below 2
	// scan sequentially.
	Workers int
	// MaxLineBytes bounds line length (default: DefaultMaxLineBytes).
	MaxLineBytes int
	// Progress, if set, is called after each unit with the number of units
	// processed so far and the total.
	Progress func(done, total int)
	// Open opens unit files (default: os.Open).
	Open OpenFunc
}

// Stats summarizes a scan.
type Stats struct {
	Modules  int
	Units    int
	Lines    int
	Skipped  []error
	Duration time.Duration
}

// UnreadableUnitError reports a unit that could not be opened or read. The
// unit contributes no hits.
type UnreadableUnitError struct {
	Path string
	Err  error
}

func (e *UnreadableUnitError) Error() string {
	return fmt.Sprintf("unreadable unit %s: %v", e.Path, e.Err)
}

// Unwrap returns a coded ERR_204_UNIT_UNREADABLE error.
func (e *UnreadableUnitError) Unwrap() error {
	return docerrors.New(docerrors.ErrCodeUnitUnreadable, e.Err.Error(), e.Err).
		WithDetail("unit", e.Path)
}

// Scan resets the results of every entry in the topics selected by filter
// and counts pattern matches line by line over all units of c. An empty
// filter selects every topic. Entries of other topics are left untouched.
//
// A unit that cannot be read is skipped and reported in Stats.Skipped; any
// counts it produced before failing are discarded.
func (e *Engine) Scan(ctx context.Context, c *corpus.Corpus, topics *search.Topics, filter string) (Stats, error) {
	start := time.Now()
	entries := search.Entries(topics.Select(filter))
	for _, entry := range entries {
		entry.Results.Reset()
	}

	units := c.Units()
	stats := Stats{Modules: len(c.Modules())}

	slog.Debug("scan_started",
		slog.Int("modules", stats.Modules),
		slog.Int("units", len(units)),
		slog.Int("entries", len(entries)),
		slog.Int("workers", e.workers()))

	var err error
	if e.workers() > 1 && len(units) > 1 {
		err = e.scanParallel(ctx, units, entries, &stats)
	} else {
		err = e.scanSequential(ctx, units, entries, &stats)
	}
	stats.Duration = time.Since(start)
	if err != nil {
		return stats, err
	}

	slog.Debug("scan_completed",
		slog.Int("units", stats.Units),
		slog.Int("lines", stats.Lines),
		slog.Int("skipped", len(stats.Skipped)),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

func (e *Engine) workers() int {
	if e.Workers < 1 {
		return 1
	}
	return e.Workers
}

func (e *Engine) open(path string) (io.ReadCloser, error) {
	if e.Open != nil {
		return e.Open(path)
	}
	return os.Open(path)
}

func (e *Engine) scanSequential(ctx context.Context, units []*corpus.Unit, entries []*search.Entry, stats *Stats) error {
	counts := make([]int, len(entries))
	for i, u := range units {
		if err := ctx.Err(); err != nil {
			return err
		}

		lines, err := e.scanUnit(u, entries, counts)
		if err != nil {
			stats.Skipped = append(stats.Skipped, skip(u, err))
		} else {
			commit(u, entries, counts, func(j int) *search.Results { return entries[j].Results })
			stats.Units++
			stats.Lines += lines
		}

		if e.Progress != nil {
			e.Progress(i+1, len(units))
		}
	}
	return nil
}

// partial is one worker's private accumulator.
type partial struct {
	results []*search.Results
	units   int
	lines   int
	skipped []error
}

func (e *Engine) scanParallel(ctx context.Context, units []*corpus.Unit, entries []*search.Entry, stats *Stats) error {
	g, gctx := errgroup.WithContext(ctx)

	jobs := make(chan *corpus.Unit)
	g.Go(func() error {
		defer close(jobs)
		for _, u := range units {
			select {
			case jobs <- u:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var (
		mu   sync.Mutex
		done int
	)
	partials := make([]*partial, e.workers())
	for w := range partials {
		p := &partial{results: make([]*search.Results, len(entries))}
		for j := range p.results {
			p.results[j] = search.NewResults()
		}
		partials[w] = p

		g.Go(func() error {
			counts := make([]int, len(entries))
			for u := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}

				lines, err := e.scanUnit(u, entries, counts)
				if err != nil {
					p.skipped = append(p.skipped, skip(u, err))
				} else {
					commit(u, entries, counts, func(j int) *search.Results { return p.results[j] })
					p.units++
					p.lines += lines
				}

				if e.Progress != nil {
					mu.Lock()
					done++
					e.Progress(done, len(units))
					mu.Unlock()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range partials {
		for j, r := range p.results {
			entries[j].Results.Merge(r)
		}
		stats.Units += p.units
		stats.Lines += p.lines
		stats.Skipped = append(stats.Skipped, p.skipped...)
	}
	sort.Slice(stats.Skipped, func(i, j int) bool {
		return skippedPath(stats.Skipped[i]) < skippedPath(stats.Skipped[j])
	})
	return nil
}

// scanUnit counts matches of every entry in u into counts, which it zeroes
// first. It returns the number of lines read.
func (e *Engine) scanUnit(u *corpus.Unit, entries []*search.Entry, counts []int) (int, error) {
	clear(counts)

	f, err := e.open(u.Path())
	if err != nil {
		return 0, err
	}
	defer f.Close()

	maxLine := e.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, min(maxLine, 64*1024)), maxLine)

	lines := 0
	for sc.Scan() {
		line := sc.Text()
		lines++
		for j, entry := range entries {
			counts[j] += entry.Pattern().Count(line)
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return lines, nil
}

// commit adds the per-entry counts of a fully read unit to the results
// chosen by target.
func commit(u *corpus.Unit, entries []*search.Entry, counts []int, target func(j int) *search.Results) {
	for j := range entries {
		target(j).Add(u, counts[j])
	}
}

func skip(u *corpus.Unit, err error) error {
	slog.Warn("unit_skipped",
		slog.String("unit", u.Path()),
		slog.String("error", err.Error()))
	return &UnreadableUnitError{Path: u.Path(), Err: err}
}

func skippedPath(err error) string {
	if ue, ok := err.(*UnreadableUnitError); ok {
		return ue.Path
	}
	return ""
}
