package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/docrank/internal/config"
	"github.com/Aman-CERP/docrank/internal/corpus"
	docerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/keywords"
	"github.com/Aman-CERP/docrank/internal/report"
	"github.com/Aman-CERP/docrank/internal/scan"
)

// rankOptions holds the root command's ranking flags.
type rankOptions struct {
	keywords string
	topic    string
	verbose  bool
	root     string
	format   string
	workers  int
	noColor  bool
}

// apply overrides cfg with flags set on the command line.
func (o *rankOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Corpus.Root = o.root
	}
	if flags.Changed("format") {
		cfg.Report.Format = o.format
	}
	if flags.Changed("workers") {
		cfg.Scan.Workers = o.workers
	}
	if o.noColor {
		cfg.Report.Color = config.ColorNever
	}
	return cfg.Validate()
}

// runRank loads keywords, scans the corpus and reports each topic.
func runRank(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts *rankOptions) error {
	if err := opts.apply(cmd, cfg); err != nil {
		return err
	}

	topics, warnings, err := keywords.Load(opts.keywords)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn("keyword_row_dropped", docerrors.LogAttrs(w)...)
	}

	selected := topics.Select(opts.topic)
	if opts.topic != "" && len(selected) == 0 {
		slog.Warn("topic_not_found",
			slog.String("topic", opts.topic),
			slog.Any("available", topics.Names()))
	}

	paths, err := corpus.Discover(ctx, corpus.DiscoverOptions{
		Root:       cfg.Corpus.Root,
		Extensions: cfg.Corpus.Extensions,
		Exclude:    cfg.Corpus.Exclude,
	})
	if err != nil {
		return err
	}
	c := corpus.Layout{
		Descriptor: cfg.Corpus.Descriptor,
		BaseURL:    cfg.Corpus.BaseURL,
	}.Build(paths)

	slog.Debug("rank_started",
		slog.String("keywords", opts.keywords),
		slog.String("root", cfg.Corpus.Root),
		slog.Int("topics", len(selected)),
		slog.Int("modules", len(c.Modules())),
		slog.Int("excluded_units", len(c.Excluded())))

	engine := &scan.Engine{
		Workers:      cfg.Scan.Workers,
		MaxLineBytes: cfg.Scan.MaxLineBytes,
	}
	stats, err := engine.Scan(ctx, c, topics, opts.topic)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format := strings.ToLower(cfg.Report.Format)
	r, err := report.New(out, format, report.Options{
		Verbose: opts.verbose,
		Color:   format == config.FormatText && report.UseColor(strings.ToLower(cfg.Report.Color), out),
	})
	if err != nil {
		return docerrors.ValidationError(err.Error(), err)
	}
	if err := r.Report(c, report.Build(selected)); err != nil {
		return docerrors.InternalError("failed to write report", err)
	}

	slog.Debug("rank_completed",
		slog.Int("units", stats.Units),
		slog.Int("lines", stats.Lines),
		slog.Int("skipped", len(stats.Skipped)),
		slog.Duration("duration", stats.Duration))
	return nil
}
