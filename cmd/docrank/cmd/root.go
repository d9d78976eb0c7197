// Package cmd provides the CLI commands for docrank.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/docrank/internal/config"
	docerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/logging"
	"github.com/Aman-CERP/docrank/internal/profiling"
	"github.com/Aman-CERP/docrank/pkg/version"
)

// skipConfig marks commands that run without loading configuration.
const skipConfig = "docrank/skip-config"

// rootOptions holds persistent flags and the state set up before a command
// runs.
type rootOptions struct {
	configPath string
	debug      bool
	profileCPU string
	profileMem string

	rank    *rankOptions
	cfg     *config.Config
	cleanup []func() error
}

// NewRootCmd creates the root command for the docrank CLI.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	rank := &rankOptions{}
	opts := &rootOptions{rank: rank}

	cmd := &cobra.Command{
		Use:   "docrank",
		Short: "Rank documentation modules by weighted keyword relevance",
		Long: `docrank scans a documentation corpus of modules and their units,
counts matches of weighted keyword patterns grouped into topics, and
reports the three most relevant modules for each topic.

Keyword files hold one "topic,weight,pattern" row per line.`,
		Example: `  docrank -k keywords.csv --root ./learn-pr
  docrank -k keywords.csv -t security -v
  docrank -k keywords.csv --format json`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd.Context(), cmd, opts.cfg, rank)
		},
	}

	cmd.SetVersionTemplate("docrank version {{.Version}}\n")

	cmd.Flags().StringVarP(&rank.keywords, "keywords", "k", "", "Keyword file with topic,weight,pattern rows (required)")
	cmd.Flags().StringVarP(&rank.topic, "topic", "t", "", "Only rank this topic")
	cmd.Flags().BoolVarP(&rank.verbose, "verbose", "v", false, "Show raw hits per keyword, module and unit")
	cmd.Flags().StringVar(&rank.root, "root", "", "Corpus root directory (default from config: .)")
	cmd.Flags().StringVar(&rank.format, "format", "", "Output format: text or json")
	cmd.Flags().IntVar(&rank.workers, "workers", 0, "Units scanned concurrently (1 = sequential)")
	cmd.Flags().BoolVar(&rank.noColor, "no-color", false, "Disable colored output")
	_ = cmd.MarkFlagRequired("keywords")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: .docrank.yaml in the working directory)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.docrank/logs/")
	cmd.PersistentFlags().StringVar(&opts.profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&opts.profileMem, "profile-mem", "", "Write memory profile to file")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return opts.start(cmd)
	}
	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return opts.stop()
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd(opts))

	return cmd, opts
}

// start loads configuration, then sets up logging and profiling.
func (o *rootOptions) start(cmd *cobra.Command) error {
	level := "info"
	if cmd.Annotations[skipConfig] == "" {
		cfg, err := o.loadConfig()
		if err != nil {
			return err
		}
		o.cfg = cfg
		level = cfg.Logging.Level
	}

	logCfg := logging.DefaultConfig()
	if o.debug {
		logCfg = logging.DebugConfig()
	}
	logCfg.Level = level
	logCfg.Stderr = cmd.ErrOrStderr()
	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	slog.SetDefault(logger)
	o.cleanup = append(o.cleanup, func() error { cleanup(); return nil })
	if o.debug {
		slog.Debug("debug_logging_enabled",
			slog.String("log_file", logCfg.FilePath),
			slog.String("version", version.Version))
	}

	prof := profiling.Options{CPU: o.profileCPU, Heap: o.profileMem}
	if prof.Enabled() {
		stop, err := profiling.Start(prof)
		if err != nil {
			return err
		}
		o.cleanup = append(o.cleanup, stop)
	}
	return nil
}

// stop releases what start set up, in reverse order.
func (o *rootOptions) stop() error {
	var first error
	for i := len(o.cleanup) - 1; i >= 0; i-- {
		if err := o.cleanup[i](); err != nil && first == nil {
			first = err
		}
	}
	o.cleanup = nil
	return first
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, docerrors.InternalError("cannot determine working directory", err)
	}
	return config.Load(wd)
}

// Execute runs the root command, cancelling on interrupt, and prints any
// error to stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, opts := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(cmd, err, opts.reportFormat())
	}
	return err
}

// reportFormat returns the effective report format: the loaded config,
// which already reflects --format once ranking starts, else the flag.
func (o *rootOptions) reportFormat() string {
	if o.cfg != nil {
		return strings.ToLower(o.cfg.Report.Format)
	}
	return strings.ToLower(o.rank.format)
}

// printError writes err to stderr, as a JSON object when the report format
// is json.
func printError(cmd *cobra.Command, err error, format string) {
	if format == config.FormatJSON {
		data, jerr := docerrors.FormatJSON(err)
		if jerr == nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), string(data))
			return
		}
	}
	if _, ok := docerrors.As(err); ok {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), docerrors.FormatForCLI(err))
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
