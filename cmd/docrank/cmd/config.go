package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/docrank/configs"
	"github.com/Aman-CERP/docrank/internal/config"
	docerrors "github.com/Aman-CERP/docrank/internal/errors"
)

// newConfigCmd creates the config command group.
func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage docrank configuration",
		Long: `Manage docrank configuration.

Configuration is read from, in increasing precedence:
  ~/.config/docrank/config.yaml, .docrank.yaml, DOCRANK_* variables, flags.`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(root))

	return cmd
}

// newConfigInitCmd writes the config template to the working directory.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init [dir]",
		Short:       "Write a .docrank.yaml template",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path := filepath.Join(dir, config.ProjectConfigNames[0])

			if _, err := os.Stat(path); err == nil && !force {
				return docerrors.New(docerrors.ErrCodeInvalidInput,
					fmt.Sprintf("%s already exists", path), nil).
					WithSuggestion("Use --force to overwrite it")
			}

			if err := os.WriteFile(path, []byte(configs.ProjectConfigTemplate), 0o644); err != nil {
				return docerrors.ConfigError("failed to write config file", err).WithDetail("path", path)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

// newConfigShowCmd prints the effective configuration.
func newConfigShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(root.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
