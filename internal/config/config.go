package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	docerrors "github.com/Aman-CERP/docrank/internal/errors"
	"github.com/Aman-CERP/docrank/internal/logging"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultBaseURL is the canonical URL prefix of training modules.
const DefaultBaseURL = "https://learn.microsoft.com/training/modules"

// ProjectConfigNames are the file names Load looks for, in order.
var ProjectConfigNames = []string{".docrank.yaml", ".docrank.yml"}

// Config represents the complete docrank configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Corpus  CorpusConfig  `yaml:"corpus" json:"corpus"`
	Scan    ScanConfig    `yaml:"scan" json:"scan"`
	Report  ReportConfig  `yaml:"report" json:"report"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// CorpusConfig configures discovery and the module layout.
type CorpusConfig struct {
	// Root is the directory scanned for units.
	Root string `yaml:"root" json:"root"`
	// Descriptor is the file name that marks a module directory.
	Descriptor string `yaml:"descriptor" json:"descriptor"`
	// BaseURL prefixes module canonical URLs.
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Extensions selects unit files, including the leading dot.
	Extensions []string `yaml:"extensions" json:"extensions"`
	// Exclude lists directory patterns skipped during discovery. Entries
	// are added to the defaults, not substituted for them.
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// ScanConfig configures the scan engine.
type ScanConfig struct {
	// Workers is the number of units scanned concurrently (1 = sequential).
	Workers int `yaml:"workers" json:"workers"`
	// MaxLineBytes is the longest accepted line; longer lines make the unit
	// unreadable.
	MaxLineBytes int `yaml:"max_line_bytes" json:"max_line_bytes"`
}

// ReportConfig configures output.
type ReportConfig struct {
	Format string `yaml:"format" json:"format"`
	Color  string `yaml:"color" json:"color"`
}

// LoggingConfig configures the stderr logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// defaultExcludePatterns are always excluded.
var defaultExcludePatterns = []string{
	"**/.git/**",
	"**/node_modules/**",
}

// NewConfig returns a configuration populated with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Corpus: CorpusConfig{
			Root:       ".",
			Descriptor: "index.yml",
			BaseURL:    DefaultBaseURL,
			Extensions: []string{".md"},
			Exclude:    append([]string(nil), defaultExcludePatterns...),
		},
		Scan: ScanConfig{
			Workers:      1,
			MaxLineBytes: 1 << 20,
		},
		Report: ReportConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/docrank/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/docrank/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "docrank", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "docrank", "config.yaml")
	}
	return filepath.Join(home, ".config", "docrank", "config.yaml")
}

// loadUserConfig loads the user configuration file if it exists.
// Returns nil config and nil error if the file doesn't exist.
func loadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var cfg Config
	if err := readYAML(configPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads configuration for a run started in dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/docrank/config.yaml)
//  3. Project config (.docrank.yaml or .docrank.yml in dir)
//  4. Environment variables (DOCRANK_*)
func Load(dir string) (*Config, error) {
	return load(func(c *Config) error { return c.loadFromDir(dir) })
}

// LoadFile is like Load but reads the project config from path, which must
// exist.
func LoadFile(path string) (*Config, error) {
	if !fileExists(path) {
		return nil, docerrors.New(docerrors.ErrCodeConfigNotFound, "config file not found", nil).
			WithDetail("path", path)
	}
	return load(func(c *Config) error { return c.loadYAML(path) })
}

func load(project func(*Config) error) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, err
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := project(cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromDir loads the first project config file found in dir.
func (c *Config) loadFromDir(dir string) error {
	for _, name := range ProjectConfigNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return c.loadYAML(path)
		}
	}
	// No config file is fine - use defaults
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	var parsed Config
	if err := readYAML(path, &parsed); err != nil {
		return err
	}
	c.mergeWith(&parsed)
	return nil
}

func readYAML(path string, into *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return docerrors.ConfigError("failed to read config file", err).WithDetail("path", path)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return docerrors.ConfigError("failed to parse config file", err).WithDetail("path", path)
	}
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Corpus.Root != "" {
		c.Corpus.Root = other.Corpus.Root
	}
	if other.Corpus.Descriptor != "" {
		c.Corpus.Descriptor = other.Corpus.Descriptor
	}
	if other.Corpus.BaseURL != "" {
		c.Corpus.BaseURL = other.Corpus.BaseURL
	}
	if len(other.Corpus.Extensions) > 0 {
		c.Corpus.Extensions = other.Corpus.Extensions
	}
	for _, p := range other.Corpus.Exclude {
		if !slices.Contains(c.Corpus.Exclude, p) {
			c.Corpus.Exclude = append(c.Corpus.Exclude, p)
		}
	}

	if other.Scan.Workers != 0 {
		c.Scan.Workers = other.Scan.Workers
	}
	if other.Scan.MaxLineBytes != 0 {
		c.Scan.MaxLineBytes = other.Scan.MaxLineBytes
	}

	if other.Report.Format != "" {
		c.Report.Format = other.Report.Format
	}
	if other.Report.Color != "" {
		c.Report.Color = other.Report.Color
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
}

// applyEnvOverrides applies DOCRANK_* environment variables. Empty values
// are ignored.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("DOCRANK_ROOT"); v != "" {
		c.Corpus.Root = v
	}
	if v := os.Getenv("DOCRANK_DESCRIPTOR"); v != "" {
		c.Corpus.Descriptor = v
	}
	if v := os.Getenv("DOCRANK_BASE_URL"); v != "" {
		c.Corpus.BaseURL = v
	}
	if v := os.Getenv("DOCRANK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return docerrors.ConfigError("DOCRANK_WORKERS must be an integer", err).
				WithDetail("value", v)
		}
		c.Scan.Workers = n
	}
	if v := os.Getenv("DOCRANK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Corpus.Descriptor == "" {
		return invalid("corpus.descriptor must not be empty")
	}
	if strings.ContainsRune(c.Corpus.Descriptor, filepath.Separator) {
		return invalid(fmt.Sprintf("corpus.descriptor must be a file name, got %s", c.Corpus.Descriptor))
	}
	for _, ext := range c.Corpus.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return invalid(fmt.Sprintf("corpus.extensions entries must start with '.', got %q", ext))
		}
	}

	if c.Scan.Workers < 0 {
		return invalid(fmt.Sprintf("scan.workers must be non-negative, got %d", c.Scan.Workers))
	}
	if c.Scan.MaxLineBytes < 0 {
		return invalid(fmt.Sprintf("scan.max_line_bytes must be non-negative, got %d", c.Scan.MaxLineBytes))
	}

	switch strings.ToLower(c.Report.Format) {
	case FormatText, FormatJSON:
	default:
		return invalid(fmt.Sprintf("report.format must be 'text' or 'json', got %s", c.Report.Format))
	}
	switch strings.ToLower(c.Report.Color) {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return invalid(fmt.Sprintf("report.color must be 'auto', 'always', or 'never', got %s", c.Report.Color))
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return invalid(fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level))
	}

	return nil
}

func invalid(msg string) error {
	return docerrors.ConfigError(msg, nil).
		WithSuggestion("Fix the value in .docrank.yaml or the matching DOCRANK_* variable")
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
