// Package configs provides the embedded configuration template for docrank.
//
// The template is written by `docrank config init` to .docrank.yaml in the
// working directory. Values it sets are the defaults from
// internal/config NewConfig, so loading it unchanged is a no-op.
//
// Configuration hierarchy (see internal/config Load):
//  1. Hardcoded defaults
//  2. User config (~/.config/docrank/config.yaml)
//  3. Project config (.docrank.yaml)
//  4. Environment variables (DOCRANK_*)
//  5. Command-line flags
package configs

import _ "embed"

// ProjectConfigTemplate is the template for .docrank.yaml.
//
//go:embed docrank.example.yaml
var ProjectConfigTemplate string
