// Package main provides the entry point for the docrank CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/docrank/cmd/docrank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
