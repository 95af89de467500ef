// Package main provides the genie CLI for Databricks Genie Spaces.
package main

import (
	"os"

	"github.com/leapstack-labs/geniespaces/internal/cli"
)

// version is overridden at release time via -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
