// Package main provides the entry point for the boardctx CLI.
package main

import (
	"os"

	"github.com/randalmurphal/boardctx/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
