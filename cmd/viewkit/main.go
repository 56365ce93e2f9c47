// Package main is the entry point for the viewkit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/viewkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
