// Package main provides catalogctl, a command line client for the metadata
// catalog. It runs against a YAML-seeded in-memory catalog, which makes it
// useful for trying mutation semantics and for fixture-driven testing.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
