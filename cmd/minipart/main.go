// Command minipart is the CLI entry point for the minipart hypergraph
// partitioner (spec.md §6). It delegates entirely to internal/cli;
// this file only wires process exit codes.
package main

import (
	"fmt"
	"os"

	"github.com/go-minipart/minipart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
