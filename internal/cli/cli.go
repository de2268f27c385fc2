// Package cli implements the minipart command-line interface of
// spec.md §6: a single command that reads a ".hgr" hypergraph, runs
// the multilevel optimizer, and writes a ".sol" solution.
//
// The library core (hypergraph, objective, blackbox, ...) never
// imports this package or logs directly; this package is the one
// external collaborator that turns parsed flags into a blackbox.Params
// and calls the library, matching the teacher's split between
// internal/cli and its pkg/core libraries.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute builds and runs the minipart root command.
func Execute() error {
	opts := newOptions()

	root := &cobra.Command{
		Use:          "minipart",
		Short:        "minipart partitions a weighted hypergraph into balanced blocks",
		Long:         "minipart is a multilevel local-search hypergraph partitioner: it assigns every node of a weighted hypergraph to one of K capacity-bounded blocks while minimizing a chosen cut-style objective.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	opts.bind(root.Flags())

	return root.ExecuteContext(context.Background())
}

// newLogger creates a leveled logger writing to stderr, mirroring
// matzehuels-stacktower/internal/cli/log.go's newLogger.
func newLogger(verbosity int) *charmlog.Logger {
	level := charmlog.WarnLevel
	switch {
	case verbosity >= 2:
		level = charmlog.DebugLevel
	case verbosity == 1:
		level = charmlog.InfoLevel
	}
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func fail(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
