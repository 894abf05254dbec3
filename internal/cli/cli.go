// SPDX-License-Identifier: Unlicense OR MIT

// Package cli implements the blocks command-line interface.
//
// The commands load a scene, either from a TOML file or from a layout
// expression, lay it out for a viewport and print or verify the
// result. All commands support --verbose (-v) for debug-level logging
// of the layout engine, including cache hits and invalidations.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "blocks",
		Short: "Blocks lays out trees of boxes",
		Long: `Blocks is a CLI tool for the blocks layout engine. It reads a scene
from a TOML file or a layout expression, lays it out for a viewport and
prints the arranged tree or checks it for inconsistencies.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.namesCommand())

	return root
}
