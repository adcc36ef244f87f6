// Package cli implements the locktower command-line interface.
//
// This package provides commands for listing the packages in a lockfile,
// translating a lockfile between format revisions, printing dependency and
// dependent trees, and exporting the dependency graph. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - list: Print the resolved packages in document order
//   - translate: Re-serialize a lockfile at a chosen format revision
//   - tree: Print dependency or dependent trees for named packages
//   - graph: Export the dependency graph as DOT or SVG
//
// All commands read Cargo.lock from the working directory unless -f points
// elsewhere. Failures are reported as a single "*** error:" line on stderr
// with a non-zero exit status.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/locktower/pkg/buildinfo"
)

// appName is the application name used for display.
const appName = "locktower"

// defaultLockfile is the input path used when -f is not given.
const defaultLockfile = "Cargo.lock"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Locktower inspects and translates dependency lockfiles",
		Long:          `Locktower is a CLI tool for working with Cargo.lock style dependency snapshots: it lists resolved packages, translates documents between historical format revisions, and renders dependency trees and graphs.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.translateCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}
