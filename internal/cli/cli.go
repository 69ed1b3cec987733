// Package cli implements the conan-ui command-line interface.
//
// This package provides commands for running the REST backend, browsing
// Conan remotes in an interactive terminal UI, and one-shot queries against
// configured remotes. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - serve: Run the REST backend over the configured Conan remotes
//   - browse: Interactive terminal UI against a running backend
//   - search: Search packages on a Conan remote
//   - remotes: List configured remotes and probe their reachability
//   - cache: Manage the HTTP response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/roknus/conan-ui/internal/config"
	"github.com/roknus/conan-ui/pkg/buildinfo"
	"github.com/roknus/conan-ui/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "conan-ui"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
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
		Use:          appName,
		Short:        "Conan UI browses Conan package metadata",
		Long:         `Conan UI is a browsing service for Conan C/C++ package metadata: a REST backend proxying one or more Conan remotes, and a terminal UI for drilling from remotes down to individual binary configurations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.remotesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Setup
// =============================================================================

// openCache constructs the configured cache backend. The --no-cache flag
// forces the null backend regardless of configuration.
func openCache(cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cfg.Cache.Open()
}
