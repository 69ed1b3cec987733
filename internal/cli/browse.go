package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roknus/conan-ui/internal/ui"
	"github.com/roknus/conan-ui/pkg/apiclient"
	"github.com/roknus/conan-ui/pkg/errors"
)

// defaultAPIBase is where a locally started backend listens.
const defaultAPIBase = "http://localhost:8000"

// browseCommand creates the browse command that runs the interactive TUI.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		apiURL  string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse packages in an interactive terminal UI",
		Long: `Browse packages in an interactive terminal UI.

The browser drills from remotes down to packages, versions, binaries, and
individual binary configurations. It talks to a running backend; start one
with 'conan-ui serve' or point --api-url at an existing instance.

Keys: enter drills down, esc walks back up, / filters the current list,
s searches packages server-side, r refreshes, q quits.

Examples:
  conan-ui browse
  conan-ui browse --api-url http://conan-ui.internal:8000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), apiURL, logFile)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", defaultAPIURL(), "base URL of the conan-ui backend")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append debug logs to a file (stderr would corrupt the display)")

	return cmd
}

// defaultAPIURL resolves the backend URL from the environment, falling
// back to the local development address.
func defaultAPIURL() string {
	if v := os.Getenv("CONAN_UI_API_URL"); v != "" {
		return v
	}
	return defaultAPIBase
}

// runBrowse starts the bubbletea program against the backend at apiURL.
func (c *CLI) runBrowse(ctx context.Context, apiURL, logFile string) error {
	if err := errors.ValidateURL(apiURL); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logW := io.Writer(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logW = f
	}
	logger := newLogger(logW, c.Logger.GetLevel())

	client := apiclient.New(apiURL, logger)
	p := tea.NewProgram(ui.NewModel(client, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
