package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/roknus/conan-ui/internal/catalog"
	"github.com/roknus/conan-ui/internal/config"
	"github.com/roknus/conan-ui/pkg/cache"
)

// defaultPingTimeout bounds the probe of a single remote.
const defaultPingTimeout = 10 * time.Second

// Remote probe states shown in the status column.
const (
	remoteStatusConfigured   = "configured"
	remoteStatusUnconfigured = "not configured"
	remoteStatusOK           = "ok"
	remoteStatusUnreachable  = "unreachable"
)

// remotesCommand creates the remotes command that lists configured remotes.
func (c *CLI) remotesCommand() *cobra.Command {
	var (
		configPath string
		ping       bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "remotes",
		Short: "List configured Conan remotes",
		Long: `List configured Conan remotes.

Shows every remote from the configuration, including remotes injected from
the environment and from $CONAN_HOME/remotes.json. With --ping each remote
with a URL is probed for reachability.

Examples:
  conan-ui remotes
  conan-ui remotes --ping
  conan-ui remotes --config conan-ui.toml --ping --timeout 5s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRemotes(cmd.Context(), configPath, ping, timeout)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().BoolVar(&ping, "ping", false, "probe each configured remote")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultPingTimeout, "timeout per probe")

	return cmd
}

// runRemotes prints the remote table, probing reachability when asked.
func (c *CLI) runRemotes(ctx context.Context, configPath string, ping bool, timeout time.Duration) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if len(cfg.Remotes) == 0 {
		printInfo("No remotes configured")
		return nil
	}

	// Probes must hit the network, so the catalog gets no cache here.
	cat := catalog.FromConfig(cfg, cache.NewNullCache(), c.Logger)

	var spinner *Spinner
	if ping {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Pinging %d remotes...", len(cfg.Remotes)))
		spinner.Start()
	}
	statuses, probeErrs := remoteStatuses(ctx, cat, cfg.Remotes, ping, timeout)
	if spinner != nil {
		spinner.Stop()
	}

	fmt.Println(renderRemoteTable(cfg.Remotes, statuses))

	defaultName := "—"
	if r, ok := cfg.DefaultRemote(); ok {
		defaultName = r.Name
	}
	printKeyValue("Default", defaultName)
	printKeyValue("Available", fmt.Sprintf("%d of %d", cat.AvailableCount(), len(cfg.Remotes)))

	for i, err := range probeErrs {
		if err != nil {
			printDetail("%s: %v", cfg.Remotes[i].Name, err)
		}
	}

	return nil
}

// remoteStatuses computes the status column for every remote. When ping is
// set, each remote with a URL is probed sequentially with its own timeout;
// probe failures come back in the second slice, indexed like remotes.
func remoteStatuses(ctx context.Context, cat *catalog.Catalog, remotes []config.RemoteConfig, ping bool, timeout time.Duration) ([]string, []error) {
	statuses := make([]string, len(remotes))
	probeErrs := make([]error, len(remotes))

	for i, r := range remotes {
		if r.URL == "" {
			statuses[i] = remoteStatusUnconfigured
			continue
		}
		if !ping {
			statuses[i] = remoteStatusConfigured
			continue
		}
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		err := cat.Ping(probeCtx, r.Name)
		cancel()
		if err != nil {
			statuses[i] = remoteStatusUnreachable
			probeErrs[i] = err
		} else {
			statuses[i] = remoteStatusOK
		}
	}

	return statuses, probeErrs
}

// renderRemoteTable renders the remote list as a bordered table.
func renderRemoteTable(remotes []config.RemoteConfig, statuses []string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(remotes))
	for i, r := range remotes {
		url := r.URL
		if url == "" {
			url = "—"
		}
		def := ""
		if r.Default {
			def = iconSuccess
		}
		rows[i] = []string{r.Name, url, def, statuses[i]}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "URL", "Default", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 && row < len(statuses) {
				switch statuses[row] {
				case remoteStatusOK:
					return StyleSuccess
				case remoteStatusUnreachable:
					return lipgloss.NewStyle().Foreground(colorRed)
				case remoteStatusUnconfigured:
					return StyleDim
				}
			}
			if col == 1 {
				return StyleDim
			}
			return StyleValue
		})

	return t.Render()
}
