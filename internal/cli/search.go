package cli

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/roknus/conan-ui/internal/catalog"
	"github.com/roknus/conan-ui/internal/config"
	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/observability"
)

// defaultSearchTimeout bounds a one-shot search across remote round trips.
const defaultSearchTimeout = 60 * time.Second

// searchCommand creates the search command for one-shot package queries.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		configPath string
		remoteName string
		page       int
		perPage    int
		refresh    bool
		noCache    bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "search [pattern]",
		Short: "Search packages on a Conan remote",
		Long: `Search packages on a Conan remote.

Queries the remote directly, without a running backend. The pattern matches
package names case-insensitively; without a pattern all packages are listed.
Results are paginated and cached like backend responses.

Examples:
  conan-ui search zlib
  conan-ui search boost --remote conancenter --per-page 50
  conan-ui search --page 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}
			return c.runSearch(cmd.Context(), pattern, configPath, remoteName, page, perPage, refresh, noCache, timeout)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().StringVarP(&remoteName, "remote", "r", "", "remote to search (defaults to the configured default)")
	cmd.Flags().IntVar(&page, "page", 1, "result page, starting at 1")
	cmd.Flags().IntVarP(&perPage, "per-page", "n", 20, "results per page (1-100)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the HTTP response cache")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultSearchTimeout, "timeout for the whole search")

	return cmd
}

// runSearch queries one remote and prints the matching packages.
func (c *CLI) runSearch(ctx context.Context, pattern, configPath, remoteName string, page, perPage int, refresh, noCache bool, timeout time.Duration) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	backend, err := openCache(cfg, noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer backend.Close()

	cat := catalog.FromConfig(cfg, backend, c.Logger)
	if remoteName == "" {
		remoteName = cat.DefaultName()
	}

	counter := &cacheHitCounter{}
	observability.SetCacheHooks(counter)
	defer observability.SetCacheHooks(observability.NoopCacheHooks{})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	label := fmt.Sprintf("Searching %s...", remoteName)
	if pattern != "" {
		label = fmt.Sprintf("Searching %s for %q...", remoteName, pattern)
	}
	spinner := newSpinnerWithContext(ctx, label)
	spinner.Start()

	result, err := cat.Packages(ctx, remoteName, pattern, page, perPage, refresh)
	if err != nil {
		spinner.StopWithError("Search failed")
		return err
	}
	spinner.Stop()

	if len(result.Packages) == 0 {
		if pattern == "" {
			printInfo("No packages found on %s", remoteName)
		} else {
			printInfo("No packages matching %q on %s", pattern, remoteName)
		}
		return nil
	}

	printSuccess("Found %d packages on %s", result.Total, StyleHighlight.Render(remoteName))
	printNewline()
	fmt.Println(renderPackageTable(result.Packages))
	printStats(len(result.Packages), result.Total, "packages", counter.cached())
	if result.Total > page*perPage {
		printDetail("More results: --page %d", page+1)
	}
	printNewline()
	printNextStep("Browse interactively", "conan-ui browse")

	return nil
}

// renderPackageTable renders package summaries as a bordered table.
func renderPackageTable(pkgs []conan.PackageSummary) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(pkgs))
	for i, p := range pkgs {
		latest := p.LatestVersion
		if latest == "" {
			latest = "—"
		}
		rows[i] = []string{p.Name, latest, strconv.Itoa(p.TotalVersions)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Latest", "Versions").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 1:
				return StyleHighlight
			case 2:
				return StyleDim
			default:
				return StyleValue
			}
		})

	return t.Render()
}

// cacheHitCounter counts cache activity during one command so the output
// can tell cached results from fresh ones.
type cacheHitCounter struct {
	observability.NoopCacheHooks

	mu     sync.Mutex
	hits   int
	misses int
}

func (h *cacheHitCounter) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hits++
	h.mu.Unlock()
}

func (h *cacheHitCounter) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}

// cached reports whether every lookup was served from cache.
func (h *cacheHitCounter) cached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits > 0 && h.misses == 0
}
