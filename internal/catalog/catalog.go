// Package catalog assembles the API responses from Conan remotes.
//
// It owns the read-model computation: package grouping and pagination,
// version/variant listing, binary filtering with revision resolution, and
// the filter-option catalog. Remote access goes through the Source
// interface, implemented by the conanv2 client in production and by fakes
// in tests.
package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/roknus/conan-ui/internal/config"
	"github.com/roknus/conan-ui/pkg/cache"
	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/errors"
	"github.com/roknus/conan-ui/pkg/integrations/conanv2"
)

// Source is the upstream surface the catalog needs from one remote.
// *conanv2.Client implements it.
type Source interface {
	Ping(ctx context.Context) error
	SearchRecipes(ctx context.Context, pattern string, refresh bool) ([]conan.RecipeRef, error)
	RecipeRevisions(ctx context.Context, ref conan.RecipeRef, refresh bool) ([]conanv2.Revision, error)
	LatestRevision(ctx context.Context, ref conan.RecipeRef, refresh bool) (conanv2.Revision, error)
	SearchPackages(ctx context.Context, ref conan.RecipeRef, refresh bool) (map[string]conanv2.PackageConfig, error)
}

// Remote pairs a configured remote with its client. Source is nil when
// the remote is configured without a URL; such remotes are listed but
// report as unavailable.
type Remote struct {
	Name    string
	URL     string
	Default bool
	Source  Source
}

// Catalog serves the read model over a fixed set of remotes.
type Catalog struct {
	remotes []Remote
	logger  *log.Logger
}

// New creates a catalog over the given remotes.
func New(logger *log.Logger, remotes ...Remote) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{remotes: remotes, logger: logger}
}

// FromConfig builds a catalog with one conanv2 client per configured
// remote, all sharing the same cache backend.
func FromConfig(cfg config.Config, backend cache.Cache, logger *log.Logger) *Catalog {
	remotes := make([]Remote, 0, len(cfg.Remotes))
	for _, rc := range cfg.Remotes {
		r := Remote{Name: rc.Name, URL: rc.URL, Default: rc.Default}
		if rc.URL != "" {
			r.Source = conanv2.NewClient(backend, rc.Name, rc.URL, rc.User, rc.Password)
		}
		remotes = append(remotes, r)
	}
	return New(logger, remotes...)
}

// RemoteNames returns the configured remote names in order.
func (c *Catalog) RemoteNames() []string {
	names := make([]string, len(c.remotes))
	for i, r := range c.remotes {
		names[i] = r.Name
	}
	return names
}

// DefaultName returns the default remote's name: the one flagged as
// default, falling back to the first configured remote.
func (c *Catalog) DefaultName() string {
	for _, r := range c.remotes {
		if r.Default {
			return r.Name
		}
	}
	if len(c.remotes) > 0 {
		return c.remotes[0].Name
	}
	return ""
}

// AvailableCount returns the number of remotes with a usable client.
func (c *Catalog) AvailableCount() int {
	n := 0
	for _, r := range c.remotes {
		if r.Source != nil {
			n++
		}
	}
	return n
}

// Remotes lists the configured remotes for the repositories endpoint.
func (c *Catalog) Remotes() conan.RepositoriesResponse {
	defaultName := c.DefaultName()

	repos := make([]conan.Remote, 0, len(c.remotes))
	for _, r := range c.remotes {
		available := r.Source != nil
		url := r.URL
		description := "Conan remote: " + r.Name
		if !available {
			url = "Not configured"
			description += " (Not configured)"
		}
		repos = append(repos, conan.Remote{
			Name:        r.Name,
			URL:         url,
			Available:   available,
			Description: description,
			IsDefault:   r.Name == defaultName,
		})
	}

	return conan.RepositoriesResponse{Repositories: repos, Default: defaultName}
}

// Ping probes one remote for reachability.
func (c *Catalog) Ping(ctx context.Context, remoteName string) error {
	remote, err := c.resolve(remoteName)
	if err != nil {
		return err
	}
	return remote.Source.Ping(ctx)
}

// resolve looks up a usable remote by name. The error messages double as
// API error details.
func (c *Catalog) resolve(name string) (Remote, error) {
	if name == "" {
		return Remote{}, errors.New(errors.ErrCodeInvalidRemote, "Remote name is required")
	}
	for _, r := range c.remotes {
		if r.Name != name {
			continue
		}
		if r.Source == nil {
			return Remote{}, errors.New(errors.ErrCodeRemoteNotFound, "Remote '%s' not found in Conan configuration", name)
		}
		return r, nil
	}
	return Remote{}, errors.New(errors.ErrCodeInvalidRemote,
		"Unsupported remote '%s'. Available remotes: %s", name, strings.Join(c.RemoteNames(), ", "))
}

func unixSeconds(t time.Time) *float64 {
	if t.IsZero() {
		return nil
	}
	s := float64(t.UnixNano()) / float64(time.Second)
	return &s
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func sortedIDs(pkgs map[string]conanv2.PackageConfig) []string {
	ids := make([]string, 0, len(pkgs))
	for id := range pkgs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
