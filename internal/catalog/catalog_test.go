package catalog

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/errors"
	"github.com/roknus/conan-ui/pkg/integrations"
	"github.com/roknus/conan-ui/pkg/integrations/conanv2"
)

// fakeSource serves canned data keyed by reference strings. Revisions are
// keyed without a revision, package maps with one.
type fakeSource struct {
	refs        []conan.RecipeRef
	revisions   map[string][]conanv2.Revision
	packages    map[string]map[string]conanv2.PackageConfig
	pingErr     error
	searchErr   error
	packagesErr error

	searchCalls int
}

func (f *fakeSource) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeSource) SearchRecipes(ctx context.Context, pattern string, refresh bool) ([]conan.RecipeRef, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	// Patterns match case-insensitively, like the real client's
	// ignorecase=True search (see conanv2.Client.SearchRecipes).
	re := regexp.MustCompile("(?i)^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*") + "$")
	var out []conan.RecipeRef
	for _, ref := range f.refs {
		if re.MatchString(ref.String()) {
			out = append(out, ref)
		}
	}
	return out, nil
}

func (f *fakeSource) RecipeRevisions(ctx context.Context, ref conan.RecipeRef, refresh bool) ([]conanv2.Revision, error) {
	revs, ok := f.revisions[ref.String()]
	if !ok {
		return nil, integrations.ErrNotFound
	}
	return revs, nil
}

func (f *fakeSource) LatestRevision(ctx context.Context, ref conan.RecipeRef, refresh bool) (conanv2.Revision, error) {
	revs, ok := f.revisions[ref.String()]
	if !ok || len(revs) == 0 {
		return conanv2.Revision{}, integrations.ErrNotFound
	}
	return revs[0], nil
}

func (f *fakeSource) SearchPackages(ctx context.Context, ref conan.RecipeRef, refresh bool) (map[string]conanv2.PackageConfig, error) {
	if f.packagesErr != nil {
		return nil, f.packagesErr
	}
	pkgs, ok := f.packages[ref.String()]
	if !ok {
		return nil, integrations.ErrNotFound
	}
	return pkgs, nil
}

func ref(s string) conan.RecipeRef { return conan.MustParseRecipeRef(s) }

func testTime(hour int) time.Time {
	return time.Date(2024, time.March, 1, hour, 0, 0, 0, time.UTC)
}

func TestCatalog_Remotes(t *testing.T) {
	c := New(nil,
		Remote{Name: "alpha", URL: "https://alpha.example.com", Default: true, Source: &fakeSource{}},
		Remote{Name: "beta", URL: "https://beta.example.com", Source: &fakeSource{}},
		Remote{Name: "ghost"},
	)

	resp := c.Remotes()
	if resp.Default != "alpha" {
		t.Errorf("expected default alpha, got %s", resp.Default)
	}
	if len(resp.Repositories) != 3 {
		t.Fatalf("expected 3 repositories, got %d", len(resp.Repositories))
	}

	alpha := resp.Repositories[0]
	if !alpha.Available || !alpha.IsDefault || alpha.URL != "https://alpha.example.com" {
		t.Errorf("unexpected alpha: %+v", alpha)
	}
	if resp.Repositories[1].IsDefault {
		t.Error("beta must not be default")
	}

	ghost := resp.Repositories[2]
	if ghost.Available {
		t.Error("ghost must be unavailable")
	}
	if ghost.URL != "Not configured" {
		t.Errorf("unexpected ghost URL: %s", ghost.URL)
	}
	if !strings.HasSuffix(ghost.Description, "(Not configured)") {
		t.Errorf("unexpected ghost description: %s", ghost.Description)
	}

	if got := c.AvailableCount(); got != 2 {
		t.Errorf("expected 2 available remotes, got %d", got)
	}
}

func TestCatalog_DefaultNameFallback(t *testing.T) {
	c := New(nil,
		Remote{Name: "first", Source: &fakeSource{}},
		Remote{Name: "second", Source: &fakeSource{}},
	)
	if got := c.DefaultName(); got != "first" {
		t.Errorf("expected first as fallback default, got %s", got)
	}

	empty := New(nil)
	if got := empty.DefaultName(); got != "" {
		t.Errorf("expected empty default for empty catalog, got %q", got)
	}
}

func TestCatalog_ResolveErrors(t *testing.T) {
	c := New(nil,
		Remote{Name: "alpha", URL: "https://alpha.example.com", Source: &fakeSource{}},
		Remote{Name: "ghost"},
	)

	tests := []struct {
		name     string
		remote   string
		wantCode errors.Code
		wantMsg  string
	}{
		{"missing name", "", errors.ErrCodeInvalidRemote, "Remote name is required"},
		{"unknown remote", "nope", errors.ErrCodeInvalidRemote, "Unsupported remote 'nope'. Available remotes: alpha, ghost"},
		{"unavailable remote", "ghost", errors.ErrCodeRemoteNotFound, "Remote 'ghost' not found in Conan configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Packages(context.Background(), tt.remote, "", 1, 20, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errors.GetCode(err); code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, code)
			}
			if msg := errors.UserMessage(err); msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestCatalog_Ping(t *testing.T) {
	c := New(nil, Remote{Name: "alpha", URL: "https://alpha.example.com", Source: &fakeSource{}})

	if err := c.Ping(context.Background(), "alpha"); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if err := c.Ping(context.Background(), "nope"); err == nil {
		t.Error("expected error for unknown remote")
	}
}
