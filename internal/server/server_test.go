package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/roknus/conan-ui/internal/catalog"
	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/integrations"
	"github.com/roknus/conan-ui/pkg/integrations/conanv2"
)

// stubSource serves canned catalog data. Search returns every ref; the
// catalog's own name/version filtering narrows them down.
type stubSource struct {
	refs      []conan.RecipeRef
	revisions map[string][]conanv2.Revision
	packages  map[string]map[string]conanv2.PackageConfig
	panicky   bool

	mu       sync.Mutex
	pkgCalls int
}

func (f *stubSource) Ping(ctx context.Context) error { return nil }

func (f *stubSource) SearchRecipes(ctx context.Context, pattern string, refresh bool) ([]conan.RecipeRef, error) {
	if f.panicky {
		panic("stub exploded")
	}
	return f.refs, nil
}

func (f *stubSource) RecipeRevisions(ctx context.Context, ref conan.RecipeRef, refresh bool) ([]conanv2.Revision, error) {
	revs, ok := f.revisions[ref.String()]
	if !ok {
		return nil, integrations.ErrNotFound
	}
	return revs, nil
}

func (f *stubSource) LatestRevision(ctx context.Context, ref conan.RecipeRef, refresh bool) (conanv2.Revision, error) {
	revs, ok := f.revisions[ref.String()]
	if !ok || len(revs) == 0 {
		return conanv2.Revision{}, integrations.ErrNotFound
	}
	return revs[0], nil
}

func (f *stubSource) SearchPackages(ctx context.Context, ref conan.RecipeRef, refresh bool) (map[string]conanv2.PackageConfig, error) {
	f.mu.Lock()
	f.pkgCalls++
	f.mu.Unlock()
	pkgs, ok := f.packages[ref.String()]
	if !ok {
		return nil, integrations.ErrNotFound
	}
	return pkgs, nil
}

func (f *stubSource) packageCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pkgCalls
}

func fixtureSource() *stubSource {
	created := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	return &stubSource{
		refs: []conan.RecipeRef{
			conan.MustParseRecipeRef("zlib/1.3.1"),
			conan.MustParseRecipeRef("zlib/1.2.13"),
		},
		revisions: map[string][]conanv2.Revision{
			"zlib/1.3.1":  {{Revision: "ffa111", Time: created}},
			"zlib/1.2.13": {{Revision: "ee9222", Time: created}},
		},
		packages: map[string]map[string]conanv2.PackageConfig{
			"zlib/1.3.1#ffa111": {
				"abc123": {
					Settings: map[string]string{
						"os": "Linux", "arch": "x86_64",
						"compiler": "gcc", "compiler.version": "12",
						"build_type": "Release",
					},
					Options:  map[string]string{"shared": "True"},
					Requires: []string{"openssl/3.2.0"},
				},
			},
			"zlib/1.2.13#ee9222": {},
		},
	}
}

type testEnv struct {
	server *httptest.Server
	source *stubSource
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	src := fixtureSource()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cat := catalog.New(opts.Logger,
		catalog.Remote{Name: "conancenter", URL: "https://center.conan.io", Default: true, Source: src},
		catalog.Remote{Name: "ghost"},
	)
	ts := httptest.NewServer(New(cat, opts).Handler())
	t.Cleanup(ts.Close)
	return &testEnv{server: ts, source: src}
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func errorDetail(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body errorBody
	decode(t, resp, &body)
	return body.Detail
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t, Options{})

	resp := env.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var info conan.RootInfo
	decode(t, resp, &info)
	if info.Message != "Conan UI API" {
		t.Errorf("unexpected message %q", info.Message)
	}
	if info.Version != "1.0.0" {
		t.Errorf("unexpected version %q", info.Version)
	}
	if !info.ConanAPIAvailable {
		t.Error("expected conan_api_available true")
	}
	if len(info.AvailableRemotes) != 2 {
		t.Errorf("unexpected remotes %v", info.AvailableRemotes)
	}
	if info.DefaultRemote != "conancenter" {
		t.Errorf("unexpected default remote %q", info.DefaultRemote)
	}
	if info.ConfiguredRemotes != 1 {
		t.Errorf("expected 1 configured remote, got %d", info.ConfiguredRemotes)
	}
}

func TestRoot_NoCatalog(t *testing.T) {
	ts := httptest.NewServer(New(nil, Options{Logger: log.New(io.Discard)}).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("root must answer 200 without a catalog, got %d", resp.StatusCode)
	}

	var info conan.RootInfo
	decode(t, resp, &info)
	if info.ConanAPIAvailable {
		t.Error("expected conan_api_available false")
	}
	if info.AvailableRemotes == nil {
		t.Error("available_remotes must be an empty list, not null")
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, Options{})

	resp := env.get(t, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var health conan.Health
	decode(t, resp, &health)
	if health.Status != "healthy" || health.ConanAPI != "available" {
		t.Errorf("unexpected health %+v", health)
	}
	if health.Remotes == nil || *health.Remotes != 1 {
		t.Errorf("unexpected remote count %v", health.Remotes)
	}
}

func TestHealth_NoCatalog(t *testing.T) {
	ts := httptest.NewServer(New(nil, Options{Logger: log.New(io.Discard)}).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	if detail := errorDetail(t, resp); detail != "Conan API not available - service starting up" {
		t.Errorf("unexpected detail %q", detail)
	}
}

func TestRepositories(t *testing.T) {
	env := newTestEnv(t, Options{})

	resp := env.get(t, "/repositories")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var repos conan.RepositoriesResponse
	decode(t, resp, &repos)
	if repos.Default != "conancenter" {
		t.Errorf("unexpected default %q", repos.Default)
	}
	if len(repos.Repositories) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(repos.Repositories))
	}
	if repos.Repositories[1].URL != "Not configured" {
		t.Errorf("unexpected ghost URL %q", repos.Repositories[1].URL)
	}
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t, Options{})

	resp := env.get(t, "/health")
	resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID")
	}

	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "trace-me")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "trace-me" {
		t.Errorf("expected incoming request id echoed, got %q", got)
	}
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, Options{CORSOrigins: []string{"http://localhost:3000"}})

	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin echoed, got %q", got)
	}
	if resp.Header.Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("expected credentials allowed")
	}

	// Preflight short-circuits with 204.
	req, _ = http.NewRequest(http.MethodOptions, env.server.URL+"/packages", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 preflight, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected allowed methods on preflight")
	}

	// Unknown origins get no CORS headers.
	req, _ = http.NewRequest(http.MethodGet, env.server.URL+"/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") != "" {
		t.Error("unexpected CORS header for unknown origin")
	}
}

func TestPanicRecovery(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.source.panicky = true

	resp := env.get(t, "/packages?remote_name=conancenter")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if detail := errorDetail(t, resp); detail != "Internal server error" {
		t.Errorf("unexpected detail %q", detail)
	}
}
