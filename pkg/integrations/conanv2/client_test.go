package conanv2

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roknus/conan-ui/pkg/cache"
	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/integrations"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-16T10:21:33.567+0000", time.Date(2024, time.January, 16, 10, 21, 33, 567000000, time.UTC)},
		{"2024-01-16T10:21:33Z", time.Date(2024, time.January, 16, 10, 21, 33, 0, time.UTC)},
		{"2024-01-16 10:21:33 UTC", time.Date(2024, time.January, 16, 10, 21, 33, 0, time.UTC)},
		{"not-a-time", time.Time{}},
		{"", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseTime(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("parseTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClient_SearchRecipes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/conans/search" {
			http.NotFound(w, r)
			return
		}
		if q := r.URL.Query().Get("q"); q != "zlib*" {
			t.Errorf("expected q=zlib*, got %q", q)
		}
		if ic := r.URL.Query().Get("ignorecase"); ic != "True" {
			t.Errorf("expected ignorecase=True, got %q", ic)
		}
		json.NewEncoder(w).Encode(searchResponse{Results: []string{
			"zlib/1.3.1",
			"zlib-ng/2.1.6@corp/stable",
			"broken-entry",
		}})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	refs, err := c.SearchRecipes(context.Background(), "zlib*", true)
	if err != nil {
		t.Fatalf("SearchRecipes failed: %v", err)
	}

	// The malformed entry is skipped.
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d: %v", len(refs), refs)
	}
	if refs[0] != (conan.RecipeRef{Name: "zlib", Version: "1.3.1"}) {
		t.Errorf("unexpected first ref: %+v", refs[0])
	}
	if refs[1].User != "corp" || refs[1].Channel != "stable" {
		t.Errorf("expected corp/stable scope, got %+v", refs[1])
	}
}

func TestClient_SearchRecipes_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := testClient(t, server.URL)

	refs, err := c.SearchRecipes(context.Background(), "nothing*", true)
	if err != nil {
		t.Fatalf("expected no error for empty search, got %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected no refs, got %v", refs)
	}
}

func TestClient_RecipeRevisions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/conans/zlib/1.3.1/_/_/revisions" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(revisionsResponse{Revisions: []revisionJSON{
			{Revision: "ffa77daf83a57094149707928bdce823", Time: "2024-01-16T10:21:33.567+0000"},
			{Revision: "4524fcdd41f33e8df88ece6e755a5dcc", Time: "2023-11-02 08:15:00 UTC"},
		}})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	revs, err := c.RecipeRevisions(context.Background(), conan.RecipeRef{Name: "zlib", Version: "1.3.1"}, true)
	if err != nil {
		t.Fatalf("RecipeRevisions failed: %v", err)
	}

	if len(revs) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(revs))
	}
	if revs[0].Revision != "ffa77daf83a57094149707928bdce823" {
		t.Errorf("unexpected first revision: %s", revs[0].Revision)
	}
	want := time.Date(2024, time.January, 16, 10, 21, 33, 567000000, time.UTC)
	if !revs[0].Time.Equal(want) {
		t.Errorf("expected time %v, got %v", want, revs[0].Time)
	}
	if revs[1].Time.IsZero() {
		t.Error("expected second revision time to parse")
	}
}

func TestClient_RecipeRevisions_ScopedRef(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(revisionsResponse{})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	ref := conan.RecipeRef{Name: "tool", Version: "0.4.0", User: "corp", Channel: "testing"}
	if _, err := c.RecipeRevisions(context.Background(), ref, true); err != nil {
		t.Fatalf("RecipeRevisions failed: %v", err)
	}
	if gotPath != "/v2/conans/tool/0.4.0/corp/testing/revisions" {
		t.Errorf("unexpected path: %s", gotPath)
	}
}

func TestClient_LatestRevision(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/conans/fmt/10.2.1/_/_/revisions/latest" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(revisionJSON{
			Revision: "9199a917ab1a9e5474f7e0da24ec1bb2",
			Time:     "2024-03-01T12:00:00Z",
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	rev, err := c.LatestRevision(context.Background(), conan.RecipeRef{Name: "fmt", Version: "10.2.1"}, true)
	if err != nil {
		t.Fatalf("LatestRevision failed: %v", err)
	}
	if rev.Revision != "9199a917ab1a9e5474f7e0da24ec1bb2" {
		t.Errorf("unexpected revision: %s", rev.Revision)
	}
}

func TestClient_LatestRevision_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.LatestRevision(context.Background(), conan.RecipeRef{Name: "missing", Version: "1.0"}, true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_SearchPackages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/conans/zlib/1.3.1/_/_/revisions/ffa77daf/search" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]PackageConfig{
			"4c3cbd7bf1d1e0b4bbff2b5e818a153b": {
				Settings: map[string]string{
					"os":               "Linux",
					"arch":             "x86_64",
					"compiler":         "gcc",
					"compiler.version": "12",
					"build_type":       "Release",
				},
				Options:  map[string]string{"shared": "False"},
				Requires: []string{},
			},
			"9a8be0f31d1e0b4bbff2b5e818a153b0": {
				Settings: map[string]string{"os": "Windows", "arch": "x86_64"},
				Options:  map[string]string{"shared": "True"},
			},
		})
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	ref := conan.RecipeRef{Name: "zlib", Version: "1.3.1", Revision: "ffa77daf"}
	pkgs, err := c.SearchPackages(context.Background(), ref, true)
	if err != nil {
		t.Fatalf("SearchPackages failed: %v", err)
	}

	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(pkgs))
	}
	cfg, ok := pkgs["4c3cbd7bf1d1e0b4bbff2b5e818a153b"]
	if !ok {
		t.Fatal("expected package 4c3cbd7bf1d1e0b4bbff2b5e818a153b")
	}
	if cfg.Settings["compiler.version"] != "12" {
		t.Errorf("expected compiler.version 12, got %q", cfg.Settings["compiler.version"])
	}
	if cfg.Options["shared"] != "False" {
		t.Errorf("expected shared False, got %q", cfg.Options["shared"])
	}
}

func TestClient_SearchPackages_RequiresRevision(t *testing.T) {
	c := testClient(t, "http://unused.invalid")

	_, err := c.SearchPackages(context.Background(), conan.RecipeRef{Name: "zlib", Version: "1.3.1"}, true)
	if err == nil {
		t.Fatal("expected error for reference without revision")
	}
}

func TestClient_Authenticate(t *testing.T) {
	authCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/users/authenticate":
			authCalls++
			if got := r.Header.Get("Authorization"); got != integrations.BasicAuth("admin", "secret") {
				t.Errorf("unexpected auth header: %q", got)
			}
			w.Write([]byte("tok123\n"))
		case r.Header.Get("Authorization") != "Bearer tok123":
			w.WriteHeader(http.StatusUnauthorized)
		case r.URL.Path == "/v2/conans/private/1.0/_/_/revisions":
			json.NewEncoder(w).Encode(revisionsResponse{Revisions: []revisionJSON{
				{Revision: "aa11", Time: "2024-03-01T12:00:00Z"},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	c.user = "admin"
	c.password = "secret"

	// First request hits a 401, authenticates, and retries with the token.
	revs, err := c.RecipeRevisions(context.Background(), conan.RecipeRef{Name: "private", Version: "1.0"}, true)
	if err != nil {
		t.Fatalf("RecipeRevisions failed: %v", err)
	}
	if len(revs) != 1 {
		t.Fatalf("expected 1 revision, got %d", len(revs))
	}
	if authCalls != 1 {
		t.Errorf("expected 1 authenticate call, got %d", authCalls)
	}

	// The token is reused; no second authentication round-trip.
	if _, err := c.RecipeRevisions(context.Background(), conan.RecipeRef{Name: "private", Version: "1.0"}, true); err != nil {
		t.Fatalf("second RecipeRevisions failed: %v", err)
	}
	if authCalls != 1 {
		t.Errorf("expected token reuse, got %d authenticate calls", authCalls)
	}
}

func TestClient_Authenticate_NoCredentials(t *testing.T) {
	c := testClient(t, "http://unused.invalid")

	err := c.Authenticate(context.Background())
	if !errors.Is(err, integrations.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/ping" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Conan-Server-Capabilities", "revisions")
	}))

	c := testClient(t, server.URL)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	server.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error pinging closed server")
	}
}

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return &Client{
		Client:  integrations.NewClient(cache.NewNullCache(), "conan:test:", time.Hour, nil),
		baseURL: serverURL,
	}
}
