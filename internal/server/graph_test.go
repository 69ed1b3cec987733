package server

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/roknus/conan-ui/pkg/cache"
)

func TestGraph_DOT(t *testing.T) {
	env := newTestEnv(t, Options{})

	resp := env.get(t, "/packages/zlib/1.3.1/graph?remote_name=conancenter&package_id=abc123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("unexpected content type %q", ct)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	dot := string(body)
	if !strings.Contains(dot, "digraph requirements {") {
		t.Errorf("not a DOT graph:\n%s", dot)
	}
	if !strings.Contains(dot, `"zlib/1.3.1:abc123" -> "openssl/3.2.0";`) {
		t.Errorf("requirement edge missing:\n%s", dot)
	}
}

func TestGraph_BadRequests(t *testing.T) {
	env := newTestEnv(t, Options{})

	resp := env.get(t, "/packages/zlib/1.3.1/graph?remote_name=conancenter&package_id=abc123&format=png")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if detail := errorDetail(t, resp); detail != "format must be 'dot' or 'svg'" {
		t.Errorf("unexpected detail %q", detail)
	}

	resp = env.get(t, "/packages/zlib/1.3.1/graph?remote_name=conancenter")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without package_id, got %d", resp.StatusCode)
	}

	resp = env.get(t, "/packages/zlib/9.9/graph?remote_name=conancenter&package_id=abc123")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown version, got %d", resp.StatusCode)
	}
}

func TestGraph_ArtifactCache(t *testing.T) {
	env := newTestEnv(t, Options{Cache: cache.NewMemoryCache()})

	path := "/packages/zlib/1.3.1/graph?remote_name=conancenter&package_id=abc123"
	env.get(t, path).Body.Close()
	after := env.source.packageCalls()

	// Cached artifact: no round trip to the catalog.
	env.get(t, path).Body.Close()
	if got := env.source.packageCalls(); got != after {
		t.Errorf("expected cached artifact, got %d extra calls", got-after)
	}

	// refresh bypasses the artifact cache.
	env.get(t, path+"&refresh=true").Body.Close()
	if got := env.source.packageCalls(); got != after+1 {
		t.Errorf("expected refresh to rebuild, calls went %d -> %d", after, got)
	}
}
