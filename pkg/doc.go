// Package pkg provides the core libraries for browsing Conan package metadata.
//
// # Overview
//
// Conan UI presents the contents of Conan C/C++ package remotes: search
// results, version lists, binary listings, and per-configuration detail. The
// pkg directory is organized into four main areas:
//
//  1. [conan] - Domain model (references, version ordering, filters, DTOs)
//  2. [integrations] - Upstream access (shared HTTP client + Conan v2 API)
//  3. [apiclient] - Client for this project's own REST API
//  4. [cache] / [observability] / [errors] / [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Conan remote (v1/v2 REST API)
//	         ↓
//	    [integrations/conanv2] (search, revisions, package search)
//	         ↓
//	    internal/catalog (grouping, filtering, pagination)
//	         ↓
//	    internal/server (REST facade)
//	         ↓
//	    [apiclient] (browse TUI and other consumers)
//
// # Quick Start
//
// Query a remote directly:
//
//	import (
//	    "context"
//	    "github.com/roknus/conan-ui/pkg/cache"
//	    "github.com/roknus/conan-ui/pkg/integrations/conanv2"
//	)
//
//	backend := cache.NewMemoryCache()
//	client := conanv2.NewClient(backend, "conancenter", "https://center.conan.io", "", "")
//	refs, _ := client.SearchRecipes(context.Background(), "zlib", false)
//
// Or consume a running conan-ui backend:
//
//	api := apiclient.New("http://localhost:8000", logger)
//	page, _ := api.Packages(ctx, "conancenter", "zlib", 1, 20, false)
//
// # Main Packages
//
// [conan] - Recipe and package references ([conan.ParseRecipeRef]), conan
// version ordering (semver with lexical fallback), the binary filter and its
// query encoding, the filter-options catalog, and the response DTOs shared by
// server and clients.
//
// [integrations] - The shared upstream HTTP client: cache-first fetches,
// retry with backoff on retryable failures, sentinel errors, fixed timeout.
//
// [integrations/conanv2] - Conan server v2 REST client built on the shared
// client: ping, recipe search, revision listing, per-revision package search,
// token authentication for credentialed remotes.
//
// [apiclient] - Client for this project's REST surface. Every endpoint
// failure is logged and reduced to one generic error string, matching the
// behavior the browse TUI expects.
//
// [cache] - Cache interface with file, memory, redis, and null backends plus
// SHA-256 request keying. Backends are safe for concurrent use.
//
// [depgraph] - Requirements fan-out of a binary rendered to DOT or SVG via
// Graphviz.
//
// [observability] - Hook interfaces (query, cache, HTTP) with no-op defaults
// for instrumenting fetch paths without wiring a metrics stack.
//
// [errors] - Coded errors and input validation shared across surfaces.
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/conan/...      # Specific package
//	go test -run Example         # Examples only
//
// [conan]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/conan
// [conan.ParseRecipeRef]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/conan#ParseRecipeRef
// [integrations]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/integrations
// [integrations/conanv2]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/integrations/conanv2
// [apiclient]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/apiclient
// [cache]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/cache
// [depgraph]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/depgraph
// [observability]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/observability
// [errors]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/roknus/conan-ui/pkg/buildinfo
package pkg
