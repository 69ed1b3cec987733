// Package integrations provides HTTP clients for Conan remote APIs.
//
// # Overview
//
// This package contains low-level API clients for fetching package metadata
// from Conan remotes. Each remote protocol has its own subpackage:
//
//   - [conanv2]: Conan server v2 REST API (conan_server, Artifactory)
//
// # Client Pattern
//
// All remote clients follow a consistent pattern:
//
//	client := conanv2.NewClient(backend, "conancenter", url, user, password)
//	refs, err := client.SearchRecipes(ctx, "zlib", false)  // false = use cache
//
// Clients handle:
//   - HTTP requests with retry and rate limiting
//   - Response caching (pluggable backend, configurable TTL)
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all remote
// clients, including HTTP response caching via [cache.Cache].
//
// # Adding a New Remote Protocol
//
// To add support for another remote API generation:
//
//  1. Create a subpackage: pkg/integrations/<protocol>/
//  2. Define response structs matching the API schema
//  3. Implement a Client with the catalog query methods
//  4. Use [NewClient] for HTTP with caching
//  5. Wire into the catalog as a new source
//
// [conanv2]: github.com/roknus/conan-ui/pkg/integrations/conanv2
// [cache.Cache]: github.com/roknus/conan-ui/pkg/cache.Cache
package integrations
