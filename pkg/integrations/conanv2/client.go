// Package conanv2 implements a client for the Conan server v2 REST API.
//
// Each Client talks to a single remote. Responses are cached per remote
// under a namespaced key prefix, so clients for different remotes never
// share entries even when they point at the same cache backend.
package conanv2

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/roknus/conan-ui/pkg/cache"
	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/errors"
	"github.com/roknus/conan-ui/pkg/integrations"
)

const cacheTTL = 5 * time.Minute

// Client provides access to one Conan remote over the v2 REST API.
// It handles HTTP requests with caching, automatic retries, and
// token-based authentication when credentials are configured.
type Client struct {
	*integrations.Client
	baseURL  string
	user     string
	password string

	mu    sync.Mutex
	token string
}

// NewClient creates a client for the remote at baseURL. The remote name
// namespaces cache keys. Pass empty credentials for anonymous access.
func NewClient(backend cache.Cache, remote, baseURL, user, password string) *Client {
	return &Client{
		Client:   integrations.NewClient(backend, "conan:"+remote+":", cacheTTL, nil),
		baseURL:  strings.TrimRight(baseURL, "/"),
		user:     user,
		password: password,
	}
}

// Ping reports whether the remote is reachable. It performs a single
// request without caching or retries, so callers can bound it with a
// short context deadline.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetTextWithHeaders(ctx, c.baseURL+"/v1/ping", c.authHeaders())
	return err
}

// Authenticate exchanges the configured credentials for a bearer token.
// Later requests send the token until the server rejects it.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.user == "" {
		return fmt.Errorf("%w: no credentials configured", integrations.ErrUnauthorized)
	}
	headers := map[string]string{"Authorization": integrations.BasicAuth(c.user, c.password)}
	token, err := c.GetTextWithHeaders(ctx, c.baseURL+"/v1/users/authenticate", headers)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.token = strings.TrimSpace(token)
	c.mu.Unlock()
	return nil
}

// SearchRecipes lists recipe references matching pattern. Patterns use
// the usual wildcards ("zlib/*", "*ssl*") and match case-insensitively.
// A pattern that matches nothing yields an empty result, not an error.
func (c *Client) SearchRecipes(ctx context.Context, pattern string, refresh bool) ([]conan.RecipeRef, error) {
	var resp searchResponse
	key := "search:" + pattern
	err := c.Cached(ctx, key, refresh, &resp, func() error {
		url := fmt.Sprintf("%s/v2/conans/search?q=%s&ignorecase=True", c.baseURL, integrations.URLEncode(pattern))
		return c.getJSON(ctx, url, &resp)
	})
	if err != nil {
		if stderrors.Is(err, integrations.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	refs := make([]conan.RecipeRef, 0, len(resp.Results))
	for _, raw := range resp.Results {
		ref, err := conan.ParseRecipeRef(raw)
		if err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// RecipeRevisions lists the revisions of a recipe in server order.
func (c *Client) RecipeRevisions(ctx context.Context, ref conan.RecipeRef, refresh bool) ([]Revision, error) {
	var resp revisionsResponse
	key := "revisions:" + ref.String()
	err := c.Cached(ctx, key, refresh, &resp, func() error {
		return c.getJSON(ctx, c.recipeURL(ref, "revisions"), &resp)
	})
	if err != nil {
		return nil, err
	}

	revs := make([]Revision, 0, len(resp.Revisions))
	for _, r := range resp.Revisions {
		revs = append(revs, r.toRevision())
	}
	return revs, nil
}

// LatestRevision returns the most recent revision of a recipe.
// Unknown recipes yield [integrations.ErrNotFound].
func (c *Client) LatestRevision(ctx context.Context, ref conan.RecipeRef, refresh bool) (Revision, error) {
	var resp revisionJSON
	key := "latest:" + ref.String()
	err := c.Cached(ctx, key, refresh, &resp, func() error {
		return c.getJSON(ctx, c.recipeURL(ref, "revisions/latest"), &resp)
	})
	if err != nil {
		return Revision{}, err
	}
	return resp.toRevision(), nil
}

// SearchPackages lists the binaries published under one recipe revision,
// keyed by package ID. The reference must carry a revision.
func (c *Client) SearchPackages(ctx context.Context, ref conan.RecipeRef, refresh bool) (map[string]PackageConfig, error) {
	if ref.Revision == "" {
		return nil, errors.New(errors.ErrCodeInvalidReference, "package search requires a revision: %s", ref.String())
	}

	var resp map[string]PackageConfig
	key := "packages:" + ref.String()
	err := c.Cached(ctx, key, refresh, &resp, func() error {
		return c.getJSON(ctx, c.recipeURL(ref, "revisions/"+ref.Revision+"/search"), &resp)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// recipeURL builds a /v2/conans recipe path, substituting the "_"
// placeholders for empty user and channel segments. Reference fields are
// validated at the API boundary, so no escaping is needed here.
func (c *Client) recipeURL(ref conan.RecipeRef, suffix string) string {
	return fmt.Sprintf("%s/v2/conans/%s/%s/%s/%s/%s",
		c.baseURL, ref.Name, ref.Version, ref.PathUser(), ref.PathChannel(), suffix)
}

// getJSON performs an authenticated GET. On a 401 with credentials
// configured it authenticates once and repeats the request.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	err := c.GetWithHeaders(ctx, url, c.authHeaders(), v)
	if stderrors.Is(err, integrations.ErrUnauthorized) && c.user != "" {
		if err := c.Authenticate(ctx); err != nil {
			return err
		}
		return c.GetWithHeaders(ctx, url, c.authHeaders(), v)
	}
	return err
}

func (c *Client) authHeaders() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.token}
}
