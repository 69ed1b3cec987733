// Package apiclient provides the Go client for the conan-ui REST API.
//
// It is the data layer behind the browse TUI and the query commands.
// Calls use a fixed 10 second timeout and no retries; any failure is
// logged with its cause and surfaced as one generic error message per
// endpoint, suitable for inline display.
package apiclient

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/roknus/conan-ui/pkg/conan"
)

// requestTimeout bounds every API call. There is no retry; a slow
// backend surfaces as an error the UI can display.
const requestTimeout = 10 * time.Second

// Client calls the conan-ui REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New creates a client for the API at baseURL. A nil logger falls back
// to log.Default().
func New(baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ConfigurationQuery selects one binary of a package version. Empty
// fields are omitted from the request.
type ConfigurationQuery struct {
	User           string
	Channel        string
	PackageID      string
	RecipeRevision string
}

// Root fetches the service info. It doubles as the reachability probe:
// an error here means the backend is missing or misconfigured.
func (c *Client) Root(ctx context.Context) (conan.RootInfo, error) {
	var info conan.RootInfo
	err := c.get(ctx, "/", nil, &info, "Failed to fetch service info")
	return info, err
}

// Health fetches the backend health report.
func (c *Client) Health(ctx context.Context) (conan.Health, error) {
	var health conan.Health
	err := c.get(ctx, "/health", nil, &health, "Failed to fetch health status")
	return health, err
}

// Repositories fetches the configured remotes.
func (c *Client) Repositories(ctx context.Context) (conan.RepositoriesResponse, error) {
	var repos conan.RepositoriesResponse
	err := c.get(ctx, "/repositories", nil, &repos, "Failed to fetch repositories")
	return repos, err
}

// Packages fetches a page of package summaries matching query.
func (c *Client) Packages(ctx context.Context, remote, query string, page, perPage int, refresh bool) (conan.PackagesPage, error) {
	values := url.Values{}
	values.Set("remote_name", remote)
	if query != "" {
		values.Set("q", query)
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))
	setRefresh(values, refresh)

	var result conan.PackagesPage
	err := c.get(ctx, "/packages", values, &result, "Failed to fetch packages")
	return result, err
}

// Versions fetches every version of a package with its variants.
func (c *Client) Versions(ctx context.Context, remote, name string, refresh bool) (conan.PackageVersionsPage, error) {
	values := url.Values{}
	values.Set("remote_name", remote)
	setRefresh(values, refresh)

	var result conan.PackageVersionsPage
	err := c.get(ctx, "/packages/"+url.PathEscape(name), values, &result, "Failed to fetch package versions")
	return result, err
}

// Binaries fetches the filtered binary list of a package version. The
// filter's reference dimensions ride along as empty-string sentinels;
// unset settings dimensions are omitted entirely.
func (c *Client) Binaries(ctx context.Context, remote, name, version string, filter conan.BinaryFilter, refresh bool) (conan.BinariesPage, error) {
	values := filter.QueryValues()
	values.Set("remote_name", remote)
	setRefresh(values, refresh)

	var result conan.BinariesPage
	err := c.get(ctx, c.packagePath(name, version, "binaries"), values, &result, "Failed to fetch package binaries")
	return result, err
}

// FilterOptions fetches the unfiltered option catalog of a package
// version.
func (c *Client) FilterOptions(ctx context.Context, remote, name, version string, refresh bool) (conan.FilterOptionsPage, error) {
	values := url.Values{}
	values.Set("remote_name", remote)
	setRefresh(values, refresh)

	var result conan.FilterOptionsPage
	err := c.get(ctx, c.packagePath(name, version, "filter-options"), values, &result, "Failed to fetch filter options")
	return result, err
}

// Configuration fetches the detail of one binary.
func (c *Client) Configuration(ctx context.Context, remote, name, version string, q ConfigurationQuery, refresh bool) (conan.ConfigurationDetail, error) {
	values := url.Values{}
	values.Set("remote_name", remote)
	if q.User != "" {
		values.Set("user", q.User)
	}
	if q.Channel != "" {
		values.Set("channel", q.Channel)
	}
	if q.PackageID != "" {
		values.Set("package_id", q.PackageID)
	}
	if q.RecipeRevision != "" {
		values.Set("recipe_revision", q.RecipeRevision)
	}
	setRefresh(values, refresh)

	var result conan.ConfigurationDetail
	err := c.get(ctx, c.packagePath(name, version, "configuration"), values, &result, "Failed to fetch package configuration")
	return result, err
}

func (c *Client) packagePath(name, version, suffix string) string {
	return "/packages/" + url.PathEscape(name) + "/" + url.PathEscape(version) + "/" + suffix
}

func setRefresh(values url.Values, refresh bool) {
	if refresh {
		values.Set("refresh", "true")
	}
}

// get performs one GET request and decodes the JSON response. On any
// failure it logs the cause and returns an error carrying only msg.
func (c *Client) get(ctx context.Context, path string, values url.Values, v any, msg string) error {
	u := c.baseURL + path
	if len(values) > 0 {
		u += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.logger.Error(msg, "url", u, "err", err)
		return stderrors.New(msg)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error(msg, "url", u, "err", err)
		return stderrors.New(msg)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error(msg, "url", u, "status", resp.StatusCode, "detail", readDetail(resp))
		return stderrors.New(msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		c.logger.Error(msg, "url", u, "err", err)
		return stderrors.New(msg)
	}
	return nil
}

// readDetail extracts the {"detail"} envelope from an error response for
// logging. Unparseable bodies yield an empty string.
func readDetail(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}
