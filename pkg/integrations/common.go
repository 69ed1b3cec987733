package integrations

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist on the remote.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned when the remote requires authentication.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the configured credentials lack permission.
	ErrForbidden = errors.New("access forbidden")
)

// NewHTTPClient creates an HTTP client with a standard timeout for remote requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizePkgName converts a package name to its canonical form.
// Conan package names are matched case-insensitively; leading and trailing
// whitespace is never significant.
func NormalizePkgName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BasicAuth builds an HTTP Basic Authorization header value from credentials.
func BasicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
