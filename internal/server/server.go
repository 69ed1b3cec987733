// Package server exposes the catalog as a REST API.
//
// The surface is read-only JSON over GET: service info, health,
// repositories, package search, version listings, binary listings with
// filters, configuration detail, and a requirements-graph renderer.
// Errors use a {"detail": "..."} envelope. Middleware adds request IDs,
// request logging, CORS, and panic recovery.
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/roknus/conan-ui/internal/catalog"
	"github.com/roknus/conan-ui/pkg/cache"
)

// apiVersion is reported by the service info endpoint.
const apiVersion = "1.0.0"

// Server serves the REST API over a catalog.
type Server struct {
	catalog     *catalog.Catalog
	cache       cache.Cache
	keyer       cache.Keyer
	logger      *log.Logger
	version     string
	corsOrigins []string
}

// Options configures optional server collaborators.
type Options struct {
	// Cache stores rendered graph artifacts. Defaults to a null cache.
	Cache cache.Cache

	// Logger receives request and error logs. Defaults to log.Default().
	Logger *log.Logger

	// Version overrides the reported API version.
	Version string

	// CORSOrigins lists origins allowed for cross-origin requests.
	CORSOrigins []string
}

// New creates a server around cat. A nil catalog serves the degraded
// surface: the service info endpoint reports unavailability and every
// other endpoint answers 503 until a catalog is configured.
func New(cat *catalog.Catalog, opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Version == "" {
		opts.Version = apiVersion
	}
	return &Server{
		catalog:     cat,
		cache:       opts.Cache,
		keyer:       cache.NewDefaultKeyer(),
		logger:      opts.Logger,
		version:     opts.Version,
		corsOrigins: opts.CORSOrigins,
	}
}

// Handler builds the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withRequestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(s.cors)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/repositories", s.handleRepositories)
	r.Get("/packages", s.handlePackages)
	r.Get("/packages/{name}", s.handleVersions)
	r.Get("/packages/{name}/{version}/binaries", s.handleBinaries)
	r.Get("/packages/{name}/{version}/filter-options", s.handleFilterOptions)
	r.Get("/packages/{name}/{version}/configuration", s.handleConfiguration)
	r.Get("/packages/{name}/{version}/graph", s.handleGraph)

	return r
}

// requireCatalog answers the 503 envelope when no catalog is configured.
func (s *Server) requireCatalog(w http.ResponseWriter) (*catalog.Catalog, bool) {
	if s.catalog == nil {
		s.writeJSON(w, http.StatusServiceUnavailable,
			errorBody{Detail: "Conan API not available - service starting up"})
		return nil, false
	}
	return s.catalog, true
}
