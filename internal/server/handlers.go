package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/roknus/conan-ui/internal/catalog"
	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/errors"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := conan.RootInfo{
		Message:          "Conan UI API",
		Version:          s.version,
		AvailableRemotes: []string{},
	}
	if s.catalog != nil {
		info.ConanAPIAvailable = true
		info.AvailableRemotes = s.catalog.RemoteNames()
		info.DefaultRemote = s.catalog.DefaultName()
		info.ConfiguredRemotes = s.catalog.AvailableCount()
	}
	s.writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.requireCatalog(w)
	if !ok {
		return
	}
	n := cat.AvailableCount()
	s.writeJSON(w, http.StatusOK, conan.Health{
		Status:   "healthy",
		ConanAPI: "available",
		Remotes:  &n,
	})
}

func (s *Server) handleRepositories(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.requireCatalog(w)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, cat.Remotes())
}

func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.requireCatalog(w)
	if !ok {
		return
	}
	q := r.URL.Query()

	page, perPage, err := parsePagination(q)
	if err != nil {
		s.writeError(w, r, err, "list packages")
		return
	}

	result, err := cat.Packages(r.Context(), q.Get("remote_name"), q.Get("q"), page, perPage, parseRefresh(q))
	if err != nil {
		s.writeError(w, r, err, "list packages")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.requireCatalog(w)
	if !ok {
		return
	}
	q := r.URL.Query()

	name := chi.URLParam(r, "name")
	if err := errors.ValidateConanName(name); err != nil {
		s.writeError(w, r, err, "get package versions")
		return
	}

	result, err := cat.Versions(r.Context(), q.Get("remote_name"), name, parseRefresh(q))
	if err != nil {
		s.writeError(w, r, err, "get package versions")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBinaries(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.requireCatalog(w)
	if !ok {
		return
	}
	q := r.URL.Query()

	name := chi.URLParam(r, "name")
	version := chi.URLParam(r, "version")
	filter := filterFromQuery(q)
	if err := validateRef(name, version); err != nil {
		s.writeError(w, r, err, "get package binaries")
		return
	}
	if err := validateRefFilter(filter.User, filter.Channel, filter.RecipeRevision); err != nil {
		s.writeError(w, r, err, "get package binaries")
		return
	}

	result, err := cat.Binaries(r.Context(), q.Get("remote_name"), name, version, filter, parseRefresh(q))
	if err != nil {
		s.writeError(w, r, err, "get package binaries")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.requireCatalog(w)
	if !ok {
		return
	}
	q := r.URL.Query()

	name := chi.URLParam(r, "name")
	version := chi.URLParam(r, "version")
	if err := validateRef(name, version); err != nil {
		s.writeError(w, r, err, "get filter options")
		return
	}

	result, err := cat.FilterOptions(r.Context(), q.Get("remote_name"), name, version, parseRefresh(q))
	if err != nil {
		s.writeError(w, r, err, "get filter options")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleConfiguration(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.requireCatalog(w)
	if !ok {
		return
	}
	q := r.URL.Query()

	name := chi.URLParam(r, "name")
	version := chi.URLParam(r, "version")
	cq := configurationQuery(q)
	if err := validateRef(name, version); err != nil {
		s.writeError(w, r, err, "get package configuration")
		return
	}
	if err := validateSelection(cq); err != nil {
		s.writeError(w, r, err, "get package configuration")
		return
	}

	result, err := cat.Configuration(r.Context(), q.Get("remote_name"), name, version, cq, parseRefresh(q))
	if err != nil {
		s.writeError(w, r, err, "get package configuration")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func parsePagination(q url.Values) (int, int, error) {
	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "page must be an integer >= 1")
		}
		page = n
	}

	perPage := 20
	if raw := q.Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "per_page must be an integer between 1 and 100")
		}
		perPage = n
	}

	return page, perPage, nil
}

// parseRefresh reads the cache-busting flag. Unparseable values count as
// false.
func parseRefresh(q url.Values) bool {
	ok, err := strconv.ParseBool(q.Get("refresh"))
	return err == nil && ok
}

func filterFromQuery(q url.Values) conan.BinaryFilter {
	return conan.BinaryFilter{
		RecipeRevision:  q.Get(conan.FilterKeyRecipeRevision),
		User:            q.Get(conan.FilterKeyUser),
		Channel:         q.Get(conan.FilterKeyChannel),
		OS:              q.Get(conan.FilterKeyOS),
		Arch:            q.Get(conan.FilterKeyArch),
		Compiler:        q.Get(conan.FilterKeyCompiler),
		CompilerVersion: q.Get(conan.FilterKeyCompilerVersion),
		BuildType:       q.Get(conan.FilterKeyBuildType),
	}
}

func configurationQuery(q url.Values) catalog.ConfigurationQuery {
	return catalog.ConfigurationQuery{
		User:           q.Get("user"),
		Channel:        q.Get("channel"),
		PackageID:      q.Get("package_id"),
		RecipeRevision: q.Get("recipe_revision"),
	}
}

// validateRef rejects malformed path segments before they are spliced
// into upstream request URLs.
func validateRef(name, version string) error {
	if err := errors.ValidateConanName(name); err != nil {
		return err
	}
	return errors.ValidateConanVersion(version)
}

// validateRefFilter checks the reference dimensions of a binary filter.
// Empty values are the unfiltered sentinel and always pass.
func validateRefFilter(user, channel, revision string) error {
	if err := errors.ValidateUserChannel(user); err != nil {
		return err
	}
	if err := errors.ValidateUserChannel(channel); err != nil {
		return err
	}
	return errors.ValidateRevision(revision)
}

// validateSelection checks configuration selection parameters. The
// package_id is not validated here: it is only ever a lookup key, and an
// unknown one reports as a 404 from the catalog.
func validateSelection(cq catalog.ConfigurationQuery) error {
	return validateRefFilter(cq.User, cq.Channel, cq.RecipeRevision)
}
