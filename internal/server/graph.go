package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roknus/conan-ui/internal/catalog"
	"github.com/roknus/conan-ui/pkg/cache"
	"github.com/roknus/conan-ui/pkg/depgraph"
	"github.com/roknus/conan-ui/pkg/errors"
	"github.com/roknus/conan-ui/pkg/observability"
)

// graphTTL bounds artifact staleness when the revision floats with
// "latest". Revision-pinned artifacts are immutable and never expire.
const graphTTL = 5 * time.Minute

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// handleGraph renders the direct requirements of one binary as DOT or
// SVG. It resolves the binary exactly like the configuration endpoint,
// so package_id is required and the revision defaults to latest.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.requireCatalog(w)
	if !ok {
		return
	}
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = formatDOT
	}
	if format != formatDOT && format != formatSVG {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat,
			"format must be 'dot' or 'svg'"), "build requirements graph")
		return
	}

	name := chi.URLParam(r, "name")
	version := chi.URLParam(r, "version")
	remote := q.Get("remote_name")
	cq := configurationQuery(q)
	if err := validateRef(name, version); err != nil {
		s.writeError(w, r, err, "build requirements graph")
		return
	}
	if err := validateSelection(cq); err != nil {
		s.writeError(w, r, err, "build requirements graph")
		return
	}

	ref := name + "/" + version
	observability.Query().OnGraphStart(r.Context(), remote, ref)
	start := time.Now()

	out, contentType, nodes, err := s.renderGraph(r.Context(), cat, remote, name, version, cq, format, parseRefresh(q))
	observability.Query().OnGraphComplete(r.Context(), remote, ref, nodes, time.Since(start), err)
	if err != nil {
		s.writeError(w, r, err, "build requirements graph")
		return
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(out); err != nil {
		s.logger.Error("write graph response", "id", requestID(r.Context()), "err", err)
	}
}

func (s *Server) renderGraph(ctx context.Context, cat *catalog.Catalog, remote, name, version string, cq catalog.ConfigurationQuery, format string, refresh bool) ([]byte, string, int, error) {
	contentType := "text/vnd.graphviz"
	if format == formatSVG {
		contentType = "image/svg+xml"
	}

	graphKey := s.keyer.GraphKey(remote, name+"/"+version, cache.GraphKeyOpts{
		PackageID: cq.PackageID,
		Revision:  cq.RecipeRevision,
	})
	artifactKey := s.keyer.ArtifactKey(graphKey, cache.ArtifactKeyOpts{Format: format})

	if !refresh {
		if data, ok, err := s.cache.Get(ctx, artifactKey); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, contentType, 0, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	detail, err := cat.Configuration(ctx, remote, name, version, cq, refresh)
	if err != nil {
		return nil, "", 0, err
	}

	g := depgraph.FromRequires(detail.Path, detail.Requires)
	dot := g.ToDOT(depgraph.Options{})

	out := []byte(dot)
	if format == formatSVG {
		out, err = depgraph.RenderSVG(ctx, dot)
		if err != nil {
			return nil, "", 0, err
		}
	}

	ttl := graphTTL
	if cq.RecipeRevision != "" {
		// Recipe revisions are immutable, so the artifact is too.
		ttl = 0
	}
	if err := s.cache.Set(ctx, artifactKey, out, ttl); err != nil {
		s.logger.Warn("cache graph artifact", "key", artifactKey, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(out))
	}

	return out, contentType, len(g.Deps) + 1, nil
}
