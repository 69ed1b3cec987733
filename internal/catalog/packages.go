package catalog

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"time"

	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/integrations"
	"github.com/roknus/conan-ui/pkg/observability"
)

// Packages lists packages grouped by name, paginated after sorting by
// lowercased name. The query matches package names case-insensitively.
func (c *Catalog) Packages(ctx context.Context, remoteName, query string, page, perPage int, refresh bool) (conan.PackagesPage, error) {
	remote, err := c.resolve(remoteName)
	if err != nil {
		return conan.PackagesPage{}, err
	}

	pattern := "*"
	if query != "" {
		pattern = "*" + query + "*"
	}

	observability.Query().OnSearchStart(ctx, remote.Name, pattern)
	start := time.Now()

	refs, err := remote.Source.SearchRecipes(ctx, pattern, refresh)
	if err != nil {
		observability.Query().OnSearchComplete(ctx, remote.Name, pattern, 0, time.Since(start), err)
		return conan.PackagesPage{}, err
	}

	// Group by name. total_versions counts refs, so user/channel variants
	// of the same version count separately; latest_version is the highest
	// version across all of them.
	index := make(map[string]int)
	summaries := []conan.PackageSummary{}
	for _, ref := range refs {
		if i, ok := index[ref.Name]; ok {
			summaries[i].TotalVersions++
			if conan.CompareVersions(ref.Version, summaries[i].LatestVersion) > 0 {
				summaries[i].LatestVersion = ref.Version
			}
			continue
		}
		index[ref.Name] = len(summaries)
		summaries = append(summaries, conan.PackageSummary{
			Name:          ref.Name,
			LatestVersion: ref.Version,
			TotalVersions: 1,
		})
	}

	if query != "" {
		q := strings.ToLower(query)
		filtered := summaries[:0]
		for _, s := range summaries {
			if strings.Contains(strings.ToLower(s.Name), q) {
				filtered = append(filtered, s)
			}
		}
		summaries = filtered
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].Name) < strings.ToLower(summaries[j].Name)
	})

	total := len(summaries)
	startIdx := (page - 1) * perPage
	endIdx := startIdx + perPage
	if startIdx > total {
		startIdx = total
	}
	if endIdx > total {
		endIdx = total
	}

	observability.Query().OnSearchComplete(ctx, remote.Name, pattern, total, time.Since(start), nil)

	return conan.PackagesPage{
		Packages: summaries[startIdx:endIdx],
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

// Versions lists every version of a package with its user/channel
// variants. Each variant repeats once per published binary, or once for
// the bare recipe; its timestamp is the latest recipe revision's.
func (c *Catalog) Versions(ctx context.Context, remoteName, pkg string, refresh bool) (conan.PackageVersionsPage, error) {
	remote, err := c.resolve(remoteName)
	if err != nil {
		return conan.PackageVersionsPage{}, err
	}

	refs, err := remote.Source.SearchRecipes(ctx, pkg+"/*", refresh)
	if err != nil {
		return conan.PackageVersionsPage{}, err
	}

	variants := make(map[string][]conan.Variant)
	for _, ref := range refs {
		if ref.Name != pkg {
			continue
		}

		var created *float64
		count := 1
		latest, err := remote.Source.LatestRevision(ctx, ref, refresh)
		switch {
		case err == nil:
			created = unixSeconds(latest.Time)
			pkgs, perr := remote.Source.SearchPackages(ctx, ref.WithRevision(latest.Revision), refresh)
			if perr != nil && !stderrors.Is(perr, integrations.ErrNotFound) {
				c.logger.Warn("could not list packages", "ref", ref.String(), "remote", remote.Name, "err", perr)
			}
			if len(pkgs) > 0 {
				count = len(pkgs)
			}
		case stderrors.Is(err, integrations.ErrNotFound):
			// Recipe without resolvable revisions still lists as a bare variant.
		default:
			return conan.PackageVersionsPage{}, err
		}

		v := conan.Variant{
			User:    conan.StringPtr(ref.User),
			Channel: conan.StringPtr(ref.Channel),
			Path:    ref.String(),
			Created: created,
		}
		for i := 0; i < count; i++ {
			variants[ref.Version] = append(variants[ref.Version], v)
		}
	}

	versions := make([]conan.PackageVersion, 0, len(variants))
	for version, list := range variants {
		versions = append(versions, conan.PackageVersion{
			Version:       version,
			Variants:      list,
			TotalVariants: len(list),
		})
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return conan.CompareVersions(versions[i].Version, versions[j].Version) > 0
	})

	return conan.PackageVersionsPage{
		PackageName:   pkg,
		Versions:      versions,
		TotalVersions: len(versions),
	}, nil
}
