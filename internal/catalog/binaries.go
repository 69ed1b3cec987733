package catalog

import (
	"context"
	stderrors "errors"
	"sort"
	"time"

	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/integrations"
	"github.com/roknus/conan-ui/pkg/observability"
)

// instance is one (user/channel variant, recipe revision) occurrence of a
// package version.
type instance struct {
	ref  conan.RecipeRef // revision set
	time time.Time
}

// expand enumerates every instance of name/version on the remote: all
// user/channel variants times all recipe revisions of each.
func (c *Catalog) expand(ctx context.Context, remote Remote, name, version string, refresh bool) ([]instance, error) {
	refs, err := remote.Source.SearchRecipes(ctx, name+"/"+version+"*", refresh)
	if err != nil {
		return nil, err
	}

	var out []instance
	for _, ref := range refs {
		// The wildcard also matches longer versions; keep exact ones only.
		if ref.Name != name || ref.Version != version {
			continue
		}
		revs, err := remote.Source.RecipeRevisions(ctx, ref, refresh)
		if err != nil {
			if stderrors.Is(err, integrations.ErrNotFound) {
				c.logger.Warn("no revisions for reference", "ref", ref.String(), "remote", remote.Name)
				continue
			}
			return nil, err
		}
		for _, rev := range revs {
			out = append(out, instance{ref: ref.WithRevision(rev.Revision), time: rev.Time})
		}
	}
	return out, nil
}

// Binaries lists the binaries of a package version after applying the
// filter. The revision filter defaults to the latest recipe revision; an
// instance without binaries yields one recipe-only placeholder entry.
func (c *Catalog) Binaries(ctx context.Context, remoteName, name, version string, filter conan.BinaryFilter, refresh bool) (conan.BinariesPage, error) {
	remote, err := c.resolve(remoteName)
	if err != nil {
		return conan.BinariesPage{}, err
	}

	refString := name + "/" + version
	observability.Query().OnBinariesStart(ctx, remote.Name, refString)
	start := time.Now()

	page, err := c.listBinaries(ctx, remote, name, version, filter, refresh)
	observability.Query().OnBinariesComplete(ctx, remote.Name, refString, len(page.Binaries), time.Since(start), err)
	return page, err
}

func (c *Catalog) listBinaries(ctx context.Context, remote Remote, name, version string, filter conan.BinaryFilter, refresh bool) (conan.BinariesPage, error) {
	instances, err := c.expand(ctx, remote, name, version, refresh)
	if err != nil {
		return conan.BinariesPage{}, err
	}

	if len(instances) == 0 {
		return conan.BinariesPage{
			PackageName: name,
			Version:     version,
			Binaries:    []conan.Binary{},
			RevisionInfo: conan.RevisionInfo{
				RecipeRevisions: []string{},
				Users:           []string{},
				Channels:        []string{},
			},
			FilteredBy: filter.FilteredBy(filter.RecipeRevision),
		}, nil
	}

	revisionTimes := make(map[string]time.Time)
	userSet := make(map[string]bool)
	channelSet := make(map[string]bool)
	for _, inst := range instances {
		if t, ok := revisionTimes[inst.ref.Revision]; !ok || inst.time.After(t) {
			revisionTimes[inst.ref.Revision] = inst.time
		}
		if inst.ref.User != "" {
			userSet[inst.ref.User] = true
		}
		if inst.ref.Channel != "" {
			channelSet[inst.ref.Channel] = true
		}
	}

	// Newest first. Revision IDs are hex digests, so recency comes from
	// the revision timestamps; the ID breaks ties deterministically.
	revisions := make([]string, 0, len(revisionTimes))
	for rev := range revisionTimes {
		revisions = append(revisions, rev)
	}
	sort.Slice(revisions, func(i, j int) bool {
		ti, tj := revisionTimes[revisions[i]], revisionTimes[revisions[j]]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return revisions[i] > revisions[j]
	})
	latest := revisions[0]

	target := filter.RecipeRevision
	if target == "" {
		target = latest
	}

	binaries := []conan.Binary{}
	for _, inst := range instances {
		if inst.ref.Revision != target {
			continue
		}
		if filter.User != "" && inst.ref.User != filter.User {
			continue
		}
		if filter.Channel != "" && inst.ref.Channel != filter.Channel {
			continue
		}

		pkgs, err := remote.Source.SearchPackages(ctx, inst.ref, refresh)
		if err != nil && !stderrors.Is(err, integrations.ErrNotFound) {
			return conan.BinariesPage{}, err
		}

		if len(pkgs) == 0 {
			// Recipe published without binaries. The placeholder bypasses
			// the settings filters so the recipe stays visible.
			binaries = append(binaries, conan.Binary{
				PackageID:      conan.RecipeOnlyPackageID,
				User:           conan.StringPtr(inst.ref.User),
				Channel:        conan.StringPtr(inst.ref.Channel),
				RecipeRevision: conan.StringPtr(inst.ref.Revision),
				Settings:       map[string]string{},
				Options:        map[string]string{},
				Requires:       []string{},
				Created:        unixSeconds(inst.time),
				Path:           inst.ref.WithoutRevision().String(),
			})
			continue
		}

		for _, id := range sortedIDs(pkgs) {
			cfg := pkgs[id]
			if !filter.MatchesSettings(cfg.Settings) {
				continue
			}
			binaries = append(binaries, conan.Binary{
				PackageID:      id,
				User:           conan.StringPtr(inst.ref.User),
				Channel:        conan.StringPtr(inst.ref.Channel),
				RecipeRevision: conan.StringPtr(inst.ref.Revision),
				Settings:       orEmptyMap(cfg.Settings),
				Options:        orEmptyMap(cfg.Options),
				Requires:       orEmptySlice(cfg.Requires),
				Created:        unixSeconds(inst.time),
				Path:           inst.ref.WithoutRevision().PkgRefString(id),
			})
		}
	}

	return conan.BinariesPage{
		PackageName: name,
		Version:     version,
		Binaries:    binaries,
		RevisionInfo: conan.RevisionInfo{
			RecipeRevisions: revisions,
			Users:           sortedSet(userSet),
			Channels:        sortedSet(channelSet),
			LatestRevision:  conan.StringPtr(latest),
		},
		TotalBinaries: len(binaries),
		FilteredBy:    filter.FilteredBy(target),
	}, nil
}

// FilterOptions computes the unfiltered option catalog for a package
// version by aggregating settings over every binary of every instance.
// Instances whose package list cannot be fetched are skipped.
func (c *Catalog) FilterOptions(ctx context.Context, remoteName, name, version string, refresh bool) (conan.FilterOptionsPage, error) {
	remote, err := c.resolve(remoteName)
	if err != nil {
		return conan.FilterOptionsPage{}, err
	}

	instances, err := c.expand(ctx, remote, name, version, refresh)
	if err != nil {
		return conan.FilterOptionsPage{}, err
	}

	var settings []map[string]string
	for _, inst := range instances {
		pkgs, err := remote.Source.SearchPackages(ctx, inst.ref, refresh)
		if err != nil {
			if !stderrors.Is(err, integrations.ErrNotFound) {
				c.logger.Warn("could not get package configurations", "ref", inst.ref.String(), "remote", remote.Name, "err", err)
			}
			continue
		}
		for _, id := range sortedIDs(pkgs) {
			settings = append(settings, pkgs[id].Settings)
		}
	}

	options := conan.CollectOptions(settings)
	return conan.FilterOptionsPage{
		PackageName:      name,
		Version:          version,
		FilterOptions:    options.Options,
		CompilerVersions: options.CompilerVersions,
	}, nil
}
