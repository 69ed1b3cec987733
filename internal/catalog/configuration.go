package catalog

import (
	"context"
	stderrors "errors"

	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/errors"
	"github.com/roknus/conan-ui/pkg/integrations"
)

// ConfigurationQuery selects one binary of a package version. Empty
// strings mean "not provided".
type ConfigurationQuery struct {
	User           string
	Channel        string
	PackageID      string
	RecipeRevision string
}

// Configuration returns the detail of a single binary. The recipe
// revision defaults to the latest; resolution failure means the package
// itself is unknown. PackageID is required, but only after the package
// is known to exist.
func (c *Catalog) Configuration(ctx context.Context, remoteName, name, version string, q ConfigurationQuery, refresh bool) (conan.ConfigurationDetail, error) {
	remote, err := c.resolve(remoteName)
	if err != nil {
		return conan.ConfigurationDetail{}, err
	}

	ref := conan.RecipeRef{Name: name, Version: version, User: q.User, Channel: q.Channel}

	revision := q.RecipeRevision
	if revision == "" {
		latest, err := remote.Source.LatestRevision(ctx, ref, refresh)
		if err != nil {
			if stderrors.Is(err, integrations.ErrNotFound) {
				return conan.ConfigurationDetail{}, errors.New(errors.ErrCodePackageNotFound, "Package %s not found", ref.String())
			}
			return conan.ConfigurationDetail{}, err
		}
		revision = latest.Revision
	}

	if q.PackageID == "" {
		return conan.ConfigurationDetail{}, errors.New(errors.ErrCodeInvalidInput,
			"package_id parameter is required for package configuration")
	}

	pkgs, err := remote.Source.SearchPackages(ctx, ref.WithRevision(revision), refresh)
	if err != nil {
		if stderrors.Is(err, integrations.ErrNotFound) {
			return conan.ConfigurationDetail{}, errors.New(errors.ErrCodePackageNotFound, "Package %s not found", ref.String())
		}
		return conan.ConfigurationDetail{}, err
	}

	cfg, ok := pkgs[q.PackageID]
	if !ok {
		return conan.ConfigurationDetail{}, errors.New(errors.ErrCodeBinaryNotFound,
			"Package binary with ID '%s' not found", q.PackageID)
	}

	return conan.ConfigurationDetail{
		Name:     name,
		Version:  version,
		User:     conan.StringPtr(q.User),
		Channel:  conan.StringPtr(q.Channel),
		Settings: orEmptyMap(cfg.Settings),
		Options:  orEmptyMap(cfg.Options),
		Requires: orEmptySlice(cfg.Requires),
		Path:     ref.PkgRefString(q.PackageID),
	}, nil
}
