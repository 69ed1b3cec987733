package conan

// Wire types for the REST API. Field names and nullability mirror the
// responses exactly; pointer fields render as JSON null when absent.

// Remote describes a configured remote and its availability.
type Remote struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Available   bool   `json:"available"`
	Description string `json:"description"`
	IsDefault   bool   `json:"is_default"`
}

// RepositoriesResponse is the payload of GET /repositories.
type RepositoriesResponse struct {
	Repositories []Remote `json:"repositories"`
	Default      string   `json:"default"`
}

// PackageSummary describes a package with basic info.
type PackageSummary struct {
	Name          string   `json:"name"`
	LatestVersion string   `json:"latest_version"`
	TotalVersions int      `json:"total_versions"`
	Created       *float64 `json:"created"`
}

// PackagesPage is the payload of GET /packages.
type PackagesPage struct {
	Packages []PackageSummary `json:"packages"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
}

// Variant is a specific user/channel variant of a package version.
type Variant struct {
	User    *string  `json:"user"`
	Channel *string  `json:"channel"`
	Path    string   `json:"path"`
	Created *float64 `json:"created"`
	Size    *int64   `json:"size"`
}

// PackageVersion is a version with all its user/channel variants.
type PackageVersion struct {
	Version       string    `json:"version"`
	Variants      []Variant `json:"variants"`
	TotalVariants int       `json:"total_variants"`
}

// PackageVersionsPage is the payload of GET /packages/{name}.
type PackageVersionsPage struct {
	PackageName   string           `json:"package_name"`
	Versions      []PackageVersion `json:"versions"`
	TotalVersions int              `json:"total_versions"`
}

// Binary is a specific binary package with all metadata. A placeholder
// with PackageID == RecipeOnlyPackageID signals a recipe without built
// binaries.
type Binary struct {
	PackageID      string            `json:"package_id"`
	User           *string           `json:"user"`
	Channel        *string           `json:"channel"`
	Revision       *string           `json:"revision"`
	RecipeRevision *string           `json:"recipe_revision"`
	Settings       map[string]string `json:"settings"`
	Options        map[string]string `json:"options"`
	Requires       []string          `json:"requires"`
	Created        *float64          `json:"created"`
	Path           string            `json:"path"`
}

// IsRecipeOnly reports whether the binary is a placeholder for a recipe
// without built binaries.
func (b Binary) IsRecipeOnly() bool {
	return b.PackageID == RecipeOnlyPackageID
}

// RevisionInfo lists the available recipe revisions, users, and channels
// for a package version.
type RevisionInfo struct {
	RecipeRevisions []string `json:"recipe_revisions"`
	Users           []string `json:"users"`
	Channels        []string `json:"channels"`
	LatestRevision  *string  `json:"latest_revision"`
}

// BinariesPage is the payload of GET /packages/{name}/{version}/binaries.
type BinariesPage struct {
	PackageName   string             `json:"package_name"`
	Version       string             `json:"version"`
	Binaries      []Binary           `json:"binaries"`
	RevisionInfo  RevisionInfo       `json:"revision_info"`
	TotalBinaries int                `json:"total_binaries"`
	FilteredBy    map[string]*string `json:"filtered_by"`
}

// RecipeOnly reports whether the page consists entirely of recipe-only
// placeholder entries.
func (p BinariesPage) RecipeOnly() bool {
	if len(p.Binaries) == 0 {
		return false
	}
	for _, b := range p.Binaries {
		if !b.IsRecipeOnly() {
			return false
		}
	}
	return true
}

// FilterOptionsPage is the payload of GET
// /packages/{name}/{version}/filter-options.
type FilterOptionsPage struct {
	PackageName      string              `json:"package_name"`
	Version          string              `json:"version"`
	FilterOptions    FilterOptions       `json:"filter_options"`
	CompilerVersions map[string][]string `json:"compiler_versions"`
}

// Catalog converts the page into an OptionsCatalog for filter
// reconciliation.
func (p FilterOptionsPage) Catalog() OptionsCatalog {
	return OptionsCatalog{
		Options:          p.FilterOptions,
		CompilerVersions: p.CompilerVersions,
	}
}

// ConfigurationDetail is the payload of GET
// /packages/{name}/{version}/configuration.
type ConfigurationDetail struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	User        *string           `json:"user"`
	Channel     *string           `json:"channel"`
	Description *string           `json:"description"`
	Homepage    *string           `json:"homepage"`
	License     *string           `json:"license"`
	Author      *string           `json:"author"`
	Settings    map[string]string `json:"settings"`
	Options     map[string]string `json:"options"`
	Requires    []string          `json:"requires"`
	Created     *float64          `json:"created"`
	Path        string            `json:"path"`
}

// RootInfo is the payload of GET /. It is served even when the upstream
// source is unavailable.
type RootInfo struct {
	Message           string   `json:"message"`
	Version           string   `json:"version"`
	ConanAPIAvailable bool     `json:"conan_api_available"`
	AvailableRemotes  []string `json:"available_remotes"`
	DefaultRemote     string   `json:"default_remote"`
	ConfiguredRemotes int      `json:"configured_remotes"`
}

// Health is the payload of GET /health.
type Health struct {
	Status   string `json:"status"`
	ConanAPI string `json:"conan_api,omitempty"`
	Remotes  *int   `json:"remotes,omitempty"`
	Error    string `json:"error,omitempty"`
}

// StringPtr returns a pointer to s, or nil when s is empty. It maps
// empty-string sentinels to JSON null.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Float64Ptr returns a pointer to f, or nil when f is zero.
func Float64Ptr(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
