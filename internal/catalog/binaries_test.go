package catalog

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/roknus/conan-ui/pkg/conan"
	"github.com/roknus/conan-ui/pkg/integrations/conanv2"
)

// binariesFixture publishes app/1.0 with two revisions on the plain ref
// and one on corp/stable. The newest revision carries a Linux and a
// Windows binary; corp/stable is recipe-only; the older revision has a
// single Macos binary. The older revision ID sorts after the newer one
// as a string, so anything revision-ordered must go by timestamp.
func binariesFixture() *Catalog {
	src := &fakeSource{
		refs: []conan.RecipeRef{
			ref("app/1.0"),
			ref("app/1.0@corp/stable"),
		},
		revisions: map[string][]conanv2.Revision{
			"app/1.0":             {{Revision: "bbb222", Time: testTime(12)}, {Revision: "fff000", Time: testTime(10)}},
			"app/1.0@corp/stable": {{Revision: "bbb222", Time: testTime(11)}},
		},
		packages: map[string]map[string]conanv2.PackageConfig{
			"app/1.0#bbb222": {
				"p-linux": {
					Settings: map[string]string{
						"os": "Linux", "arch": "x86_64",
						"compiler": "gcc", "compiler.version": "12",
						"build_type": "Release",
					},
					Options:  map[string]string{"shared": "False"},
					Requires: []string{"zlib/1.3.1"},
				},
				"p-win": {
					Settings: map[string]string{
						"os": "Windows", "arch": "x86_64",
						"compiler": "msvc", "compiler.version": "193",
						"build_type": "Debug",
					},
				},
			},
			"app/1.0#fff000": {
				"p-mac": {
					Settings: map[string]string{
						"os": "Macos", "arch": "armv8",
						"compiler": "apple-clang", "compiler.version": "15",
					},
				},
			},
			"app/1.0@corp/stable#bbb222": {},
		},
	}
	return New(nil, Remote{Name: "alpha", URL: "https://alpha.example.com", Source: src})
}

func TestCatalog_Binaries(t *testing.T) {
	c := binariesFixture()

	page, err := c.Binaries(context.Background(), "alpha", "app", "1.0", conan.BinaryFilter{}, false)
	if err != nil {
		t.Fatalf("Binaries failed: %v", err)
	}

	// The newest revision by timestamp wins, not the largest ID; only its
	// instances contribute binaries.
	if page.TotalBinaries != 3 {
		t.Fatalf("expected 3 binaries, got %d", page.TotalBinaries)
	}

	linux := page.Binaries[0]
	if linux.PackageID != "p-linux" {
		t.Errorf("expected p-linux first, got %s", linux.PackageID)
	}
	if linux.User != nil || linux.Channel != nil {
		t.Errorf("plain ref binary must have null user/channel: %+v", linux)
	}
	if linux.RecipeRevision == nil || *linux.RecipeRevision != "bbb222" {
		t.Errorf("unexpected recipe revision: %v", linux.RecipeRevision)
	}
	if linux.Revision != nil {
		t.Error("package revision is never reported")
	}
	if linux.Path != "app/1.0:p-linux" {
		t.Errorf("unexpected path %s", linux.Path)
	}
	if linux.Created == nil {
		t.Error("binary must carry its revision timestamp")
	}
	if linux.Options["shared"] != "False" || len(linux.Requires) != 1 {
		t.Errorf("options/requires not carried over: %+v", linux)
	}

	if page.Binaries[1].PackageID != "p-win" {
		t.Errorf("expected p-win second, got %s", page.Binaries[1].PackageID)
	}

	// corp/stable has no binaries under the latest revision, so it shows
	// as a recipe-only placeholder.
	placeholder := page.Binaries[2]
	if !placeholder.IsRecipeOnly() {
		t.Fatalf("expected recipe-only placeholder, got %s", placeholder.PackageID)
	}
	if placeholder.User == nil || *placeholder.User != "corp" {
		t.Errorf("unexpected placeholder user: %v", placeholder.User)
	}
	if placeholder.Path != "app/1.0@corp/stable" {
		t.Errorf("unexpected placeholder path %s", placeholder.Path)
	}
	if placeholder.Settings == nil || placeholder.Options == nil || placeholder.Requires == nil {
		t.Error("placeholder maps must be empty, not null")
	}

	info := page.RevisionInfo
	if len(info.RecipeRevisions) != 2 || info.RecipeRevisions[0] != "bbb222" || info.RecipeRevisions[1] != "fff000" {
		t.Errorf("unexpected revisions: %v", info.RecipeRevisions)
	}
	if info.LatestRevision == nil || *info.LatestRevision != "bbb222" {
		t.Errorf("unexpected latest revision: %v", info.LatestRevision)
	}
	if len(info.Users) != 1 || info.Users[0] != "corp" {
		t.Errorf("unexpected users: %v", info.Users)
	}
	if len(info.Channels) != 1 || info.Channels[0] != "stable" {
		t.Errorf("unexpected channels: %v", info.Channels)
	}

	// The echo reports the revision actually applied.
	if rev := page.FilteredBy["recipe_revision"]; rev == nil || *rev != "bbb222" {
		t.Errorf("unexpected filtered_by revision: %v", rev)
	}
	if page.FilteredBy["os"] != nil {
		t.Error("unfiltered dimensions must echo null")
	}
}

func TestCatalog_Binaries_SettingsFilter(t *testing.T) {
	c := binariesFixture()

	page, err := c.Binaries(context.Background(), "alpha", "app", "1.0", conan.BinaryFilter{OS: "Linux"}, false)
	if err != nil {
		t.Fatalf("Binaries failed: %v", err)
	}

	// The Windows binary is filtered out; the recipe-only placeholder
	// bypasses settings filters and stays visible.
	if page.TotalBinaries != 2 {
		t.Fatalf("expected 2 binaries, got %d", page.TotalBinaries)
	}
	if page.Binaries[0].PackageID != "p-linux" || !page.Binaries[1].IsRecipeOnly() {
		t.Errorf("unexpected binaries: %+v", page.Binaries)
	}
	if page.RecipeOnly() {
		t.Error("page with a real binary must not report recipe-only")
	}

	// A filter matching nothing still surfaces the placeholder.
	page, err = c.Binaries(context.Background(), "alpha", "app", "1.0", conan.BinaryFilter{OS: "FreeBSD"}, false)
	if err != nil {
		t.Fatalf("Binaries failed: %v", err)
	}
	if page.TotalBinaries != 1 || !page.Binaries[0].IsRecipeOnly() {
		t.Errorf("expected only the placeholder, got %+v", page.Binaries)
	}
	if !page.RecipeOnly() {
		t.Error("placeholder-only page must report recipe-only")
	}
}

func TestCatalog_Binaries_ReferenceFilters(t *testing.T) {
	c := binariesFixture()

	page, err := c.Binaries(context.Background(), "alpha", "app", "1.0", conan.BinaryFilter{User: "corp"}, false)
	if err != nil {
		t.Fatalf("Binaries failed: %v", err)
	}
	if page.TotalBinaries != 1 || !page.Binaries[0].IsRecipeOnly() {
		t.Errorf("expected only the corp placeholder, got %+v", page.Binaries)
	}

	page, err = c.Binaries(context.Background(), "alpha", "app", "1.0", conan.BinaryFilter{Channel: "stable"}, false)
	if err != nil {
		t.Fatalf("Binaries failed: %v", err)
	}
	if page.TotalBinaries != 1 || !page.Binaries[0].IsRecipeOnly() {
		t.Errorf("expected only the stable placeholder, got %+v", page.Binaries)
	}
}

func TestCatalog_Binaries_ExplicitRevision(t *testing.T) {
	c := binariesFixture()

	page, err := c.Binaries(context.Background(), "alpha", "app", "1.0", conan.BinaryFilter{RecipeRevision: "fff000"}, false)
	if err != nil {
		t.Fatalf("Binaries failed: %v", err)
	}
	if page.TotalBinaries != 1 || page.Binaries[0].PackageID != "p-mac" {
		t.Errorf("expected only p-mac for fff000, got %+v", page.Binaries)
	}
	if rev := page.FilteredBy["recipe_revision"]; rev == nil || *rev != "fff000" {
		t.Errorf("unexpected filtered_by revision: %v", rev)
	}
	// Revision metadata is unchanged by the filter.
	if len(page.RevisionInfo.RecipeRevisions) != 2 {
		t.Errorf("unexpected revisions: %v", page.RevisionInfo.RecipeRevisions)
	}
}

func TestCatalog_Binaries_UnknownVersion(t *testing.T) {
	c := binariesFixture()

	filter := conan.BinaryFilter{RecipeRevision: "deadbeef"}
	page, err := c.Binaries(context.Background(), "alpha", "app", "9.9", filter, false)
	if err != nil {
		t.Fatalf("Binaries failed: %v", err)
	}
	if page.TotalBinaries != 0 || len(page.Binaries) != 0 {
		t.Errorf("expected no binaries, got %+v", page.Binaries)
	}
	if page.Binaries == nil || page.RevisionInfo.RecipeRevisions == nil {
		t.Error("empty page must use empty lists, not null")
	}
	if page.RevisionInfo.LatestRevision != nil {
		t.Errorf("unexpected latest revision: %v", page.RevisionInfo.LatestRevision)
	}
	// Without instances there is nothing to resolve "latest" against, so
	// the echo reports the requested revision as-is.
	if rev := page.FilteredBy["recipe_revision"]; rev == nil || *rev != "deadbeef" {
		t.Errorf("unexpected filtered_by revision: %v", rev)
	}
}

func TestCatalog_Binaries_PackagesError(t *testing.T) {
	boom := stderrors.New("upstream exploded")
	src := &fakeSource{
		refs: []conan.RecipeRef{ref("app/1.0")},
		revisions: map[string][]conanv2.Revision{
			"app/1.0": {{Revision: "bbb222", Time: testTime(12)}},
		},
		packagesErr: boom,
	}
	c := New(nil, Remote{Name: "alpha", URL: "https://alpha.example.com", Source: src})

	_, err := c.Binaries(context.Background(), "alpha", "app", "1.0", conan.BinaryFilter{}, false)
	if !stderrors.Is(err, boom) {
		t.Errorf("expected upstream error to propagate, got %v", err)
	}
}

func TestCatalog_FilterOptions(t *testing.T) {
	c := binariesFixture()

	page, err := c.FilterOptions(context.Background(), "alpha", "app", "1.0", false)
	if err != nil {
		t.Fatalf("FilterOptions failed: %v", err)
	}

	// Options aggregate over all revisions, not just the latest.
	opts := page.FilterOptions
	wantOS := []string{"Linux", "Macos", "Windows"}
	if len(opts.OS) != len(wantOS) {
		t.Fatalf("unexpected os values: %v", opts.OS)
	}
	for i, v := range wantOS {
		if opts.OS[i] != v {
			t.Fatalf("expected os %v, got %v", wantOS, opts.OS)
		}
	}
	if len(opts.Arch) != 2 || opts.Arch[0] != "armv8" || opts.Arch[1] != "x86_64" {
		t.Errorf("unexpected arch values: %v", opts.Arch)
	}
	if len(opts.Compiler) != 3 {
		t.Errorf("unexpected compilers: %v", opts.Compiler)
	}
	if len(opts.BuildType) != 2 || opts.BuildType[0] != "Debug" {
		t.Errorf("unexpected build types: %v", opts.BuildType)
	}

	if got := page.CompilerVersions["gcc"]; len(got) != 1 || got[0] != "12" {
		t.Errorf("unexpected gcc versions: %v", got)
	}
	if got := page.CompilerVersions["msvc"]; len(got) != 1 || got[0] != "193" {
		t.Errorf("unexpected msvc versions: %v", got)
	}
}

func TestCatalog_FilterOptions_SkipsFailingInstances(t *testing.T) {
	boom := stderrors.New("upstream exploded")
	src := &fakeSource{
		refs: []conan.RecipeRef{ref("app/1.0")},
		revisions: map[string][]conanv2.Revision{
			"app/1.0": {{Revision: "bbb222", Time: testTime(12)}},
		},
		packagesErr: boom,
	}
	c := New(nil, Remote{Name: "alpha", URL: "https://alpha.example.com", Source: src})

	page, err := c.FilterOptions(context.Background(), "alpha", "app", "1.0", false)
	if err != nil {
		t.Fatalf("FilterOptions must skip failing instances, got %v", err)
	}
	if len(page.FilterOptions.OS) != 0 {
		t.Errorf("expected no options, got %v", page.FilterOptions.OS)
	}
}
