package conan

// Setting keys used in binary configurations.
// Compiler version is a flat key in Conan's settings serialization, not a
// nested object.
const (
	SettingOS              = "os"
	SettingArch            = "arch"
	SettingCompiler        = "compiler"
	SettingCompilerVersion = "compiler.version"
	SettingBuildType       = "build_type"
)

// Filter keys as they appear in binary query parameters and the
// filtered_by echo, in canonical order.
const (
	FilterKeyRecipeRevision  = "recipe_revision"
	FilterKeyUser            = "user"
	FilterKeyChannel         = "channel"
	FilterKeyOS              = "os"
	FilterKeyArch            = "arch"
	FilterKeyCompiler        = "compiler"
	FilterKeyCompilerVersion = "compiler_version"
	FilterKeyBuildType       = "build_type"
)

// FilterKeys lists all binary filter dimensions in canonical order.
var FilterKeys = []string{
	FilterKeyRecipeRevision,
	FilterKeyUser,
	FilterKeyChannel,
	FilterKeyOS,
	FilterKeyArch,
	FilterKeyCompiler,
	FilterKeyCompilerVersion,
	FilterKeyBuildType,
}

// RecipeOnlyPackageID is the placeholder package ID reported for recipe
// references that have no built binaries.
const RecipeOnlyPackageID = "recipe-only"
