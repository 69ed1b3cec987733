package conan

import "net/url"

// BinaryFilter holds the selection across all binary filter dimensions.
// All fields are independent and optional; an empty string means the
// dimension is unfiltered. CompilerVersion is only meaningful when
// Compiler is set.
type BinaryFilter struct {
	RecipeRevision  string
	User            string
	Channel         string
	OS              string
	Arch            string
	Compiler        string
	CompilerVersion string
	BuildType       string
}

// IsZero reports whether no dimension is filtered.
func (f BinaryFilter) IsZero() bool {
	return f == BinaryFilter{}
}

// SetCompiler changes the compiler selection. Any previously selected
// compiler version is reset, since versions are only valid for the
// compiler they were collected under.
func (f *BinaryFilter) SetCompiler(compiler string) {
	if f.Compiler != compiler {
		f.CompilerVersion = ""
	}
	f.Compiler = compiler
}

// MatchesSettings reports whether a binary's settings pass the filter's
// settings dimensions. Reference dimensions (revision, user, channel) are
// matched at the instance level, not here.
func (f BinaryFilter) MatchesSettings(settings map[string]string) bool {
	if f.OS != "" && settings[SettingOS] != f.OS {
		return false
	}
	if f.Arch != "" && settings[SettingArch] != f.Arch {
		return false
	}
	if f.Compiler != "" && settings[SettingCompiler] != f.Compiler {
		return false
	}
	if f.CompilerVersion != "" && settings[SettingCompilerVersion] != f.CompilerVersion {
		return false
	}
	if f.BuildType != "" && settings[SettingBuildType] != f.BuildType {
		return false
	}
	return true
}

// QueryValues encodes the filter as binary-listing query parameters.
// Reference dimensions always appear, using empty-string sentinels for
// "unfiltered"; settings dimensions are omitted entirely when unset.
func (f BinaryFilter) QueryValues() url.Values {
	values := url.Values{}
	values.Set(FilterKeyRecipeRevision, f.RecipeRevision)
	values.Set(FilterKeyUser, f.User)
	values.Set(FilterKeyChannel, f.Channel)

	if f.OS != "" {
		values.Set(FilterKeyOS, f.OS)
	}
	if f.Arch != "" {
		values.Set(FilterKeyArch, f.Arch)
	}
	if f.Compiler != "" {
		values.Set(FilterKeyCompiler, f.Compiler)
	}
	if f.CompilerVersion != "" {
		values.Set(FilterKeyCompilerVersion, f.CompilerVersion)
	}
	if f.BuildType != "" {
		values.Set(FilterKeyBuildType, f.BuildType)
	}
	return values
}

// FilteredBy builds the filtered_by echo for a binaries response. Every
// filter key is present; unfiltered dimensions are nil. The revision entry
// reports the revision actually applied after latest-resolution, which may
// differ from the requested one.
func (f BinaryFilter) FilteredBy(appliedRevision string) map[string]*string {
	echo := func(v string) *string {
		if v == "" {
			return nil
		}
		s := v
		return &s
	}
	return map[string]*string{
		FilterKeyRecipeRevision:  echo(appliedRevision),
		FilterKeyUser:            echo(f.User),
		FilterKeyChannel:         echo(f.Channel),
		FilterKeyOS:              echo(f.OS),
		FilterKeyArch:            echo(f.Arch),
		FilterKeyCompiler:        echo(f.Compiler),
		FilterKeyCompilerVersion: echo(f.CompilerVersion),
		FilterKeyBuildType:       echo(f.BuildType),
	}
}
