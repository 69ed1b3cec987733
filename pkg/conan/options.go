package conan

import "sort"

// FilterOptions is the unfiltered option catalog for a package version.
// Each list is sorted and de-duplicated.
type FilterOptions struct {
	OS        []string `json:"os"`
	Arch      []string `json:"arch"`
	Compiler  []string `json:"compiler"`
	BuildType []string `json:"build_type"`
}

// OptionsCatalog pairs the option catalog with the compiler-to-versions
// mapping used to keep compiler version choices consistent with the
// selected compiler.
type OptionsCatalog struct {
	Options          FilterOptions
	CompilerVersions map[string][]string
}

// CollectOptions builds the option catalog from binary settings maps.
// Empty setting values are skipped. Compiler versions are grouped under
// the compiler they were observed with.
func CollectOptions(configs []map[string]string) OptionsCatalog {
	osSet := map[string]bool{}
	archSet := map[string]bool{}
	compilerSet := map[string]bool{}
	buildTypeSet := map[string]bool{}
	versionSets := map[string]map[string]bool{}

	for _, settings := range configs {
		if v := settings[SettingOS]; v != "" {
			osSet[v] = true
		}
		if v := settings[SettingArch]; v != "" {
			archSet[v] = true
		}
		if compiler := settings[SettingCompiler]; compiler != "" {
			compilerSet[compiler] = true
			if v := settings[SettingCompilerVersion]; v != "" {
				if versionSets[compiler] == nil {
					versionSets[compiler] = map[string]bool{}
				}
				versionSets[compiler][v] = true
			}
		}
		if v := settings[SettingBuildType]; v != "" {
			buildTypeSet[v] = true
		}
	}

	compilerVersions := make(map[string][]string, len(versionSets))
	for compiler, versions := range versionSets {
		compilerVersions[compiler] = sortedKeys(versions)
	}

	return OptionsCatalog{
		Options: FilterOptions{
			OS:        sortedKeys(osSet),
			Arch:      sortedKeys(archSet),
			Compiler:  sortedKeys(compilerSet),
			BuildType: sortedKeys(buildTypeSet),
		},
		CompilerVersions: compilerVersions,
	}
}

// VersionsFor returns the valid compiler versions for the given compiler,
// or nil when no compiler is selected or the compiler is unknown.
func (c OptionsCatalog) VersionsFor(compiler string) []string {
	if compiler == "" {
		return nil
	}
	return c.CompilerVersions[compiler]
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
