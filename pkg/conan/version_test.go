package conan

import (
	"reflect"
	"testing"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "1.3.1", "1.3.1", 0},
		{"patch greater", "1.3.2", "1.3.1", 1},
		{"patch less", "1.3.1", "1.3.2", -1},
		{"minor beats patch", "1.4.0", "1.3.9", 1},
		{"major wins", "2.0.0", "1.99.99", 1},
		{"double digit segments", "1.10.0", "1.9.0", 1},
		{"prerelease before release", "2.0.0-rc1", "2.0.0", -1},

		// Non-semver fallback
		{"four segments", "1.3.1.2", "1.3.1.1", 1},
		{"longer wins when prefix equal", "1.3.1.1", "1.3.1", 1},
		{"two segment", "1.3", "1.2", 1},
		{"numeric after alpha", "1.0", "1.rc", 1},
		{"cci date versions", "cci.20231225", "cci.20230101", 1},
		{"equal loose", "cci.20231225", "cci.20231225", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareVersions(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			// Comparison is antisymmetric
			if got := CompareVersions(tt.b, tt.a); got != -tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestLatestVersion(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     string
	}{
		{"empty", nil, ""},
		{"single", []string{"1.0.0"}, "1.0.0"},
		{"ordered input", []string{"1.0.0", "1.1.0", "2.0.0"}, "2.0.0"},
		{"unordered input", []string{"1.10.0", "2.0.0", "1.2.0"}, "2.0.0"},
		{"numeric not lexical", []string{"1.9.0", "1.10.0"}, "1.10.0"},
		{"loose versions", []string{"cci.20230101", "cci.20231225"}, "cci.20231225"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LatestVersion(tt.versions); got != tt.want {
				t.Errorf("LatestVersion(%v) = %q, want %q", tt.versions, got, tt.want)
			}
		})
	}
}

func TestSortVersionsDesc(t *testing.T) {
	versions := []string{"1.2.0", "1.10.0", "2.0.0", "1.2.11"}
	SortVersionsDesc(versions)

	want := []string{"2.0.0", "1.10.0", "1.2.11", "1.2.0"}
	if !reflect.DeepEqual(versions, want) {
		t.Errorf("SortVersionsDesc() = %v, want %v", versions, want)
	}
}
