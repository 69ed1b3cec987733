package conan

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions orders two Conan version strings.
// Returns -1 if a < b, 0 if equal, and 1 if a > b.
//
// Versions that parse as semantic versions are ordered by semver rules.
// Everything else falls back to segment-wise comparison: dot-separated
// segments compare numerically when both sides are numeric, lexically
// otherwise, with missing segments ordering first. This matches how Conan
// orders loose versions like "cci.20231225" or "1.3.1.2".
func CompareVersions(a, b string) int {
	if a == b {
		return 0
	}

	av, aerr := semver.NewVersion(a)
	bv, berr := semver.NewVersion(b)
	if aerr == nil && berr == nil {
		return av.Compare(bv)
	}

	return compareSegments(a, b)
}

func compareSegments(a, b string) int {
	as := splitSegments(a)
	bs := splitSegments(b)

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aNum := parseNumeric(as[i])
		bn, bNum := parseNumeric(bs[i])

		switch {
		case aNum && bNum:
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
		case aNum != bNum:
			// Numeric segments order after alphanumeric ones ("1.0" > "1.rc").
			if aNum {
				return 1
			}
			return -1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func splitSegments(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-' || r == '+'
	})
}

func parseNumeric(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

// LatestVersion returns the highest version from the list, or "" for an
// empty list.
func LatestVersion(versions []string) string {
	latest := ""
	for _, v := range versions {
		if latest == "" || CompareVersions(v, latest) > 0 {
			latest = v
		}
	}
	return latest
}

// SortVersionsDesc sorts versions in place, newest first.
func SortVersionsDesc(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) > 0
	})
}
