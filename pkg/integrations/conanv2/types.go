package conanv2

import (
	"time"
)

// Revision is a recipe revision with its creation time.
// Time is the zero value when the remote reported no usable timestamp.
type Revision struct {
	Revision string
	Time     time.Time
}

// PackageConfig is the configuration of one binary package: the
// settings/options combination it was built with and its requirements.
type PackageConfig struct {
	Settings map[string]string `json:"settings"`
	Options  map[string]string `json:"options"`
	Requires []string          `json:"requires"`
}

// API response schemas.

type searchResponse struct {
	Results []string `json:"results"`
}

type revisionsResponse struct {
	Revisions []revisionJSON `json:"revisions"`
}

type revisionJSON struct {
	Revision string `json:"revision"`
	Time     string `json:"time"`
}

// timeLayouts are the timestamp formats observed across server
// implementations: conan_server emits ISO 8601 with a numeric offset,
// Artifactory adds fractional seconds, and older servers use the display
// format with a trailing zone name.
var timeLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05 MST",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r revisionJSON) toRevision() Revision {
	return Revision{
		Revision: r.Revision,
		Time:     parseTime(r.Time),
	}
}
