package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// conanRemotesFile mirrors the remotes.json conan 2.x keeps under
// $CONAN_HOME.
type conanRemotesFile struct {
	Remotes []struct {
		Name     string `json:"name"`
		URL      string `json:"url"`
		Disabled bool   `json:"disabled"`
	} `json:"remotes"`
}

// mergeConanRemotes appends remotes from a conan remotes.json file.
// Explicitly configured remotes win on name collisions; disabled remotes
// are skipped. A missing file is not an error.
func mergeConanRemotes(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read conan remotes: %w", err)
	}

	var file conanRemotesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse conan remotes %s: %w", path, err)
	}

	for _, r := range file.Remotes {
		if r.Disabled {
			continue
		}
		if _, ok := cfg.Remote(r.Name); ok {
			continue
		}
		cfg.Remotes = append(cfg.Remotes, RemoteConfig{Name: r.Name, URL: r.URL})
	}
	return nil
}
