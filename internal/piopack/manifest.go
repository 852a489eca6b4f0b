package piopack

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// packageManifest is the registry manifest written as package.json at the
// root of the installation tree. Written once per build, never merged with
// a pre-existing file.
type packageManifest struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Keywords    []string      `json:"keywords"`
	Homepage    string        `json:"homepage"`
	License     string        `json:"license"`
	System      []string      `json:"system"`
	Repository  repositoryRef `json:"repository"`
}

type repositoryRef struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

func newPackageManifest(version string, systems []string) (*packageManifest, error) {
	if version == "" {
		return nil, errors.New("version value cannot be empty")
	}
	if len(systems) == 0 {
		return nil, errors.New("system list cannot be empty")
	}
	return &packageManifest{
		Name:        pkgName,
		Version:     version,
		Description: "Static code analysis tool for the C and C++ programming languages",
		Keywords:    []string{"static analysis", "tools"},
		Homepage:    "http://cppcheck.sourceforge.net",
		License:     "GPL-3.0-or-later",
		System:      systems,
		Repository: repositoryRef{
			Type: "git",
			URL:  "https://github.com/danmar/cppcheck",
		},
	}, nil
}

// writeManifest generates the registry manifest file, overwriting any
// previous one.
func writeManifest(installDir, version string, systems []string) error {
	colArrow.Print("-> ")
	colSuccess.Printf("Generating registry manifest for '%s' v%s\n", strings.Join(systems, ","), version)

	manifest, err := newPackageManifest(version, systems)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(installDir, manifestName), append(data, '\n'), 0o644)
}
