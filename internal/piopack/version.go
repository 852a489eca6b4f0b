package piopack

import (
	"fmt"
	"strings"
)

const defaultVersion = "1.0.0"

// resolveReleaseVersion derives the release version being packaged:
// explicit override first, then the CI tag reference, then git metadata,
// and finally a warned-about default. Overrides come through the merged
// configuration, so both the conf file and the environment can set them.
func resolveReleaseVersion(execCtx *Executor, cfg *Config) string {
	if v := cfg.Values["PLATFORMIO_PACKAGE_VERSION"]; v != "" {
		return v
	}

	if ref := cfg.Values["GITHUB_REF"]; ref != "" {
		if v := strings.TrimPrefix(ref, "refs/tags/"); v != "" {
			return v
		}
		colWarn.Println("Warning! There is no refs/tags/* value in $GITHUB_REF")
	} else {
		colWarn.Println("Warning! GITHUB_REF is not available. Extracting version directly from Git")
		res := execCtx.Run("git", "describe", "--tags")
		if res.ExitCode == 0 {
			return strings.TrimSpace(res.Out)
		}
		debugf("git describe failed: %s\n", res.Err)
	}

	colWarn.Printf("Warning! Failed to extract a release version. Default '%s' will be used!\n", defaultVersion)
	return defaultVersion
}

// toRegistryVersion encodes a release version into the registry's numeric
// scheme: minor and patch left-padded to two digits each and wrapped in the
// fixed "1.<digits>.0" epoch. "1.2.3" becomes "1.0203.0"; a two-field
// version gains an implicit ".0" patch. Minor or patch values above 99
// yield a longer string than the registry documents; that output is kept
// as-is because the registry's behavior for it is unspecified.
func toRegistryVersion(version string) (string, error) {
	version = strings.TrimPrefix(version, "v")
	if strings.Count(version, ".") == 1 {
		version += ".0"
	}
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("unexpected version format: %q", version)
	}

	var encoded string
	for _, field := range parts[1:] {
		if len(field) < 2 {
			field = "0" + field
		}
		encoded += field
	}
	return "1." + encoded + ".0", nil
}
