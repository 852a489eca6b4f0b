package piopack

import (
	"runtime"
	"strings"
)

const systemValuesEnv = "PLATFORMIO_PACKAGE_SYSTEM_VALUES"

// machineNames maps Go architecture names onto the machine names the
// registry uses in its system identifiers.
var machineNames = map[string]string{
	"amd64": "x86_64",
	"386":   "i686",
	"arm64": "aarch64",
	"arm":   "armv7l",
}

func hostSystem() string {
	machine := machineNames[runtime.GOARCH]
	if machine == "" {
		machine = runtime.GOARCH
	}
	return runtime.GOOS + "_" + machine
}

// resolveTargetSystems returns the system identifiers the package is being
// built for, taken from the merged configuration or computed from the host.
func resolveTargetSystems(cfg *Config) []string {
	raw := cfg.Values[systemValuesEnv]
	if raw == "" {
		colWarn.Printf("Warning! `%s` is not set!\n", systemValuesEnv)
		return []string{hostSystem()}
	}

	var systems []string
	for _, value := range strings.Split(raw, ",") {
		value = strings.ReplaceAll(strings.TrimSpace(value), `"`, "")
		if value != "" {
			systems = append(systems, value)
		}
	}
	if len(systems) == 0 {
		return []string{hostSystem()}
	}
	return systems
}

// windowsTarget reports whether the package targets the Windows family,
// which switches on .exe suffixes and MSYS DLL bundling.
func windowsTarget(systems []string) bool {
	return len(systems) > 0 && strings.HasPrefix(systems[0], "windows")
}

func normalizeBinary(name string, windows bool) string {
	if windows {
		return name + ".exe"
	}
	return name
}
