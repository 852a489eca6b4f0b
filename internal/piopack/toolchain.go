package piopack

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CMake (> 3.15) and Ninja are pulled from the registry's own tool packages
// so builds do not depend on whatever the host happens to ship.
var requiredPrograms = []string{"cmake", "ninja", "ldd", "pio", "gcc", "g++"}

// toolchainCache resolves registry tool packages in the local package
// cache, installing them on demand. Constructed once per run and passed to
// the stages that need it.
type toolchainCache struct {
	execCtx *Executor
	coreDir string
}

func newToolchainCache(execCtx *Executor, cfg *Config) (*toolchainCache, error) {
	dir := cfg.Values["PLATFORMIO_CORE_DIR"]
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot locate the registry package cache: %w", err)
		}
		dir = filepath.Join(home, ".platformio")
	}
	return &toolchainCache{execCtx: execCtx, coreDir: dir}, nil
}

// locateOrInstall returns the install location of a registry tool package,
// installing it first when the cache doesn't have it yet.
func (t *toolchainCache) locateOrInstall(name string) (string, error) {
	pkgDir := filepath.Join(t.coreDir, "packages", name)
	if info, err := os.Stat(pkgDir); err == nil && info.IsDir() {
		return pkgDir, nil
	}

	colArrow.Print("-> ")
	colSuccess.Printf("Installing '%s' from the registry\n", name)
	res := t.execCtx.Run("pio", "pkg", "install", "--global", "--tool", name)
	if err := validateExecResult(res, fmt.Sprintf("Failed to install '%s'", name)); err != nil {
		return "", err
	}

	if info, err := os.Stat(pkgDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("'%s' is still missing after installation: %s", name, pkgDir)
	}
	return pkgDir, nil
}

// injectPath prepends the provisioned cmake and ninja directories to PATH,
// ahead of all system directories.
func (t *toolchainCache) injectPath() error {
	cmakeDir, err := t.locateOrInstall("tool-cmake")
	if err != nil {
		return err
	}
	ninjaDir, err := t.locateOrInstall("tool-ninja")
	if err != nil {
		return err
	}
	entries := []string{filepath.Join(cmakeDir, "bin"), ninjaDir, os.Getenv("PATH")}
	return os.Setenv("PATH", strings.Join(entries, string(os.PathListSeparator)))
}

// checkRequirements asserts every required external program is reachable
// on the search path and creates the scoped working directories.
func checkRequirements(dirs ...string) error {
	for _, prog := range requiredPrograms {
		if _, err := exec.LookPath(prog); err != nil {
			return fmt.Errorf("'%s' is not installed", prog)
		}
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("the folder `%s` was not created: %w", d, err)
		}
	}
	return nil
}
