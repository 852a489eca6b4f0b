package piopack

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// acquireBuildLock takes an exclusive flock next to the build directory.
// The build and install directories are named deterministically from the
// target list and deliberately survive between runs, so two concurrent
// invocations for the same targets would trample each other's trees.
func acquireBuildLock(buildDir string) (func(), error) {
	lockPath := buildDir + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", lockPath, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("build directory %s is in use by another run: %w", buildDir, err)
	}
	return func() {
		unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
	}, nil
}
