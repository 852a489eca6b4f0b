package piopack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// msysLibRoot is the allow-list entry for runtime libraries that ship with
// the embedded MSYS toolchain; anything resolved outside it is an OS
// library and must not be bundled.
var msysLibRoot = []string{"msys64"}

// preparePackage reshapes the raw installation tree into the registry's
// expected layout: the binary moves from bin/ to the tree root, the
// emptied bin directory goes away, a readme is carried over when present,
// and on the Windows family the MSYS runtime DLLs are bundled next to the
// binary.
func preparePackage(execCtx *Executor, installDir string, windows bool) error {
	entries, err := os.ReadDir(installDir)
	if err != nil || len(entries) == 0 {
		return fmt.Errorf("folder with package cannot be empty: %s", installDir)
	}

	colArrow.Print("-> ")
	colSuccess.Println("Preparing package")

	binaryName := normalizeBinary(toolName, windows)
	binaryPath := filepath.Join(installDir, "bin", binaryName)
	if !isFile(binaryPath) {
		return fmt.Errorf("missing %s binary in the installed directory", toolName)
	}

	rootBinary := filepath.Join(installDir, binaryName)
	if err := os.Rename(binaryPath, rootBinary); err != nil {
		return fmt.Errorf("failed to relocate %s: %w", binaryName, err)
	}
	if err := os.RemoveAll(filepath.Join(installDir, "bin")); err != nil {
		return fmt.Errorf("failed to remove the emptied bin directory: %w", err)
	}

	if err := copyReadme(installDir); err != nil {
		return err
	}

	if windows {
		colArrow.Print("-> ")
		colSuccess.Println("Copying MSYS dynamic libraries")
		if err := copyLibDeps(execCtx, rootBinary, msysLibRoot); err != nil {
			return err
		}
	}
	return nil
}

// copyReadme carries the first readme variant from the working directory
// into the installation tree; having none is fine.
func copyReadme(installDir string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(cwd)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if name == "readme.md" || name == "readme.txt" {
			return copyFile(filepath.Join(cwd, entry.Name()), filepath.Join(installDir, name))
		}
	}
	return nil
}

// copyLibDeps places every allow-listed runtime library next to the binary
// that needs it.
func copyLibDeps(execCtx *Executor, binaryPath string, allowedPaths []string) error {
	dstDir := filepath.Dir(binaryPath)
	libs, err := extractDynamicLibraries(execCtx, binaryPath, allowedPaths)
	if err != nil {
		return err
	}
	for _, libPath := range libs {
		debugf("Copying `%s` to `%s`\n", libPath, dstDir)
		if err := copyFile(libPath, filepath.Join(dstDir, filepath.Base(libPath))); err != nil {
			return fmt.Errorf("failed to copy %s: %w", libPath, err)
		}
	}
	return nil
}
