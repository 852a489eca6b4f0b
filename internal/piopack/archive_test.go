package piopack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveName(t *testing.T) {
	name := archiveName([]string{"linux_x86_64", "linux_aarch64"}, "1.0500.0")
	assert.Equal(t, "tool-cppcheck-linux_x86_64-1.0500.0.tar.gz", name)
}

func TestCreateArchiveAndInspect(t *testing.T) {
	work := t.TempDir()
	pkgDir := filepath.Join(work, "pkg")
	outDir := filepath.Join(work, "result")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	fakeInstallTree(t, pkgDir)
	require.NoError(t, os.Rename(filepath.Join(pkgDir, "bin", "cppcheck"), filepath.Join(pkgDir, "cppcheck")))
	require.NoError(t, os.RemoveAll(filepath.Join(pkgDir, "bin")))
	require.NoError(t, writeManifest(pkgDir, "1.0500.0", []string{"linux_x86_64"}))

	before, err := os.Getwd()
	require.NoError(t, err)

	execCtx := NewExecutor(context.Background())
	name := archiveName([]string{"linux_x86_64"}, "1.0500.0")
	require.NoError(t, createArchive(execCtx, pkgDir, outDir, name))

	// Archiving runs tar inside the package tree without touching the
	// process working directory.
	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	tarball := filepath.Join(outDir, name)
	require.True(t, isFile(tarball))

	require.NoError(t, inspectArchive(tarball, "cppcheck", manifestName))
	require.ErrorContains(t, inspectArchive(tarball, "no-such-entry"), "missing entry")
}

func TestWriteTarGzFallback(t *testing.T) {
	work := t.TempDir()
	pkgDir := filepath.Join(work, "pkg")
	fakeInstallTree(t, pkgDir)

	tarball := filepath.Join(work, "out.tar.gz")
	require.NoError(t, writeTarGz(pkgDir, tarball))

	require.NoError(t, inspectArchive(tarball, "bin/cppcheck"))
}

func TestCreateArchiveMissingTree(t *testing.T) {
	execCtx := NewExecutor(context.Background())
	err := createArchive(execCtx, filepath.Join(t.TempDir(), "nope"), t.TempDir(), "x.tar.gz")
	require.ErrorContains(t, err, "doesn't exist")
}
