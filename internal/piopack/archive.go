package piopack

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
)

// archiveName is the deterministic name of the final artifact: the first
// target system and the registry version decide it.
func archiveName(systems []string, version string) string {
	return fmt.Sprintf("%s-%s-%s.tar.gz", pkgName, systems[0], version)
}

// createRegistryPackage asks the registry CLI to pack the installation
// tree into the result directory.
func createRegistryPackage(execCtx *Executor, packageDir, outDir string) error {
	colArrow.Print("-> ")
	colSuccess.Printf("Preparing a registry package from `%s` to `%s`\n", packageDir, outDir)
	if !isDir(packageDir) {
		return fmt.Errorf("package folder doesn't exist: %s", packageDir)
	}

	res := execCtx.Run("pio", "package", "pack", packageDir, "-o", outDir)
	return validateExecResult(res, "Failed to create a registry package!")
}

// createArchive builds the compressed tarball directly, with the package
// tree as the archive root. System tar is preferred; a pure-Go tar+pgzip
// writer covers hosts without it.
func createArchive(execCtx *Executor, packageDir, outDir, name string) error {
	colArrow.Print("-> ")
	colSuccess.Printf("Preparing an archive package from `%s` to `%s`\n", packageDir, outDir)
	if !isDir(packageDir) {
		return fmt.Errorf("package folder doesn't exist: %s", packageDir)
	}

	tarballPath := filepath.Join(outDir, name)

	if _, err := exec.LookPath("tar"); err == nil {
		tarExec := &Executor{Context: execCtx.Context, Dir: packageDir}
		res := tarExec.Run("tar", "-czf", tarballPath, ".")
		if res.ExitCode == 0 {
			return nil
		}
		debugf("system tar failed (exit %d), falling back to internal tar+gzip\n", res.ExitCode)
	}

	return writeTarGz(packageDir, tarballPath)
}

// writeTarGz streams root into a gzip-compressed tarball at tarballPath.
func writeTarGz(root, tarballPath string) error {
	outFile, err := os.Create(tarballPath)
	if err != nil {
		return fmt.Errorf("failed to create tarball file: %w", err)
	}
	defer outFile.Close()

	gz := pgzip.NewWriter(outFile)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		var linkTarget string
		if info.Mode()&os.ModeSymlink != 0 {
			linkTarget, err = os.Readlink(path)
			if err != nil {
				return fmt.Errorf("readlink %s: %w", path, err)
			}
		}

		hdr, err := tar.FileInfoHeader(info, linkTarget)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			hdr.Name += "/"
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
}

// inspectArchive re-opens a finished tarball and confirms the entries that
// make the package usable are actually inside it.
func inspectArchive(tarballPath string, required ...string) error {
	f, err := os.Open(tarballPath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", tarballPath, err)
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader for %s: %w", tarballPath, err)
	}
	defer gz.Close()

	missing := make(map[string]bool, len(required))
	for _, name := range required {
		missing[name] = true
	}

	tr := tar.NewReader(gz)
	for len(missing) > 0 {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading tar header in %s: %w", tarballPath, err)
		}
		name := strings.TrimPrefix(filepath.ToSlash(hdr.Name), "./")
		delete(missing, name)
	}

	for name := range missing {
		return fmt.Errorf("archive %s is missing entry `%s`", tarballPath, name)
	}
	return nil
}
