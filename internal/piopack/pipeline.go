package piopack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// runPipeline executes one full build-and-package run: resolve versions
// and targets, provision the toolchain, build and install, reshape the
// tree, generate the manifest, validate, archive, and optionally mirror.
// Fully sequential; the first fatal error aborts everything and a failed
// run is restarted from the beginning. The build and install directories
// are reused across runs as a build cache and are never cleaned up.
func runPipeline(ctx context.Context, cfg *Config) error {
	execCtx := NewExecutor(ctx)

	systems := resolveTargetSystems(cfg)
	releaseVersion := resolveReleaseVersion(execCtx, cfg)
	registryVersion, err := toRegistryVersion(releaseVersion)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	suffix := strings.Join(systems, "_")
	buildDir := buildRoot + "-" + suffix
	installDir := filepath.Join(cwd, toolName+"-built-install-dir-"+suffix)

	unlock, err := acquireBuildLock(buildDir)
	if err != nil {
		return err
	}
	defer unlock()

	toolchain, err := newToolchainCache(execCtx, cfg)
	if err != nil {
		return err
	}
	if err := toolchain.injectPath(); err != nil {
		return err
	}
	if err := checkRequirements(buildDir, resultDir); err != nil {
		return err
	}

	colArrow.Print("-> ")
	colSuccess.Printf("Building %s '%s' for '%s'\n", toolName, registryVersion, strings.Join(systems, ","))
	debugf("%s will be installed to '%s'\n", toolName, installDir)

	transcript := &buildLog{}
	buildExec := NewExecutor(ctx)
	buildExec.Tee = transcript

	build := newCmakeBuild(buildExec, ".", buildDir, installDir)
	if err := build.configure(); err != nil {
		return err
	}
	if err := build.install(); err != nil {
		return err
	}

	windows := windowsTarget(systems)
	if err := preparePackage(execCtx, installDir, windows); err != nil {
		return err
	}
	if err := writeManifest(installDir, registryVersion, systems); err != nil {
		return err
	}
	if err := validatePackage(execCtx, installDir, windows); err != nil {
		return err
	}

	name := archiveName(systems, registryVersion)
	switch archiveMode {
	case "tar":
		if err := createArchive(execCtx, installDir, resultDir, name); err != nil {
			return err
		}
	default:
		if err := createRegistryPackage(execCtx, installDir, resultDir); err != nil {
			return err
		}
	}

	archivePath := filepath.Join(resultDir, name)
	if !isFile(archivePath) {
		return fmt.Errorf("the final registry package is missing: %s", archivePath)
	}
	if err := inspectArchive(archivePath, normalizeBinary(toolName, windows), manifestName); err != nil {
		return err
	}
	if err := writeChecksum(archivePath); err != nil {
		return err
	}

	logPath := filepath.Join(resultDir, "build-"+systems[0]+".log.xz")
	if err := transcript.compressTo(logPath); err != nil {
		colWarn.Printf("Warning! Failed to write the build log: %v\n", err)
	}

	if err := uploadArtifacts(ctx, cfg, archivePath, archivePath+".b3"); err != nil {
		return err
	}

	colArrow.Print("-> ")
	colSuccess.Printf("Package ready: %s\n", archivePath)
	return nil
}
