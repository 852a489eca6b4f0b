package piopack

import (
	"errors"
	"strings"
)

// cmakeBuild drives the out-of-source Ninja build of the analyzer and its
// install step: unconfigured -> configured -> installed. There are no
// retries; a transient toolchain failure aborts the run and the operator
// re-runs the whole pipeline.
type cmakeBuild struct {
	execCtx    *Executor
	sourceDir  string
	buildDir   string
	installDir string
	configured bool
}

func newCmakeBuild(execCtx *Executor, sourceDir, buildDir, installDir string) *cmakeBuild {
	return &cmakeBuild{
		execCtx:    execCtx,
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
	}
}

// configure generates the build files with the fixed option set: static
// linking, release optimization, the match compiler, and the install
// prefix pointed at the installation tree.
func (b *cmakeBuild) configure() error {
	colArrow.Print("-> ")
	colSuccess.Println("Configuring CMake")

	args := []string{
		"-B", b.buildDir,
		"-S", b.sourceDir,
		"-G", "Ninja",
		"-DBUILD_SHARED_LIBS=NO",
		"-DCMAKE_BUILD_TYPE=Release",
		"-DUSE_MATCHCOMPILER=ON",
		"-DFILESDIR=" + b.installDir,
		"-DCMAKE_INSTALL_PREFIX:PATH=" + b.installDir,
	}
	res := b.execCtx.Run("cmake", args...)
	if err := validateExecResult(res, "CMake failed to run with args "+strings.Join(args, " ")); err != nil {
		return err
	}
	b.configured = true
	return nil
}

// install runs the generated build's install target, populating the
// installation tree.
func (b *cmakeBuild) install() error {
	if !b.configured {
		return errors.New("install requested before configure")
	}

	colArrow.Print("-> ")
	colSuccess.Println("Building and installing project")

	res := b.execCtx.Run("cmake", "--build", b.buildDir, "--target", "install")
	return validateExecResult(res, "CMake failed to build the install target")
}
