package piopack

import (
	"errors"
	"fmt"
	"path/filepath"
)

// auxiliary directories every finished package must carry
var requiredFolders = []string{"addons", "cfg", "platforms"}

// validatePackage asserts the assembled tree is structurally complete and
// that the packaged binary actually executes, dynamic dependencies
// included. Every violation is fatal.
func validatePackage(execCtx *Executor, installDir string, windows bool) error {
	colArrow.Print("-> ")
	colSuccess.Println("Validating package structure")

	binary := filepath.Join(installDir, normalizeBinary(toolName, windows))
	if !isFile(binary) {
		return fmt.Errorf("missing %s binary in the package folder", toolName)
	}

	for _, folder := range requiredFolders {
		if !isDir(filepath.Join(installDir, folder)) {
			return fmt.Errorf("%s folder is missing", folder)
		}
	}

	if !isFile(filepath.Join(installDir, manifestName)) {
		return errors.New("missing registry manifest file")
	}

	res := execCtx.Run(binary, "--version")
	return validateExecResult(res, "Failed to validate final viable binary")
}
