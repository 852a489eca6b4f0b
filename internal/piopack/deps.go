package piopack

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var lddLinePattern = regexp.MustCompile(`^.+(?:dll|DLL) => (.*) \((?:.*)\)$`)

// posixToWin converts an MSYS drive path like /c/msys64/usr/bin/msys-2.0.dll
// to the native c:/msys64/usr/bin/msys-2.0.dll form by splicing the drive
// letter. Forward slashes are left alone; Windows path APIs accept them.
func posixToWin(path string) string {
	if len(path) < 3 || path[0] != '/' {
		return path
	}
	converted := string(path[1]) + ":" + path[2:]
	debugf("Converted `%s` to `%s`\n", path, converted)
	return converted
}

// extractDynamicLibraries lists the shared libraries the binary loads at
// runtime, keeping only those whose native location contains one of the
// allowed substrings, in encounter order. A failing ldd is treated as "no
// dynamic dependencies to bundle", not as an error: a statically linked
// binary makes ldd exit non-zero.
func extractDynamicLibraries(execCtx *Executor, binaryPath string, allowedPaths []string) ([]string, error) {
	if _, err := os.Stat(binaryPath); err != nil {
		return nil, fmt.Errorf("%s binary is not found", binaryPath)
	}

	res := execCtx.Run("ldd", binaryPath)
	if res.ExitCode != 0 {
		return nil, nil
	}

	var libs []string
	for _, line := range strings.Split(res.Out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		match := lddLinePattern.FindStringSubmatch(line)
		if match == nil {
			colWarn.Printf("Warning! No library was found in `%s`\n", line)
			continue
		}

		libPath := posixToWin(match[1])
		if _, err := os.Stat(libPath); err != nil {
			// The linker reported a library that isn't there: the build
			// environment and the linker's view have diverged.
			return nil, fmt.Errorf("dynamic library `%s` doesn't exist", libPath)
		}

		for _, allowed := range allowedPaths {
			if strings.Contains(libPath, allowed) {
				libs = append(libs, libPath)
				break
			}
		}
	}
	return libs, nil
}
