package piopack

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"lukechampine.com/blake3"
)

// hashFile returns the BLAKE3-256 hex digest of a file. A system b3sum is
// preferred when present; otherwise the internal implementation is used.
func hashFile(path string) (string, error) {
	if _, err := exec.LookPath("b3sum"); err == nil {
		cmd := exec.Command("b3sum", path)
		var out bytes.Buffer
		cmd.Stdout = &out
		if err := cmd.Run(); err == nil {
			fields := strings.Fields(out.String())
			if len(fields) > 0 {
				return fields[0], nil
			}
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// writeChecksum drops a <archive>.b3 sidecar so mirrors can verify the
// artifact they serve.
func writeChecksum(archivePath string) error {
	sum, err := hashFile(archivePath)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", archivePath, err)
	}
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(archivePath))
	return os.WriteFile(archivePath+".b3", []byte(line), 0o644)
}
