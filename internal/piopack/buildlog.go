package piopack

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ulikunitz/xz"
)

// buildLog accumulates everything the external build tools print so the
// full transcript can be archived next to the finished package.
type buildLog struct {
	buf bytes.Buffer
}

func (l *buildLog) Write(p []byte) (int, error) {
	return l.buf.Write(p)
}

// compressTo writes the captured transcript as an xz-compressed file.
func (l *buildLog) compressTo(destPath string) error {
	dest, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dest.Close()

	xzWriter, err := xz.NewWriter(dest)
	if err != nil {
		return err
	}

	if _, err := xzWriter.Write(l.buf.Bytes()); err != nil {
		xzWriter.Close()
		return fmt.Errorf("failed to compress build log: %w", err)
	}
	return xzWriter.Close()
}
