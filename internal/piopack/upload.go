package piopack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// uploadArtifacts pushes the finished archive and its checksum sidecar to
// the R2 mirror bucket. The stage is skipped entirely when no mirror is
// configured; once configured, any upload failure is fatal.
func uploadArtifacts(ctx context.Context, cfg *Config, paths ...string) error {
	if !hasR2Credentials(cfg) {
		colArrow.Print("-> ")
		colInfo.Println("No mirror configured, skipping upload")
		return nil
	}

	r2, err := NewR2Client(cfg)
	if err != nil {
		return err
	}

	for _, path := range paths {
		key := "tools/" + filepath.Base(path)
		colArrow.Print("-> ")
		colSuccess.Printf("Uploading %s to the mirror\n", filepath.Base(path))

		var bar *progressbar.ProgressBar
		if term.IsTerminal(int(os.Stdout.Fd())) {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			bar = progressbar.DefaultBytes(info.Size(), filepath.Base(path))
		}

		var err error
		if bar != nil {
			err = r2.UploadLocalFile(ctx, key, path, bar)
			_ = bar.Finish()
		} else {
			err = r2.UploadLocalFile(ctx, key, path, nil)
		}
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", path, err)
		}
	}
	return nil
}
