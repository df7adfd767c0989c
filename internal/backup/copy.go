// Package backup snapshots a save store before an import mutates it. The
// backup is the recovery path for a torn index rewrite, so it always runs
// before the first write.
package backup

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

const timestampFormat = "20060102-150405"

// CopyBackupper copies the store directory tree to a sibling directory
// named <store>.backup.<timestamp>.
type CopyBackupper struct {
	clock xgp.Clock
}

func NewCopyBackupper(clock xgp.Clock) *CopyBackupper {
	return &CopyBackupper{clock: clock}
}

func (b *CopyBackupper) Backup(storeDir string) (string, error) {
	dest := storeDir + ".backup." + b.clock.Now().UTC().Format(timestampFormat)
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("backup destination already exists: %s", dest)
	}
	if err := copyTree(storeDir, dest); err != nil {
		return "", fmt.Errorf("copying store to %s: %w", dest, err)
	}
	return dest, nil
}

// copyTree recursively copies the directory tree at src to dst. Only
// regular files and directories are copied; a store contains nothing else.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return fmt.Errorf("refusing to copy non-regular file: %s", path)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

var _ xgp.Backupper = (*CopyBackupper)(nil)
