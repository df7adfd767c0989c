package backup

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// ArchiveBackupper writes the store into a tar.gz archive under a dedicated
// archive directory. With an encryptor configured the archive is additionally
// age-encrypted and gets a .age suffix.
type ArchiveBackupper struct {
	archiveDir string
	clock      xgp.Clock
	encryptor  xgp.Encryptor // nil for plaintext archives
}

func NewArchiveBackupper(archiveDir string, clock xgp.Clock, encryptor xgp.Encryptor) *ArchiveBackupper {
	return &ArchiveBackupper{
		archiveDir: archiveDir,
		clock:      clock,
		encryptor:  encryptor,
	}
}

func (b *ArchiveBackupper) Backup(storeDir string) (string, error) {
	if err := os.MkdirAll(b.archiveDir, 0755); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}

	name := filepath.Base(storeDir) + "-" + b.clock.Now().UTC().Format(timestampFormat) + ".tar.gz"
	if b.encryptor != nil {
		name += ".age"
	}
	dest := filepath.Join(b.archiveDir, name)
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("archive already exists: %s", dest)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating archive: %w", err)
	}

	if b.encryptor == nil {
		err = writeArchive(f, storeDir)
	} else {
		err = b.writeEncrypted(f, storeDir)
	}
	if err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("writing archive %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("finalizing archive %s: %w", dest, err)
	}
	return dest, nil
}

// writeEncrypted streams the tar.gz through the encryptor into w. A pipe
// connects the archive writer goroutine to the encryptor's reader side.
func (b *ArchiveBackupper) writeEncrypted(w io.Writer, storeDir string) error {
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(writeArchive(pw, storeDir))
	}()

	if err := b.encryptor.Encrypt(pr, w); err != nil {
		pr.CloseWithError(err)
		return err
	}
	return nil
}

// writeArchive writes a gzip-compressed tar of the store directory to w.
// Entry names are relative to the store's parent, so extraction recreates
// the store directory itself.
func writeArchive(w io.Writer, storeDir string) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	root := filepath.Dir(storeDir)
	err := filepath.WalkDir(storeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return fmt.Errorf("refusing to archive non-regular file: %s", path)
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
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
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalizing tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finalizing gzip: %w", err)
	}
	return nil
}

var _ xgp.Backupper = (*ArchiveBackupper)(nil)
