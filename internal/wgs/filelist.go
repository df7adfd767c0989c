package wgs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// fileListVersion is the only supported container.<seq> format version.
	fileListVersion = 4

	// fileNameWidth is the fixed width, in UTF-16 code units, of a content
	// file's display name.
	fileNameWidth = 64

	// copyChunkSize bounds peak memory while streaming a content blob from
	// its source file.
	copyChunkSize = 1 << 20
)

// ContainerFile is one entry of a container manifest. The payload is not
// stored inline: it lives in a sibling file named by the identifier's
// storage name. Either Data holds the payload in memory, or SourcePath
// points at an external file to be streamed in bounded chunks on write.
type ContainerFile struct {
	Name       string
	ID         ContainerID
	Data       []byte
	SourcePath string
}

// ContainerFileList is the decoded container.<seq> manifest. Seq comes from
// the manifest file's own name suffix, not from the binary payload.
type ContainerFileList struct {
	Seq   uint8
	Files []*ContainerFile
}

// ManifestFilename returns the manifest's on-disk name, container.<seq>.
func (l *ContainerFileList) ManifestFilename() string {
	return fmt.Sprintf("container.%d", l.Seq)
}

// DecodeFileList decodes a manifest from r. dir is the container directory
// holding the referenced content blobs; every referenced blob must exist
// there or decoding fails with ErrMissingContentBlob. Blob payloads are read
// fully into memory, which is acceptable for console save payloads.
func DecodeFileList(r io.Reader, dir string, seq uint8) (*ContainerFileList, error) {
	version, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("manifest version: %w", err)
	}
	if version != fileListVersion {
		return nil, fmt.Errorf("manifest version %d, want %d: %w", version, fileListVersion, ErrUnsupportedVersion)
	}

	count, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("manifest entry count: %w", err)
	}

	list := &ContainerFileList{Seq: seq, Files: make([]*ContainerFile, 0, min(count, maxEntryPrealloc))}
	var reserved [16]byte
	for i := uint32(0); i < count; i++ {
		name, err := readFixedString(r, fileNameWidth)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d name: %w", i+1, err)
		}
		// 16 bytes of unconfirmed purpose. Opaque on read, zero on write.
		if _, err := io.ReadFull(r, reserved[:]); err != nil {
			return nil, fmt.Errorf("manifest entry %q reserved field: %w", name, err)
		}
		id, err := readContainerID(r)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %q: %w", name, err)
		}

		blobPath := filepath.Join(dir, id.StorageName())
		data, err := os.ReadFile(blobPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("manifest entry %q references %s: %w", name, blobPath, ErrMissingContentBlob)
			}
			return nil, fmt.Errorf("manifest entry %q: reading %s: %w", name, blobPath, err)
		}
		list.Files = append(list.Files, &ContainerFile{Name: name, ID: id, Data: data})
	}
	return list, nil
}

// ReadFileListFile reads the manifest at path, deriving the sequence number
// from the filename suffix (container.<seq>) and resolving content blobs in
// the same directory.
func ReadFileListFile(path string) (*ContainerFileList, error) {
	seq, err := seqFromFilename(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	list, err := DecodeFileList(bufio.NewReader(f), filepath.Dir(path), seq)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return list, nil
}

func seqFromFilename(path string) (uint8, error) {
	ext := filepath.Ext(filepath.Base(path))
	n, err := strconv.ParseUint(strings.TrimPrefix(ext, "."), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("manifest filename %q has no numeric sequence suffix: %w", filepath.Base(path), err)
	}
	return uint8(n), nil
}

// Write writes the manifest and every referenced content blob into dir.
// Entries with a SourcePath are streamed in copyChunkSize chunks so large
// payloads are never held in memory; entries with Data (including empty
// data) are written directly.
func (l *ContainerFileList) Write(dir string) error {
	path := filepath.Join(dir, l.ManifestFilename())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := l.encodeTo(w); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	for _, cf := range l.Files {
		if err := cf.writeBlob(dir); err != nil {
			return err
		}
	}
	return nil
}

func (l *ContainerFileList) encodeTo(w io.Writer) error {
	if err := writeU32(w, fileListVersion); err != nil {
		return fmt.Errorf("manifest version: %w", err)
	}
	if err := writeU32(w, uint32(len(l.Files))); err != nil {
		return fmt.Errorf("manifest entry count: %w", err)
	}
	var reserved [16]byte
	for _, cf := range l.Files {
		if err := writeFixedString(w, cf.Name, fileNameWidth); err != nil {
			return fmt.Errorf("manifest entry %q name: %w", cf.Name, err)
		}
		if _, err := w.Write(reserved[:]); err != nil {
			return fmt.Errorf("manifest entry %q reserved field: %w", cf.Name, err)
		}
		if err := cf.ID.encodeTo(w); err != nil {
			return fmt.Errorf("manifest entry %q id: %w", cf.Name, err)
		}
	}
	return nil
}

// writeBlob writes the entry's payload to its sibling content file.
func (cf *ContainerFile) writeBlob(dir string) error {
	blobPath := filepath.Join(dir, cf.ID.StorageName())
	dst, err := os.Create(blobPath)
	if err != nil {
		return fmt.Errorf("creating content blob %s: %w", blobPath, err)
	}

	if cf.SourcePath != "" {
		src, err := os.Open(cf.SourcePath)
		if err != nil {
			dst.Close()
			return fmt.Errorf("opening blob source for %q: %w", cf.Name, err)
		}
		_, err = io.CopyBuffer(dst, src, make([]byte, copyChunkSize))
		src.Close()
		if err != nil {
			dst.Close()
			return fmt.Errorf("streaming blob %s: %w", blobPath, err)
		}
	} else if len(cf.Data) > 0 {
		if _, err := dst.Write(cf.Data); err != nil {
			dst.Close()
			return fmt.Errorf("writing blob %s: %w", blobPath, err)
		}
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing blob %s: %w", blobPath, err)
	}
	return nil
}

// Size reports the payload size in bytes, consulting the source file when
// the payload is not in memory.
func (cf *ContainerFile) Size() (uint64, error) {
	if cf.SourcePath == "" {
		return uint64(len(cf.Data)), nil
	}
	info, err := os.Stat(cf.SourcePath)
	if err != nil {
		return 0, fmt.Errorf("stat blob source for %q: %w", cf.Name, err)
	}
	return uint64(info.Size()), nil
}
