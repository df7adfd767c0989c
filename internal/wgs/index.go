package wgs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// IndexFilename is the canonical name of the top-level catalog file.
	IndexFilename = "containers.index"

	// indexVersion is the only supported containers.index format version.
	indexVersion = 14

	// maxEntryPrealloc caps slice capacity taken from a decoded entry
	// count. The count is untrusted until the entries themselves decode.
	maxEntryPrealloc = 128
)

// ContainerIndex is the decoded containers.index: the top-level catalog of
// all containers in a store. It exclusively owns its Containers slice.
//
// The serialized entry count is derived state: Encode always recomputes it
// from len(Containers), never from a stored field, so the count and the
// entry sequence cannot drift apart.
type ContainerIndex struct {
	Flag1       uint32
	PackageName string
	MTime       FileTime
	Flag2       uint32
	IndexID     string
	Reserved    uint64 // observed as zero; preserved verbatim, not validated
	Containers  []*Container
}

// DecodeIndex decodes a containers.index from r. The first entry decode
// failure aborts the whole decode and is propagated.
func DecodeIndex(r io.Reader) (*ContainerIndex, error) {
	version, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("index version: %w", err)
	}
	if version != indexVersion {
		return nil, fmt.Errorf("index version %d, want %d: %w", version, indexVersion, ErrUnsupportedVersion)
	}

	count, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("index entry count: %w", err)
	}
	idx := &ContainerIndex{}
	if idx.Flag1, err = readU32(r); err != nil {
		return nil, fmt.Errorf("index flag1: %w", err)
	}
	if idx.PackageName, err = readString(r); err != nil {
		return nil, fmt.Errorf("index package name: %w", err)
	}
	if idx.MTime, err = readFileTime(r); err != nil {
		return nil, fmt.Errorf("index mtime: %w", err)
	}
	if idx.Flag2, err = readU32(r); err != nil {
		return nil, fmt.Errorf("index flag2: %w", err)
	}
	if idx.IndexID, err = readString(r); err != nil {
		return nil, fmt.Errorf("index id: %w", err)
	}
	if idx.Reserved, err = readU64(r); err != nil {
		return nil, fmt.Errorf("index reserved field: %w", err)
	}

	idx.Containers = make([]*Container, 0, min(count, maxEntryPrealloc))
	for i := uint32(0); i < count; i++ {
		c, err := ReadContainer(r)
		if err != nil {
			return nil, fmt.Errorf("index entry %d of %d: %w", i+1, count, err)
		}
		idx.Containers = append(idx.Containers, c)
	}
	return idx, nil
}

// ReadIndexFile reads and decodes the containers.index at path.
func ReadIndexFile(path string) (*ContainerIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	defer f.Close()

	idx, err := DecodeIndex(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return idx, nil
}

// Encode writes the index to w with the entry count recomputed from the
// live Containers slice.
func (idx *ContainerIndex) Encode(w io.Writer) error {
	if err := writeU32(w, indexVersion); err != nil {
		return fmt.Errorf("index version: %w", err)
	}
	if err := writeU32(w, uint32(len(idx.Containers))); err != nil {
		return fmt.Errorf("index entry count: %w", err)
	}
	if err := writeU32(w, idx.Flag1); err != nil {
		return fmt.Errorf("index flag1: %w", err)
	}
	if err := writeString(w, idx.PackageName); err != nil {
		return fmt.Errorf("index package name: %w", err)
	}
	if err := idx.MTime.encodeTo(w); err != nil {
		return fmt.Errorf("index mtime: %w", err)
	}
	if err := writeU32(w, idx.Flag2); err != nil {
		return fmt.Errorf("index flag2: %w", err)
	}
	if err := writeString(w, idx.IndexID); err != nil {
		return fmt.Errorf("index id: %w", err)
	}
	if err := writeU64(w, idx.Reserved); err != nil {
		return fmt.Errorf("index reserved field: %w", err)
	}
	for _, c := range idx.Containers {
		if err := c.Encode(w); err != nil {
			return fmt.Errorf("index entry %q: %w", c.Name, err)
		}
	}
	return nil
}

// WriteFile rewrites containers.index inside the store directory. This is a
// whole-file rewrite with no rollback; callers are expected to have backed
// up the store beforehand.
func (idx *ContainerIndex) WriteFile(dir string) error {
	path := filepath.Join(dir, IndexFilename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := idx.Encode(w); err != nil {
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
	return nil
}
