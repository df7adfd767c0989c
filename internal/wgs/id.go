package wgs

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ContainerID is the 128-bit identifier naming a container directory or a
// content blob. Records embed its canonical 16-byte form; on disk the
// directory and blob filenames use the storage-name encoding instead, which
// reorders bytes relative to the canonical form.
type ContainerID uuid.UUID

// NewContainerID returns a random ContainerID.
func NewContainerID() ContainerID {
	return ContainerID(uuid.New())
}

// ParseContainerID parses the canonical textual UUID form.
func ParseContainerID(s string) (ContainerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ContainerID{}, fmt.Errorf("parsing container id %q: %w", s, err)
	}
	return ContainerID(u), nil
}

// String returns the canonical lowercase UUID form.
func (id ContainerID) String() string {
	return uuid.UUID(id).String()
}

// StorageName returns the filesystem name for this identifier: the
// mixed-endian GUID byte layout rendered as uppercase hex. The first three
// groups of the canonical form are byte-swapped, the last two are not. This
// must match the console runtime exactly; do not inline the conversion.
func (id ContainerID) StorageName() string {
	return strings.ToUpper(hex.EncodeToString(swapGUIDBytes(id)))
}

// ParseStorageName is the inverse of StorageName.
func ParseStorageName(name string) (ContainerID, error) {
	raw, err := hex.DecodeString(strings.ToLower(name))
	if err != nil {
		return ContainerID{}, fmt.Errorf("parsing storage name %q: %w", name, err)
	}
	if len(raw) != 16 {
		return ContainerID{}, fmt.Errorf("parsing storage name %q: got %d bytes, want 16", name, len(raw))
	}
	var id ContainerID
	copy(id[:], raw)
	return ContainerID(swapGUIDBytes(id)), nil
}

// swapGUIDBytes converts between the canonical (big-endian) and the
// mixed-endian GUID byte orders. The transformation is its own inverse.
func swapGUIDBytes(id ContainerID) []byte {
	b := make([]byte, 16)
	b[0], b[1], b[2], b[3] = id[3], id[2], id[1], id[0]
	b[4], b[5] = id[5], id[4]
	b[6], b[7] = id[7], id[6]
	copy(b[8:], id[8:])
	return b
}

func readContainerID(r io.Reader) (ContainerID, error) {
	var id ContainerID
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return ContainerID{}, fmt.Errorf("reading container id: %w", err)
	}
	return id, nil
}

func (id ContainerID) encodeTo(w io.Writer) error {
	_, err := w.Write(id[:])
	return err
}
