package wgs

import (
	"fmt"
	"io"
)

// FlagCloudSynced is the container flag bit that marks a cloud-sync
// association. It must be set exactly when CloudID is non-empty.
const FlagCloudSynced uint32 = 4

// Container is a single catalog entry in the containers.index file.
//
// The serialized form carries the name twice. The two fields are kept
// physically distinct here, with equality enforced at decode time, so that
// malformed input is detected instead of silently collapsed.
type Container struct {
	Name       string
	NameRepeat string
	CloudID    string // empty when not cloud-synced
	Seq        uint8  // observed as 1 in every known store
	Flags      uint32
	ID         ContainerID // also names the on-disk container directory
	MTime      FileTime
	Size       uint64 // byte size of the container's primary payload
}

// NewContainer builds a well-formed entry: both name fields set, and the
// cloud flag bit derived from whether cloudID is present.
func NewContainer(name, cloudID string, seq uint8, id ContainerID, mtime FileTime, size uint64) *Container {
	flags := uint32(1)
	if cloudID != "" {
		flags |= FlagCloudSynced
	}
	return &Container{
		Name:       name,
		NameRepeat: name,
		CloudID:    cloudID,
		Seq:        seq,
		Flags:      flags,
		ID:         id,
		MTime:      mtime,
		Size:       size,
	}
}

// ReadContainer decodes a single catalog entry from r.
func ReadContainer(r io.Reader) (*Container, error) {
	name, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("container name: %w", err)
	}
	nameRepeat, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("container name (repeat): %w", err)
	}
	if name != nameRepeat {
		return nil, fmt.Errorf("container name fields differ: %q != %q: %w", name, nameRepeat, ErrStructuralMismatch)
	}

	cloudID, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("container %q cloud id: %w", name, err)
	}
	seq, err := readU8(r)
	if err != nil {
		return nil, fmt.Errorf("container %q seq: %w", name, err)
	}
	flags, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("container %q flags: %w", name, err)
	}
	if synced := flags&FlagCloudSynced != 0; synced != (cloudID != "") {
		return nil, fmt.Errorf("container %q: cloud flag %#x disagrees with cloud id %q: %w",
			name, flags, cloudID, ErrStructuralMismatch)
	}

	id, err := readContainerID(r)
	if err != nil {
		return nil, fmt.Errorf("container %q: %w", name, err)
	}
	mtime, err := readFileTime(r)
	if err != nil {
		return nil, fmt.Errorf("container %q mtime: %w", name, err)
	}
	reserved, err := readU64(r)
	if err != nil {
		return nil, fmt.Errorf("container %q reserved field: %w", name, err)
	}
	if reserved != 0 {
		return nil, fmt.Errorf("container %q: reserved field is %#x, want 0: %w", name, reserved, ErrStructuralMismatch)
	}
	size, err := readU64(r)
	if err != nil {
		return nil, fmt.Errorf("container %q size: %w", name, err)
	}

	return &Container{
		Name:       name,
		NameRepeat: nameRepeat,
		CloudID:    cloudID,
		Seq:        seq,
		Flags:      flags,
		ID:         id,
		MTime:      mtime,
		Size:       size,
	}, nil
}

// Encode writes the entry to w. It is the exact structural inverse of
// ReadContainer for any value that round-trips through it.
func (c *Container) Encode(w io.Writer) error {
	if err := writeString(w, c.Name); err != nil {
		return fmt.Errorf("container name: %w", err)
	}
	if err := writeString(w, c.NameRepeat); err != nil {
		return fmt.Errorf("container name (repeat): %w", err)
	}
	if err := writeString(w, c.CloudID); err != nil {
		return fmt.Errorf("container cloud id: %w", err)
	}
	if err := writeU8(w, c.Seq); err != nil {
		return fmt.Errorf("container seq: %w", err)
	}
	if err := writeU32(w, c.Flags); err != nil {
		return fmt.Errorf("container flags: %w", err)
	}
	if err := c.ID.encodeTo(w); err != nil {
		return fmt.Errorf("container id: %w", err)
	}
	if err := c.MTime.encodeTo(w); err != nil {
		return fmt.Errorf("container mtime: %w", err)
	}
	if err := writeU64(w, 0); err != nil {
		return fmt.Errorf("container reserved field: %w", err)
	}
	if err := writeU64(w, c.Size); err != nil {
		return fmt.Errorf("container size: %w", err)
	}
	return nil
}
