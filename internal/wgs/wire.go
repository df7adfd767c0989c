package wgs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
)

// Primitive readers and writers for the container-store wire format.
// All integers are little-endian. Strings are UTF-16LE, either prefixed
// with a u32 count of code units or fixed-width and null-padded.
//
// Integer reads at a clean end-of-stream yield zero instead of failing.
// The format pads some files with trailing zero bytes, and the original
// reader relied on this. A partially read integer is still an error, and
// truncation of structurally required fields is caught downstream by the
// version and reserved-field checks. String reads have no such leniency.

func readU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading u8: %w", err)
	}
	return buf[0], nil
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading u32: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading u64: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// maxStringUnits bounds the u32 length prefix of a counted string. Every
// counted field in the format is a short name or a braced GUID string; a
// larger prefix means the stream is corrupt, and the prefix must not size
// an allocation.
const maxStringUnits = 4096

// readString reads a u32 code-unit count followed by that many UTF-16LE
// code units. Insufficient bytes after the prefix is a hard failure, as is
// a prefix beyond maxStringUnits.
func readString(r io.Reader) (string, error) {
	count, err := readU32(r)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", nil
	}
	if count > maxStringUnits {
		return "", fmt.Errorf("string length prefix %d exceeds %d units: %w", count, maxStringUnits, ErrStructuralMismatch)
	}
	return readUTF16(r, int(count))
}

// readFixedString reads exactly width UTF-16LE code units and strips
// trailing null characters.
func readFixedString(r io.Reader, width int) (string, error) {
	s, err := readUTF16(r, width)
	if err != nil {
		return "", err
	}
	for len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}
	return s, nil
}

func readUTF16(r io.Reader, units int) (string, error) {
	buf := make([]byte, units*2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("reading utf-16 string (%d units): %w", units, err)
	}
	codes := make([]uint16, units)
	for i := range codes {
		codes[i] = binary.LittleEndian.Uint16(buf[i*2:])
	}
	return string(utf16.Decode(codes)), nil
}

func writeU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// writeString writes a u32 code-unit count followed by the UTF-16LE
// encoding of s.
func writeString(w io.Writer, s string) error {
	codes := utf16.Encode([]rune(s))
	if err := writeU32(w, uint32(len(codes))); err != nil {
		return err
	}
	return writeUTF16(w, codes)
}

// writeFixedString writes s as exactly width UTF-16LE code units,
// null-padded, or truncated when s encodes to more than width units.
func writeFixedString(w io.Writer, s string, width int) error {
	codes := utf16.Encode([]rune(s))
	if len(codes) > width {
		codes = codes[:width]
	}
	if err := writeUTF16(w, codes); err != nil {
		return err
	}
	if pad := width - len(codes); pad > 0 {
		_, err := w.Write(make([]byte, pad*2))
		return err
	}
	return nil
}

func writeUTF16(w io.Writer, codes []uint16) error {
	buf := make([]byte, len(codes)*2)
	for i, c := range codes {
		binary.LittleEndian.PutUint16(buf[i*2:], c)
	}
	_, err := w.Write(buf)
	return err
}
