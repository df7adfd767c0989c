package wgs

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestIntegerReads(t *testing.T) {
	t.Run("little-endian decoding", func(t *testing.T) {
		r := bytes.NewReader([]byte{
			0x2a,
			0x78, 0x56, 0x34, 0x12,
			0xf0, 0xde, 0xbc, 0x9a, 0x78, 0x56, 0x34, 0x12,
		})

		v8, err := readU8(r)
		if err != nil {
			t.Fatalf("readU8() error = %v", err)
		}
		if v8 != 0x2a {
			t.Errorf("readU8() = %#x, want 0x2a", v8)
		}

		v32, err := readU32(r)
		if err != nil {
			t.Fatalf("readU32() error = %v", err)
		}
		if v32 != 0x12345678 {
			t.Errorf("readU32() = %#x, want 0x12345678", v32)
		}

		v64, err := readU64(r)
		if err != nil {
			t.Fatalf("readU64() error = %v", err)
		}
		if v64 != 0x123456789abcdef0 {
			t.Errorf("readU64() = %#x, want 0x123456789abcdef0", v64)
		}
	})

	t.Run("clean EOF yields zero", func(t *testing.T) {
		r := bytes.NewReader(nil)

		if v, err := readU8(r); err != nil || v != 0 {
			t.Errorf("readU8() = %d, %v, want 0, nil", v, err)
		}
		if v, err := readU32(r); err != nil || v != 0 {
			t.Errorf("readU32() = %d, %v, want 0, nil", v, err)
		}
		if v, err := readU64(r); err != nil || v != 0 {
			t.Errorf("readU64() = %d, %v, want 0, nil", v, err)
		}
	})

	t.Run("truncated integer fails", func(t *testing.T) {
		if _, err := readU32(bytes.NewReader([]byte{0x01, 0x02})); err == nil {
			t.Error("readU32() expected error for 2 of 4 bytes")
		}
		if _, err := readU64(bytes.NewReader([]byte{0x01})); err == nil {
			t.Error("readU64() expected error for 1 of 8 bytes")
		}
	})
}

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"ascii", "Save1-Level"},
		{"non-ascii", "Spielstand-Ö"},
		{"astral plane", "save-\U0001F3AE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeString(&buf, tt.in); err != nil {
				t.Fatalf("writeString() error = %v", err)
			}
			got, err := readString(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("readString() error = %v", err)
			}
			if got != tt.in {
				t.Errorf("round trip = %q, want %q", got, tt.in)
			}
		})
	}
}

func TestReadString(t *testing.T) {
	t.Run("prefix counts code units not bytes", func(t *testing.T) {
		// "Hi" = count 2, then 4 bytes of UTF-16LE.
		raw := []byte{0x02, 0x00, 0x00, 0x00, 'H', 0x00, 'i', 0x00}
		got, err := readString(bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("readString() error = %v", err)
		}
		if got != "Hi" {
			t.Errorf("readString() = %q, want %q", got, "Hi")
		}
	})

	t.Run("truncated payload is a hard failure", func(t *testing.T) {
		raw := []byte{0x04, 0x00, 0x00, 0x00, 'H', 0x00} // claims 4 units, has 1
		if _, err := readString(bytes.NewReader(raw)); err == nil {
			t.Error("readString() expected error for truncated payload")
		}
	})

	t.Run("absurd length prefix is rejected before allocating", func(t *testing.T) {
		// A torn write can leave 0xFFFFFFFF in a length prefix. The prefix
		// must be rejected as corrupt, not honored as an allocation size.
		raw := []byte{0xff, 0xff, 0xff, 0xff}
		_, err := readString(bytes.NewReader(raw))
		if !errors.Is(err, ErrStructuralMismatch) {
			t.Errorf("readString() error = %v, want ErrStructuralMismatch", err)
		}
	})
}

func TestFixedString(t *testing.T) {
	t.Run("pads with nulls and strips them on read", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeFixedString(&buf, "Data", 64); err != nil {
			t.Fatalf("writeFixedString() error = %v", err)
		}
		if buf.Len() != 128 {
			t.Fatalf("encoded length = %d, want 128", buf.Len())
		}
		got, err := readFixedString(bytes.NewReader(buf.Bytes()), 64)
		if err != nil {
			t.Fatalf("readFixedString() error = %v", err)
		}
		if got != "Data" {
			t.Errorf("round trip = %q, want %q", got, "Data")
		}
	})

	t.Run("truncates overlong values to the field width", func(t *testing.T) {
		var buf bytes.Buffer
		long := strings.Repeat("x", 80)
		if err := writeFixedString(&buf, long, 64); err != nil {
			t.Fatalf("writeFixedString() error = %v", err)
		}
		if buf.Len() != 128 {
			t.Fatalf("encoded length = %d, want 128", buf.Len())
		}
		got, err := readFixedString(bytes.NewReader(buf.Bytes()), 64)
		if err != nil {
			t.Fatalf("readFixedString() error = %v", err)
		}
		if got != long[:64] {
			t.Errorf("round trip = %q, want %q", got, long[:64])
		}
	})

	t.Run("short input is a hard failure", func(t *testing.T) {
		if _, err := readFixedString(bytes.NewReader(make([]byte, 10)), 64); err == nil {
			t.Error("readFixedString() expected error for short input")
		}
	})
}
