package wgs

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func testContainer(t *testing.T, name, cloudID string) *Container {
	t.Helper()
	mtime := FileTimeOf(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	return NewContainer(name, cloudID, 1, NewContainerID(), mtime, 4096)
}

func TestContainerRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entry   *Container
		cloudID string
	}{
		{name: "local entry", entry: testContainer(t, "Save1-Level", "")},
		{name: "cloud entry", entry: testContainer(t, "Save1-LevelMeta", "wgs-cloud-4711")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.entry.Encode(&buf); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := ReadContainer(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("ReadContainer() error = %v", err)
			}
			if *got != *tt.entry {
				t.Errorf("round trip = %+v, want %+v", got, tt.entry)
			}
		})
	}
}

func TestNewContainerFlags(t *testing.T) {
	if c := testContainer(t, "a", ""); c.Flags&FlagCloudSynced != 0 {
		t.Errorf("Flags = %#x, cloud bit must be clear without a cloud id", c.Flags)
	}
	if c := testContainer(t, "a", "cloud-1"); c.Flags&FlagCloudSynced == 0 {
		t.Errorf("Flags = %#x, cloud bit must be set with a cloud id", c.Flags)
	}
}

func TestReadContainerRejectsNameMismatch(t *testing.T) {
	var buf bytes.Buffer
	writeString(&buf, "Save1-Level")
	writeString(&buf, "Save1-LevelX")

	_, err := ReadContainer(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrStructuralMismatch) {
		t.Errorf("ReadContainer() error = %v, want ErrStructuralMismatch", err)
	}
}

func TestReadContainerRejectsFlagCloudMismatch(t *testing.T) {
	tests := []struct {
		name    string
		cloudID string
		flags   uint32
	}{
		{"cloud bit without cloud id", "", 5},
		{"cloud id without cloud bit", "wgs-cloud-4711", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContainer(t, "Save1-Level", tt.cloudID)
			c.Flags = tt.flags

			var buf bytes.Buffer
			if err := c.Encode(&buf); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			_, err := ReadContainer(bytes.NewReader(buf.Bytes()))
			if !errors.Is(err, ErrStructuralMismatch) {
				t.Errorf("ReadContainer() error = %v, want ErrStructuralMismatch", err)
			}
		})
	}
}

func TestReadContainerRejectsNonZeroReserved(t *testing.T) {
	c := testContainer(t, "Save1-Level", "")
	var buf bytes.Buffer
	writeString(&buf, c.Name)
	writeString(&buf, c.NameRepeat)
	writeString(&buf, c.CloudID)
	writeU8(&buf, c.Seq)
	writeU32(&buf, c.Flags)
	c.ID.encodeTo(&buf)
	c.MTime.encodeTo(&buf)
	writeU64(&buf, 0xdead) // reserved must be zero
	writeU64(&buf, c.Size)

	_, err := ReadContainer(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrStructuralMismatch) {
		t.Errorf("ReadContainer() error = %v, want ErrStructuralMismatch", err)
	}
}

func TestReadContainerTruncated(t *testing.T) {
	c := testContainer(t, "Save1-Level", "")
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Byte 30 lands inside the repeated name field; string reads have no
	// zero-on-EOF leniency, so this must fail.
	if _, err := ReadContainer(bytes.NewReader(buf.Bytes()[:30])); err == nil {
		t.Error("ReadContainer() expected error for truncation inside a string field")
	}
}
