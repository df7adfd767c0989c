package wgs

import (
	"io"
	"time"
)

// fileTimeEpochOffset is the distance between the Unix epoch (1970) and the
// Windows NT epoch (1601) in 100-nanosecond ticks.
const fileTimeEpochOffset = 116444736000000000

// FileTime is a Windows FILETIME: a count of 100-nanosecond intervals since
// January 1, 1601 UTC. It is an immutable value type and converts losslessly
// to and from time.Time at 100ns resolution.
type FileTime uint64

// FileTimeOf converts t to a FileTime, truncating sub-100ns precision.
func FileTimeOf(t time.Time) FileTime {
	return FileTime(t.UnixNano()/100 + fileTimeEpochOffset)
}

// Time converts the tick count back to a time.Time. No range validation is
// performed; values before 1970 produce times before the Unix epoch.
func (t FileTime) Time() time.Time {
	return time.Unix(0, (int64(t)-fileTimeEpochOffset)*100).UTC()
}

func (t FileTime) String() string {
	return t.Time().Format(time.RFC3339Nano)
}

func readFileTime(r io.Reader) (FileTime, error) {
	v, err := readU64(r)
	return FileTime(v), err
}

func (t FileTime) encodeTo(w io.Writer) error {
	return writeU64(w, uint64(t))
}
