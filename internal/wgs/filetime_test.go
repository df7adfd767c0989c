package wgs

import (
	"testing"
	"time"
)

func TestFileTimeConversion(t *testing.T) {
	tests := []struct {
		name  string
		ticks FileTime
		want  time.Time
	}{
		{
			name:  "unix epoch",
			ticks: fileTimeEpochOffset,
			want:  time.Unix(0, 0).UTC(),
		},
		{
			name:  "known moment",
			ticks: fileTimeEpochOffset + 17_030_016_000_000_000, // 2023-12-20T00:00:00Z
			want:  time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "before 1970",
			ticks: fileTimeEpochOffset - 10_000_000,
			want:  time.Unix(-1, 0).UTC(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ticks.Time(); !got.Equal(tt.want) {
				t.Errorf("Time() = %v, want %v", got, tt.want)
			}
			if got := FileTimeOf(tt.want); got != tt.ticks {
				t.Errorf("FileTimeOf(%v) = %d, want %d", tt.want, got, tt.ticks)
			}
		})
	}
}

func TestFileTimeTruncatesTo100ns(t *testing.T) {
	moment := time.Date(2024, 3, 1, 12, 0, 0, 123_456_789, time.UTC)
	ft := FileTimeOf(moment)

	want := time.Date(2024, 3, 1, 12, 0, 0, 123_456_700, time.UTC)
	if got := ft.Time(); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v (sub-100ns precision dropped)", got, want)
	}

	// A second conversion is stable.
	if again := FileTimeOf(ft.Time()); again != ft {
		t.Errorf("FileTimeOf(Time()) = %d, want %d", again, ft)
	}
}
