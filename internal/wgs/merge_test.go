package wgs

import (
	"testing"
	"time"
)

func entryNames(idx *ContainerIndex) []string {
	names := make([]string, len(idx.Containers))
	for i, c := range idx.Containers {
		names[i] = c.Name
	}
	return names
}

func assertNames(t *testing.T, idx *ContainerIndex, want ...string) {
	t.Helper()
	got := entryNames(idx)
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entries = %v, want %v", got, want)
		}
	}
}

func TestMergeReplacesByName(t *testing.T) {
	idx := testIndex(t, "Save1-Level", "Save1-LevelMeta")
	mergedAt := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	newLevel := testContainer(t, "Save1-Level", "")
	newPlayer := testContainer(t, "Save1-Players-ABC", "")
	idx.Merge([]*Container{newLevel, newPlayer}, mergedAt)

	// Unrelated entries keep their position; replaced and new entries go to
	// the end in batch order.
	assertNames(t, idx, "Save1-LevelMeta", "Save1-Level", "Save1-Players-ABC")

	if idx.Containers[1] != newLevel {
		t.Error("Save1-Level must resolve to the new entry, not the stale one")
	}
	if idx.MTime != FileTimeOf(mergedAt) {
		t.Errorf("MTime = %v, want %v", idx.MTime, FileTimeOf(mergedAt))
	}
}

func TestMergeIdempotentByName(t *testing.T) {
	idx := testIndex(t, "Save1-Level", "Save1-LevelMeta", "Save2-Level")
	before := idx.Containers[1] // Save1-LevelMeta, untouched by the batch

	batch := []*Container{
		testContainer(t, "Save1-Level", ""),
		testContainer(t, "Save2-Level", ""),
	}
	idx.Merge(batch, time.Now())

	assertNames(t, idx, "Save1-LevelMeta", "Save1-Level", "Save2-Level")
	if idx.Containers[0] != before {
		t.Error("untouched entry must be preserved verbatim")
	}
	if idx.Containers[1] != batch[0] || idx.Containers[2] != batch[1] {
		t.Error("batch names must map exactly to the new entries")
	}
}

func TestMergeEmptyBatch(t *testing.T) {
	idx := testIndex(t, "Save1-Level", "Save1-LevelMeta")
	idx.Merge(nil, time.Now())
	assertNames(t, idx, "Save1-Level", "Save1-LevelMeta")
}

func TestMergeNeverLeavesDuplicates(t *testing.T) {
	t.Run("pathological duplicate names in the existing index", func(t *testing.T) {
		idx := testIndex(t, "Save1-Level", "Save1-Extra", "Save1-Level")
		idx.Merge([]*Container{testContainer(t, "Save1-Other", "")}, time.Now())
		assertNames(t, idx, "Save1-Level", "Save1-Extra", "Save1-Other")
	})

	t.Run("duplicate names within the batch", func(t *testing.T) {
		idx := testIndex(t)
		first := testContainer(t, "Save1-Level", "")
		second := testContainer(t, "Save1-Level", "")
		idx.Merge([]*Container{first, second}, time.Now())

		assertNames(t, idx, "Save1-Level")
		if idx.Containers[0] != second {
			t.Error("last batch occurrence of a name must win")
		}
	})
}
