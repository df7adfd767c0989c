package wgs

import "time"

// Merge folds a batch of freshly written container entries into the index.
//
// Every existing entry whose name appears in the batch is removed (matching
// is by name, not identifier: the replaced entries' directories become
// orphans on disk, a deliberate tradeoff favoring simplicity over disk
// reclamation). Surviving entries keep their original relative order and are
// followed by the batch entries in batch order. If the incoming index
// pathologically carried duplicate names, only the first occurrence of each
// survives; within the batch the last occurrence of a name wins. After Merge
// no two live entries share a name.
//
// The index mtime is set from now. Merge itself performs no I/O; the caller
// re-encodes the index with WriteFile afterwards.
func (idx *ContainerIndex) Merge(batch []*Container, now time.Time) {
	incoming := make(map[string]struct{}, len(batch))
	for _, c := range batch {
		incoming[c.Name] = struct{}{}
	}

	kept := make([]*Container, 0, len(idx.Containers))
	seen := make(map[string]struct{}, len(idx.Containers))
	for _, c := range idx.Containers {
		if _, replaced := incoming[c.Name]; replaced {
			continue
		}
		if _, dup := seen[c.Name]; dup {
			continue
		}
		seen[c.Name] = struct{}{}
		kept = append(kept, c)
	}

	// De-dupe the batch itself, last occurrence winning.
	lastByName := make(map[string]int, len(batch))
	for i, c := range batch {
		lastByName[c.Name] = i
	}
	for i, c := range batch {
		if lastByName[c.Name] == i {
			kept = append(kept, c)
		}
	}

	idx.Containers = kept
	idx.MTime = FileTimeOf(now)
}
