// Package proc detects running game processes. Importing while the game is
// running would race its own writes to the store, so the import path refuses
// to start when a watched process is found.
package proc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// ExecGuard lists running processes with the platform's process tool and
// reports which of the watched executables are running.
type ExecGuard struct {
	watched []string

	// list is swapped in tests.
	list func() ([]string, error)
}

// NewExecGuard creates a guard watching for the given executable names.
func NewExecGuard(watched []string) *ExecGuard {
	return &ExecGuard{watched: watched, list: listProcesses}
}

func (g *ExecGuard) Running() ([]string, error) {
	if len(g.watched) == 0 {
		return nil, nil
	}
	all, err := g.list()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	return matchProcesses(all, g.watched), nil
}

// matchProcesses returns the watched names found in all, case-insensitively
// and at most once each, sorted.
func matchProcesses(all, watched []string) []string {
	running := make(map[string]bool, len(all))
	for _, name := range all {
		running[strings.ToLower(name)] = true
	}

	var matches []string
	seen := make(map[string]bool)
	for _, w := range watched {
		key := strings.ToLower(w)
		if running[key] && !seen[key] {
			seen[key] = true
			matches = append(matches, w)
		}
	}
	sort.Strings(matches)
	return matches
}

var _ xgp.ProcessGuard = (*ExecGuard)(nil)
