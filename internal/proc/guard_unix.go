//go:build !windows

package proc

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// listProcesses returns the command names of all running processes. Useful
// when the game runs under Proton or in CI; the store itself normally lives
// on a Windows machine.
func listProcesses() ([]string, error) {
	out, err := exec.Command("ps", "-A", "-o", "comm=").Output()
	if err != nil {
		return nil, err
	}
	return parsePSOutput(string(out)), nil
}

func parsePSOutput(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, filepath.Base(line))
	}
	return names
}
