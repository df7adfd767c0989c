//go:build windows

package proc

import (
	"os/exec"
	"strings"
)

// listProcesses returns the image names of all running processes using
// tasklist's headerless CSV output.
func listProcesses() ([]string, error) {
	out, err := exec.Command("tasklist", "/FO", "CSV", "/NH").Output()
	if err != nil {
		return nil, err
	}
	return parseTasklistCSV(string(out)), nil
}

// parseTasklistCSV extracts the first field (image name) of each CSV row.
func parseTasklistCSV(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Rows look like: "Palworld.exe","1234","Console","1","1,024 K"
		field := strings.SplitN(line, ",", 2)[0]
		field = strings.Trim(field, `"`)
		if field != "" {
			names = append(names, field)
		}
	}
	return names
}
