package testutil

import (
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// StubGuard reports a fixed set of running processes.
type StubGuard struct {
	Procs []string
	Err   error
}

func (g *StubGuard) Running() ([]string, error) {
	return g.Procs, g.Err
}

// StubBackupper records backup calls without copying anything.
type StubBackupper struct {
	Path  string
	Err   error
	Calls []string
}

func (b *StubBackupper) Backup(storeDir string) (string, error) {
	b.Calls = append(b.Calls, storeDir)
	if b.Err != nil {
		return "", b.Err
	}
	if b.Path != "" {
		return b.Path, nil
	}
	return storeDir + ".backup", nil
}

var (
	_ xgp.ProcessGuard = (*StubGuard)(nil)
	_ xgp.Backupper    = (*StubBackupper)(nil)
)
