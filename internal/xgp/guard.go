package xgp

// ProcessGuard reports conflicting processes that must not be running while
// a store is mutated. Importing while the game or the gaming services are
// live corrupts the save.
type ProcessGuard interface {
	// Running returns the names of configured conflicting processes that
	// are currently running, or an empty slice when it is safe to proceed.
	Running() ([]string, error)
}

// NopGuard never reports a conflict. Use in tests and on hosts where
// process inspection is unavailable.
type NopGuard struct{}

func (NopGuard) Running() ([]string, error) { return nil, nil }
