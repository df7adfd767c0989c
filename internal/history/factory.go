package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/config"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// NewLedgerFromConfig creates a Ledger implementation based on the history config type.
func NewLedgerFromConfig(cfg config.HistoryConfig) (xgp.Ledger, error) {
	switch cfg.Type {
	case "sqlite", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite history")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating history data directory: %w", err)
		}
		return NewSQLiteLedger(filepath.Join(cfg.DataDir, "imports.db"))
	case "memory":
		return NewMemoryLedger(), nil
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}
