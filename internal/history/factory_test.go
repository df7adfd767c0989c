package history

import (
	"testing"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/config"
)

func TestNewLedgerFromConfig(t *testing.T) {
	t.Run("memory ledger", func(t *testing.T) {
		got, err := NewLedgerFromConfig(config.HistoryConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewLedgerFromConfig() error = %v", err)
		}
		defer got.Close()

		if _, ok := got.(*MemoryLedger); !ok {
			t.Errorf("NewLedgerFromConfig() = %T, want *MemoryLedger", got)
		}
	})

	t.Run("sqlite ledger", func(t *testing.T) {
		got, err := NewLedgerFromConfig(config.HistoryConfig{Type: "sqlite", DataDir: t.TempDir()})
		if err != nil {
			t.Fatalf("NewLedgerFromConfig() error = %v", err)
		}
		defer got.Close()

		if _, ok := got.(*SQLiteLedger); !ok {
			t.Errorf("NewLedgerFromConfig() = %T, want *SQLiteLedger", got)
		}
	})

	t.Run("sqlite is the default", func(t *testing.T) {
		got, err := NewLedgerFromConfig(config.HistoryConfig{DataDir: t.TempDir()})
		if err != nil {
			t.Fatalf("NewLedgerFromConfig() error = %v", err)
		}
		defer got.Close()

		if _, ok := got.(*SQLiteLedger); !ok {
			t.Errorf("NewLedgerFromConfig() = %T, want *SQLiteLedger", got)
		}
	})

	t.Run("sqlite without data_dir", func(t *testing.T) {
		if _, err := NewLedgerFromConfig(config.HistoryConfig{Type: "sqlite"}); err == nil {
			t.Error("NewLedgerFromConfig() expected error for missing data_dir, got nil")
		}
	})

	t.Run("unknown ledger type", func(t *testing.T) {
		if _, err := NewLedgerFromConfig(config.HistoryConfig{Type: "carbonite"}); err == nil {
			t.Error("NewLedgerFromConfig() expected error for unknown type, got nil")
		}
	})
}
