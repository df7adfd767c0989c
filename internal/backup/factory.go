package backup

import (
	"fmt"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/config"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// NewBackupperFromConfig creates a Backupper based on the backup config type.
func NewBackupperFromConfig(cfg config.BackupConfig, clock xgp.Clock, encryptor xgp.Encryptor) (xgp.Backupper, error) {
	switch cfg.Type {
	case "copy", "":
		return NewCopyBackupper(clock), nil
	case "archive":
		if cfg.ArchiveDir == "" {
			return nil, fmt.Errorf("archive_dir required for archive backups")
		}
		if !cfg.Encrypt {
			encryptor = nil
		}
		return NewArchiveBackupper(cfg.ArchiveDir, clock, encryptor), nil
	default:
		return nil, fmt.Errorf("unknown backup type: %q", cfg.Type)
	}
}
