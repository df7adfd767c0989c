package app

import (
	"fmt"
	"os"
	"time"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/backup"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/config"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/encryption"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/fs"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/history"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/proc"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/wgs"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// XGPApp is the application layer between the CLI and ImportService.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and manages the ledger lifecycle on Close.
type XGPApp struct {
	cfg       *config.Config
	fsmgr     xgp.FilesystemManager
	encryptor xgp.Encryptor
	backupper xgp.Backupper
	ledger    xgp.Ledger
	logger    xgp.Logger
	service   *xgp.ImportService
	logFile   *os.File
}

// NewXGPApp creates a fully wired XGPApp from the given config.
// operation identifies the CLI command being run (e.g. "Import", "Detect").
// The caller must call Close when done.
func NewXGPApp(cfg *config.Config, operation string) (*XGPApp, error) {
	fsmgr := fs.NewOSFilesystemManager()
	clock := xgp.RealClock{}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	backupper, err := backup.NewBackupperFromConfig(cfg.Backup, clock, enc)
	if err != nil {
		return nil, fmt.Errorf("creating backupper: %w", err)
	}

	ledger, err := history.NewLedgerFromConfig(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("creating import ledger: %w", err)
	}

	opID := operation + "-" + time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		ledger.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	guard := proc.NewExecGuard(cfg.Game.Processes)
	svc, err := xgp.NewImportService(profileFromConfig(cfg.Game), fsmgr, backupper, guard, ledger, log, clock, xgp.UUIDGenerator{})
	if err != nil {
		ledger.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating import service: %w", err)
	}

	return &XGPApp{
		cfg:       cfg,
		fsmgr:     fsmgr,
		encryptor: enc,
		backupper: backupper,
		ledger:    ledger,
		logger:    log,
		service:   svc,
		logFile:   logFile,
	}, nil
}

// profileFromConfig converts the game section of the config into the
// service's profile type.
func profileFromConfig(cfg config.GameConfig) xgp.GameProfile {
	return xgp.GameProfile{
		Name:         cfg.Name,
		PackageID:    cfg.PackageID,
		WGSFolder:    cfg.WGSFolder,
		StorePattern: cfg.StorePattern,
		WorldFiles:   cfg.WorldFiles,
		PlayersDir:   cfg.PlayersDir,
		Processes:    cfg.Processes,
	}
}

// FindStores enumerates candidate store directories. An empty packagesRoot
// uses the platform default.
func (a *XGPApp) FindStores(packagesRoot string) ([]*xgp.StoreInfo, error) {
	root, err := a.packagesRoot(packagesRoot)
	if err != nil {
		return nil, err
	}
	return a.service.FindStores(root)
}

// ResolveStore returns the store directory to operate on. An explicit
// storeDir wins; otherwise the newest detected store is used.
func (a *XGPApp) ResolveStore(storeDir string) (string, error) {
	if storeDir != "" {
		p, err := a.fsmgr.Resolve(storeDir)
		if err != nil {
			return "", fmt.Errorf("resolving store: %w", err)
		}
		if !p.IsDir() {
			return "", fmt.Errorf("store is not a directory: %s", p.String())
		}
		return p.String(), nil
	}

	stores, err := a.FindStores("")
	if err != nil {
		return "", err
	}
	if len(stores) == 0 {
		return "", fmt.Errorf("no save store found (run the game once, or pass --store)")
	}
	if len(stores) > 1 {
		a.logger.Warn("multiple save stores found, using newest", "count", len(stores), "store", stores[0].Path)
	}
	return stores[0].Path, nil
}

// Import merges the desktop save at sourceDir into the store. An empty
// storeDir auto-detects the newest store.
func (a *XGPApp) Import(sourceDir, storeDir string, dryRun bool) (*xgp.ImportResult, error) {
	store, err := a.ResolveStore(storeDir)
	if err != nil {
		return nil, err
	}
	return a.service.Import(sourceDir, store, dryRun)
}

// Inspect returns the decoded container index of a store.
func (a *XGPApp) Inspect(storeDir string) (*wgs.ContainerIndex, error) {
	store, err := a.ResolveStore(storeDir)
	if err != nil {
		return nil, err
	}
	return a.service.Inspect(store)
}

// BackupStore snapshots a store without importing anything.
func (a *XGPApp) BackupStore(storeDir string) (string, error) {
	store, err := a.ResolveStore(storeDir)
	if err != nil {
		return "", err
	}
	dest, err := a.backupper.Backup(store)
	if err != nil {
		return "", fmt.Errorf("backing up store: %w", err)
	}
	a.logger.Info("store backed up", "store", store, "path", dest)
	return dest, nil
}

// GetHistory returns the most recent import operations.
func (a *XGPApp) GetHistory(limit int) ([]*xgp.ImportRecord, error) {
	return a.ledger.List(limit)
}

// SetupKeys generates the encryption key pair for archive backups.
func (a *XGPApp) SetupKeys(passphrase string) error {
	if a.encryptor.IsConfigured() {
		return fmt.Errorf("encryption keys already exist")
	}
	return a.encryptor.Setup(passphrase)
}

// DecryptBackup decrypts an encrypted backup archive to outPath.
func (a *XGPApp) DecryptBackup(archivePath, outPath, passphrase string) error {
	ctx, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking private key: %w", err)
	}

	in, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := ctx.Decrypt(in, out); err != nil {
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("decrypting archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("finalizing output file: %w", err)
	}
	return nil
}

// Close closes the ledger and the log file.
func (a *XGPApp) Close() error {
	var firstErr error
	if err := a.ledger.Close(); err != nil {
		firstErr = fmt.Errorf("closing import ledger: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
