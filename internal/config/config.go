package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for xgpimport.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Game       GameConfig       `toml:"game"`
	Backup     BackupConfig     `toml:"backup"`
	History    HistoryConfig    `toml:"history"`
	Encryption EncryptionConfig `toml:"encryption"`
}

// GameConfig describes the game whose save store is being targeted.
type GameConfig struct {
	Name string `toml:"name"`

	// PackageID is the installed package directory name under the
	// platform's Packages root.
	PackageID string `toml:"package_id"`

	// WGSFolder is the slash-separated save-store area inside the
	// package directory.
	WGSFolder string `toml:"wgs_folder"`

	// StorePattern matches valid store directory names inside the WGS folder.
	StorePattern string `toml:"store_pattern"`

	// WorldFiles are the fixed per-world save files, imported when present.
	WorldFiles []string `toml:"world_files"`

	// PlayersDir is the source subdirectory holding per-player save files.
	PlayersDir string `toml:"players_dir"`

	// Processes are executable names that must not run during an import.
	Processes []string `toml:"processes"`
}

// BackupConfig represents configuration for pre-import store backups.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type BackupConfig struct {
	Type string `toml:"type"` // "copy" (default) or "archive"

	// Archive-specific fields (only used when Type == "archive")
	ArchiveDir string `toml:"archive_dir,omitempty"`
	Encrypt    bool   `toml:"encrypt,omitempty"`
}

// HistoryConfig represents configuration for the import history ledger.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type HistoryConfig struct {
	Type    string `toml:"type"`               // "sqlite" (default) or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// EncryptionConfig holds paths to the age key pair used for archive encryption.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// NewConfig creates a new Config with Palworld defaults and standard paths
// under baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Game: GameConfig{
			Name:         "Palworld",
			PackageID:    "PocketpairInc.Palworld_ad4psfrxyesvt",
			WGSFolder:    "SystemAppData/wgs",
			StorePattern: "^[0-9A-F]{16}_[0-9A-F]{32}$",
			WorldFiles:   []string{"Level.sav", "LevelMeta.sav", "LocalData.sav", "WorldOption.sav"},
			PlayersDir:   "Players",
			Processes:    []string{"Palworld.exe", "Palworld-Win64-Shipping.exe"},
		},
		Backup: BackupConfig{
			Type:       "copy",
			ArchiveDir: filepath.Join(baseDir, "backups"),
		},
		History: HistoryConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "data"),
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  filepath.Join(baseDir, "keys", "xgpimport.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "xgpimport.key"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
