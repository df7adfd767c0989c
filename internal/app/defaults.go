package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - XGP_CONFIG_PATH: config file location (default: ~/.config/xgpimport.toml)
//   - XGP_HOME: base directory for xgpimport data (default: ~/.local/share/xgpimport)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking XGP_CONFIG_PATH env var first,
// then falling back to the default ~/.config/xgpimport.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("XGP_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "xgpimport.toml"), nil
}

// getBaseDir returns the base directory for xgpimport data, checking XGP_HOME env var first,
// then falling back to the XDG default ~/.local/share/xgpimport.
func getBaseDir() (string, error) {
	if path := os.Getenv("XGP_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "xgpimport"), nil
}

// packagesRoot returns the Packages directory holding installed package
// data. An explicit override wins; otherwise %LOCALAPPDATA%\Packages is
// used, which only exists on Windows.
func (a *XGPApp) packagesRoot(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return filepath.Join(dir, "Packages"), nil
	}
	if runtime.GOOS == "windows" {
		return "", fmt.Errorf("LOCALAPPDATA is not set")
	}
	return "", fmt.Errorf("no packages root: pass one explicitly on %s", runtime.GOOS)
}
