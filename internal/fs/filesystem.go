package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// OSFilesystemManager is the real filesystem implementation of FilesystemManager.
// It performs actual filesystem operations using the os package.
type OSFilesystemManager struct{}

// NewOSFilesystemManager creates a new filesystem manager that operates on the real filesystem.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Resolve validates a raw path and returns a Path object.
func (m *OSFilesystemManager) Resolve(rawPath string) (*xgp.Path, error) {
	// Convert to absolute path
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	// Stat the path
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	// Check for special file types we don't support
	mode := info.Mode()
	if mode&os.ModeDevice != 0 {
		return nil, fmt.Errorf("device files not supported: %s", absPath)
	}
	if mode&os.ModeNamedPipe != 0 {
		return nil, fmt.Errorf("named pipes not supported: %s", absPath)
	}
	if mode&os.ModeSocket != 0 {
		return nil, fmt.Errorf("sockets not supported: %s", absPath)
	}

	return xgp.NewPath(absPath, info.IsDir(), info), nil
}

// ListDir returns the immediate children of a directory path, in
// lexical order.
func (m *OSFilesystemManager) ListDir(path *xgp.Path) ([]*xgp.Path, error) {
	if !path.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path.String())
	}

	entries, err := os.ReadDir(path.String())
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var paths []*xgp.Path
	for _, entry := range entries {
		if !entry.IsDir() && !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		fullPath := filepath.Join(path.String(), entry.Name())
		paths = append(paths, xgp.NewPath(fullPath, entry.IsDir(), info))
	}

	return paths, nil
}

// Compile-time check that OSFilesystemManager implements the FilesystemManager interface
var _ xgp.FilesystemManager = (*OSFilesystemManager)(nil)
