package testutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Content     []byte
	Permissions fs.FileMode
	ModTime     time.Time
	IsDirectory bool
}

// MockFilesystemManager is an in-memory filesystem for testing.
type MockFilesystemManager struct {
	files map[string]*MockFile
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFilesystemManager) AddFile(path string, content []byte) {
	m.AddFileModTime(path, content, time.Now())
}

// AddFileModTime adds a file with an explicit modification time.
func (m *MockFilesystemManager) AddFileModTime(path string, content []byte, modTime time.Time) {
	m.files[path] = &MockFile{
		Content:     content,
		Permissions: 0644,
		ModTime:     modTime,
		IsDirectory: false,
	}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilesystemManager) AddDirectory(path string) {
	m.AddDirectoryModTime(path, time.Now())
}

// AddDirectoryModTime adds a directory with an explicit modification time.
func (m *MockFilesystemManager) AddDirectoryModTime(path string, modTime time.Time) {
	m.files[path] = &MockFile{
		Permissions: 0755,
		ModTime:     modTime,
		IsDirectory: true,
	}
}

func (m *MockFilesystemManager) Resolve(rawPath string) (*xgp.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, err
	}

	file, ok := m.files[absPath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", absPath)
	}

	return xgp.NewPath(absPath, file.IsDirectory, m.infoFor(absPath, file)), nil
}

func (m *MockFilesystemManager) ListDir(path *xgp.Path) ([]*xgp.Path, error) {
	dir, ok := m.files[path.String()]
	if !ok || !dir.IsDirectory {
		return nil, fmt.Errorf("not a directory: %s", path.String())
	}

	prefix := path.String() + string(filepath.Separator)
	var names []string
	for p := range m.files {
		if strings.HasPrefix(p, prefix) && !strings.Contains(p[len(prefix):], string(filepath.Separator)) {
			names = append(names, p)
		}
	}
	sort.Strings(names)

	children := make([]*xgp.Path, 0, len(names))
	for _, p := range names {
		f := m.files[p]
		children = append(children, xgp.NewPath(p, f.IsDirectory, m.infoFor(p, f)))
	}
	return children, nil
}

func (m *MockFilesystemManager) infoFor(path string, f *MockFile) fs.FileInfo {
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(f.Content)),
		mode:    f.Permissions,
		modTime: f.ModTime,
		isDir:   f.IsDirectory,
	}
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// Compile-time check
var _ xgp.FilesystemManager = (*MockFilesystemManager)(nil)
