package xgp

// FilesystemManager provides an interface for source-side filesystem
// access. It abstracts path resolution and directory listing so the import
// planning logic is testable without touching the real filesystem; all
// store-side reads and writes go through the wgs codecs directly.
type FilesystemManager interface {
	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and validates
	// it's a regular file or directory (not a device, pipe, or socket).
	Resolve(rawPath string) (*Path, error)

	// ListDir returns the immediate children of a directory as resolved
	// Paths, in directory-listing order.
	ListDir(path *Path) ([]*Path, error)
}
