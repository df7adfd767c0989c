package xgp

// Backupper captures a pre-mutation copy of a store directory tree. The
// returned path names the backup artifact (a directory or an archive file).
// A backup is the only recovery mechanism for a failed index rewrite, so
// the service takes one before any mutation.
type Backupper interface {
	Backup(storeDir string) (string, error)
}
