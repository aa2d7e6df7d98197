package ports

// FileSystem abstracts the file operations the pipeline needs: reading
// source images, writing clips and debug artifacts, and scanning batch
// directories.
type FileSystem interface {
	// ReadFile returns the entire contents of the file at path.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path, creating the file and any missing
	// parent directories.
	WriteFile(path string, data []byte) error

	// MkdirAll creates the directory at path along with any missing
	// parents.
	MkdirAll(path string) error

	// Exists reports whether path names an existing file or directory.
	Exists(path string) (bool, error)

	// Remove deletes the file or empty directory at path.
	Remove(path string) error

	// ListDir returns the entry names of the directory at path in sorted
	// order.
	ListDir(path string) ([]string, error)

	// FileSize returns the size in bytes of the file at path.
	FileSize(path string) (int64, error)
}
