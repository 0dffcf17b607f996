package ports

// FileSystem abstracts the file operations used around an export.
type FileSystem interface {
	// WriteFile writes data to a file, creating parent directories.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Size returns the size of a regular file in bytes.
	Size(path string) (int64, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error

	// Copy copies src to dst. It fails if dst already exists.
	Copy(src, dst string) error
}
