package storage

import (
	"os"
	"path/filepath"
)

// FileStore saves generated audio to a local directory so downloads can
// be re-fetched until the cleanup job removes them.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "outputs"
	}
	return &FileStore{dir: dir}
}

// Save writes data to {dir}/{filename} and returns the path
func (fs *FileStore) Save(data []byte, filename string) (string, error) {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(fs.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
