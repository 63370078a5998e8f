package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/blockdoc"
)

// Ensure FileStore implements blockdoc.OutputStore at compile time.
var _ blockdoc.OutputStore = (*FileStore)(nil)

// FileStore implements blockdoc.OutputStore with atomic update semantics.
// Outputs are saved to a temporary directory, then moved on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

// NewFileStoreAt creates a FileStore publishing to dir.
func NewFileStoreAt(dir string) *FileStore {
	dir = filepath.Clean(dir)
	return NewFileStore(filepath.Dir(dir), filepath.Base(dir))
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes data to name inside the temporary directory.
func (s *FileStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !filepath.IsLocal(name) {
		return blockdoc.Errorf(blockdoc.EINVALID, "path traversal in output name %q", name)
	}

	fullPath := filepath.Join(s.tempDir(), name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Commit replaces the output directory with the temporary directory.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the temporary directory.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
