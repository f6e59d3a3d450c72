package archive

import (
	"os"
	"path/filepath"
)

// FSStore persists rendered reports under a directory per ledger kind.
type FSStore struct {
	dir string
}

func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

func (s *FSStore) Save(kind Kind, fileName string, doc []byte) error {
	dir := filepath.Join(s.dir, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fileName), doc, 0o644)
}
