package screenshot

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store retains screenshots whose notification relay failed so an operator
// can recover them manually. Files get generated names; the client-declared
// filename never reaches the filesystem. The store is quota-bounded: oldest
// files are purged once the count exceeds maxRetained.
type Store struct {
	dir         string
	maxRetained int
	logger      *zap.SugaredLogger
}

// NewStore builds a retention store rooted at dir.
func NewStore(dir string, maxRetained int, logger *zap.SugaredLogger) *Store {
	return &Store{dir: dir, maxRetained: maxRetained, logger: logger}
}

// Retain writes the screenshot under a fresh uuid name and returns the path.
func (s *Store) Retain(src Source) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + "." + Extension(src)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, src.Bytes(), 0o600); err != nil {
		return "", err
	}

	s.purge()
	return path, nil
}

// purge removes the oldest retained files beyond the quota. Purge failures
// are logged and otherwise ignored; retention is best effort.
func (s *Store) purge() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Errorf("read retention dir: %v", err)
		return
	}

	type retained struct {
		name    string
		modTime int64
	}
	files := make([]retained, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, retained{name: e.Name(), modTime: info.ModTime().UnixNano()})
	}
	if len(files) <= s.maxRetained {
		return
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime != files[j].modTime {
			return files[i].modTime < files[j].modTime
		}
		return files[i].name < files[j].name
	})

	for _, f := range files[:len(files)-s.maxRetained] {
		if err := os.Remove(filepath.Join(s.dir, f.name)); err != nil {
			s.logger.Errorf("purge retained screenshot %s: %v", f.name, err)
		}
	}
}
