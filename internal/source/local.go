package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local lists resume documents straight out of a folder on disk.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) List(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", l.dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		docs = append(docs, Document{
			Name: entry.Name(),
			Path: filepath.Join(l.dir, entry.Name()),
		})
	}
	return docs, nil
}
