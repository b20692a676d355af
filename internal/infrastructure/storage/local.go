// Package storage implements the file-store collaborator on the local
// filesystem. Uploads land under <root>/<clientID>/ with a unique,
// sanitized file name.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-]`)

type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Save writes data under the client's directory and returns the stored
// path. The original name is sanitized and prefixed with a uuid so repeated
// uploads of the same file never collide.
func (s *LocalStore) Save(_ context.Context, clientID, fileName string, data []byte) (string, error) {
	dir := filepath.Join(s.root, clientID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	safeName := unsafeChars.ReplaceAllString(fileName, "_")
	path := filepath.Join(dir, uuid.NewString()+"-"+safeName)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}
