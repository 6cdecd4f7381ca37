package repositoryImp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"agrimanage/pkg/export/repository"
)

type fsArchive struct{ root string }

// NewFS writes exports below root, creating directories as needed.
func NewFS(root string) repository.ArchiveRepository { return &fsArchive{root: root} }

func (a *fsArchive) Driver() string { return "fs" }

func (a *fsArchive) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("archive key %q escapes root", key)
	}
	p := filepath.Join(a.root, clean)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return p, nil
}
