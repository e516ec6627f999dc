package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path the disk store's files are served under
const PublicPrefix = "/uploads/"

// DiskStore writes files under root/<kind>/<name>
type DiskStore struct {
	root string
}

// NewDiskStore creates root and the per-kind folders
func NewDiskStore(root string) (*DiskStore, error) {
	for _, kind := range []Kind{KindPhoto, KindAudio, KindVideo} {
		if err := os.MkdirAll(filepath.Join(root, string(kind)), os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &DiskStore{root: root}, nil
}

// Root is the directory served at PublicPrefix
func (s *DiskStore) Root() string {
	return s.root
}

func (s *DiskStore) Save(_ context.Context, obj Object, r io.Reader) (string, error) {
	filePath := filepath.Join(s.root, string(obj.Kind), obj.Name)
	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file on server: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return PublicPrefix + string(obj.Kind) + "/" + obj.Name, nil
}

func (s *DiskStore) Owns(ref string) bool {
	return strings.HasPrefix(ref, PublicPrefix)
}

// Remove deletes the file behind ref. A missing file is not an error.
func (s *DiskStore) Remove(_ context.Context, ref string) error {
	rel, err := s.relative(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (s *DiskStore) relative(ref string) (string, error) {
	if !s.Owns(ref) {
		return "", fmt.Errorf("reference %q is not a local upload", ref)
	}
	rel := path.Clean(strings.TrimPrefix(ref, PublicPrefix))
	kind, name, ok := strings.Cut(rel, "/")
	if !ok || name == "" || strings.Contains(name, "/") || name == ".." {
		return "", fmt.Errorf("reference %q is not a local upload", ref)
	}
	switch Kind(kind) {
	case KindPhoto, KindAudio, KindVideo:
		return rel, nil
	}
	return "", fmt.Errorf("reference %q is not a local upload", ref)
}
