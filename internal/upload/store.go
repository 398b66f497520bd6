// Package upload stores submitted images on disk and hands back the public
// paths the rest of the system records. Removal is best-effort: rows are
// authoritative, files are cleaned up when possible.
package upload

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vanthang0312/recipe-app/internal/errors"
)

// MaxImageSize is the largest accepted upload in bytes.
const MaxImageSize = 5 << 20 // 5MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store is the file collaborator for recipe and profile images.
type Store interface {
	SaveImage(file *multipart.FileHeader, prefix string) (string, error)
	Remove(publicPath string)
}

// DiskStore writes images under a single uploads directory and serves them
// from the /uploads URL prefix.
type DiskStore struct {
	dir string
}

// Ensure DiskStore implements Store
var _ Store = (*DiskStore)(nil)

// NewDiskStore creates the store, making sure the directory exists.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "profile"), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// SaveImage validates and persists one uploaded image, returning its public
// path. prefix groups files ("recipe", "profile/avatar", ...) and becomes
// part of the generated name.
func (s *DiskStore) SaveImage(file *multipart.FileHeader, prefix string) (string, error) {
	if file == nil {
		return "", errors.ErrImageRequired
	}
	if file.Size > MaxImageSize {
		return "", errors.ErrUploadRejected
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", errors.ErrUploadRejected
	}

	name := fmt.Sprintf("%s-%s%s", path.Base(prefix), uuid.New().String(), ext)
	rel := name
	if dir := path.Dir(prefix); dir != "." {
		rel = path.Join(dir, name)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/uploads/" + rel, nil
}

// Remove deletes a previously stored image by its public path. Failure is
// logged and swallowed: row deletion already happened and wins.
func (s *DiskStore) Remove(publicPath string) {
	rel, ok := strings.CutPrefix(publicPath, "/uploads/")
	if !ok || rel == "" {
		return
	}
	full := filepath.Join(s.dir, filepath.FromSlash(path.Clean(rel)))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		log.Printf("upload: remove %s: %v", publicPath, err)
	}
}
