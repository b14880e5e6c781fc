// Package photos stores uploaded member photos on local disk.
package photos

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrBadExtension = errors.New("file extension not allowed")
	ErrTooLarge     = errors.New("file exceeds maximum upload size")
)

type Store struct {
	dir      string
	maxBytes int64
	allowed  map[string]bool
}

func NewStore(dir string, maxBytes int64, allowedExts []string) *Store {
	allowed := make(map[string]bool, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(ext)] = true
	}
	return &Store{dir: dir, maxBytes: maxBytes, allowed: allowed}
}

// Save validates and persists an uploaded file, returning the stored
// filename. Names are random so uploads can never collide or traverse
// out of the upload directory.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if ext == "" || !s.allowed[ext] {
		return "", ErrBadExtension
	}
	if header.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + "." + ext
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	// The declared size is not trusted; cap the copy as well.
	n, err := io.Copy(dst, io.LimitReader(file, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if n > s.maxBytes {
		os.Remove(path)
		return "", ErrTooLarge
	}

	return name, nil
}
