package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB per file

var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// UploadStore persists uploaded files and hands their content back to the
// document renderer. Paths returned by Save are opaque storage locators.
type UploadStore interface {
	Save(fieldName, originalName string, r io.Reader) (string, error)
	Read(path string) ([]byte, error)
}

// LocalUploadStore keeps uploads on the local disk under a root directory.
type LocalUploadStore struct {
	Root string
}

// NewLocalUploadStore builds a store rooted at UPLOAD_PATH (default ./uploads).
func NewLocalUploadStore() *LocalUploadStore {
	return &LocalUploadStore{}
}

// root resolves the storage directory. An empty Root reads UPLOAD_PATH per
// call, because the store can be built at package init before .env is loaded.
func (s *LocalUploadStore) root() string {
	if s.Root != "" {
		return s.Root
	}
	if root := os.Getenv("UPLOAD_PATH"); root != "" {
		return root
	}
	return "./uploads"
}

// Save streams one uploaded file to disk. Only JPEG, PNG and PDF files up to
// 5MB are accepted; the stored name carries a uuid so concurrent uploads of
// the same form field never collide.
func (s *LocalUploadStore) Save(fieldName, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedUploadExtensions[ext] {
		return "", NewValidationError("Invalid file type. Only JPEG, PNG, and PDF are allowed.")
	}

	root := s.root()
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	storedName := fmt.Sprintf("%s-%s%s", fieldName, uuid.New().String(), ext)
	fullPath := filepath.Join(root, storedName)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	written, err := io.Copy(out, io.LimitReader(r, maxUploadSize+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > maxUploadSize {
		err = NewValidationError("File size exceeds 5MB limit")
	}
	if err != nil {
		os.Remove(fullPath)
		return "", err
	}

	return fullPath, nil
}

// Read loads a stored file back into memory.
func (s *LocalUploadStore) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", path, err)
	}
	return data, nil
}
