package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalUploadStoreRoundTrip(t *testing.T) {
	store := &LocalUploadStore{Root: t.TempDir()}

	path, err := store.Save("passport_photo", "me.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if filepath.Dir(path) != filepath.Clean(store.Root) {
		t.Errorf("stored path %q not under root %q", path, store.Root)
	}
	if !strings.Contains(filepath.Base(path), "passport_photo-") {
		t.Errorf("stored name %q should carry the field name", filepath.Base(path))
	}

	data, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Error("round-tripped content differs")
	}
}

func TestLocalUploadStoreUniqueNames(t *testing.T) {
	store := &LocalUploadStore{Root: t.TempDir()}

	first, err := store.Save("educational_marksheet", "marks.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	second, err := store.Save("educational_marksheet", "marks.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if first == second {
		t.Errorf("two uploads of the same field collided on %q", first)
	}
}

func TestLocalUploadStoreRejectsBadType(t *testing.T) {
	store := &LocalUploadStore{Root: t.TempDir()}

	_, err := store.Save("educational_marksheet", "malware.exe", strings.NewReader("MZ"))
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError for disallowed extension, got %v", err)
	}

	entries, readErr := os.ReadDir(store.Root)
	if readErr == nil && len(entries) != 0 {
		t.Errorf("rejected upload must not leave files behind, found %d", len(entries))
	}
}

func TestLocalUploadStoreEnforcesSizeCap(t *testing.T) {
	store := &LocalUploadStore{Root: t.TempDir()}

	oversized := bytes.NewReader(make([]byte, maxUploadSize+1))
	_, err := store.Save("educational_marksheet", "big.pdf", oversized)
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError for oversized upload, got %v", err)
	}

	entries, readErr := os.ReadDir(store.Root)
	if readErr == nil && len(entries) != 0 {
		t.Errorf("oversized upload must not leave files behind, found %d", len(entries))
	}
}
