package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"scholarship-portal-api/models"
)

func renderApp(photoPath *string) *models.Application {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return &models.Application{
		TrackingID: "APP-CAFE0001",
		ApplicantDetails: models.FieldList{
			{Key: "applicant_name", Value: "John Doe"},
			{Key: "dob", Value: "03-05-1990"},
			{Key: "father_occupation", Value: ""},
		},
		Documents: models.DocumentList{
			{Name: "Educational Marksheet", Path: "mem/educational_marksheet/1"},
		},
		PhotoPath: photoPath,
		Status:    models.StatusSubmitted,
		CreateAt:  &now,
	}
}

func readZipEntries(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("artifact is not a zip package: %v", err)
	}

	entries := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		entries[f.Name] = content
	}
	return entries
}

func TestBuildSubmissionDocumentWithoutPortrait(t *testing.T) {
	svc := NewDocumentService(newFakeStore())

	data, err := svc.BuildSubmissionDocument(renderApp(nil))
	if err != nil {
		t.Fatalf("BuildSubmissionDocument() error: %v", err)
	}

	entries := readZipEntries(t, data)
	for _, required := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/_rels/document.xml.rels"} {
		if _, ok := entries[required]; !ok {
			t.Errorf("missing package part %s", required)
		}
	}
	for name := range entries {
		if strings.HasPrefix(name, "word/media/") {
			t.Errorf("unexpected media entry %s without a portrait", name)
		}
	}

	doc := string(entries["word/document.xml"])
	if !strings.Contains(doc, "Tracking ID: APP-CAFE0001") {
		t.Error("document body must carry the tracking id")
	}
	if !strings.Contains(doc, "Applicant Name") || !strings.Contains(doc, "John Doe") {
		t.Error("detail table must list humanized keys with their values")
	}
	if !strings.Contains(doc, "N/A") {
		t.Error("empty detail values must render as N/A")
	}
	if !strings.Contains(doc, "Educational Marksheet") {
		t.Error("document list must appear in the artifact")
	}
	if strings.Contains(doc, "w:drawing") {
		t.Error("no drawing expected without a portrait")
	}
}

func TestBuildSubmissionDocumentWithPortrait(t *testing.T) {
	store := newFakeStore()
	path, err := store.Save("passport_photo", "me.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	svc := NewDocumentService(store)

	data, err := svc.BuildSubmissionDocument(renderApp(&path))
	if err != nil {
		t.Fatalf("BuildSubmissionDocument() error: %v", err)
	}

	entries := readZipEntries(t, data)
	media, ok := entries["word/media/image1.png"]
	if !ok {
		t.Fatal("portrait media entry missing")
	}
	if !bytes.Equal(media, pngHeader) {
		t.Error("portrait payload altered in package")
	}

	if !strings.Contains(string(entries["word/_rels/document.xml.rels"]), "media/image1.png") {
		t.Error("document rels must reference the portrait")
	}
	if !strings.Contains(string(entries["word/document.xml"]), "w:drawing") {
		t.Error("document body must embed the portrait drawing")
	}
	if !strings.Contains(string(entries["[Content_Types].xml"]), "image/png") {
		t.Error("content types must declare the image extension")
	}
}

func TestBuildSubmissionDocumentUnreadablePortrait(t *testing.T) {
	store := newFakeStore()
	store.readErr = errors.New("storage offline")
	svc := NewDocumentService(store)

	path := "mem/passport_photo/1"
	if _, err := svc.BuildSubmissionDocument(renderApp(&path)); err == nil {
		t.Fatal("an unreadable portrait must fail the render step")
	}
}

func TestBuildSubmissionDocumentNonImagePortrait(t *testing.T) {
	store := newFakeStore()
	path, err := store.Save("passport_photo", "me.png", strings.NewReader("%PDF-1.4 not an image"))
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	svc := NewDocumentService(store)

	data, err := svc.BuildSubmissionDocument(renderApp(&path))
	if err != nil {
		t.Fatalf("BuildSubmissionDocument() error: %v", err)
	}

	entries := readZipEntries(t, data)
	for name := range entries {
		if strings.HasPrefix(name, "word/media/") {
			t.Errorf("non-image payload must not be embedded, found %s", name)
		}
	}
}
