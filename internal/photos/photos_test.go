package photos

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func uploadedFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	file, header, err := req.FormFile("photo")
	if err != nil {
		t.Fatalf("failed to read form file: %v", err)
	}
	return file, header
}

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1024, []string{"jpg", "jpeg", "png"})

	t.Run("Accepted", func(t *testing.T) {
		file, header := uploadedFile(t, "avatar.PNG", []byte("fake image bytes"))
		defer file.Close()

		name, err := store.Save(file, header)
		if err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
		if filepath.Ext(name) != ".png" {
			t.Errorf("expected .png extension, got %q", name)
		}
		if name == "avatar.PNG" {
			t.Errorf("expected a generated name, got the original one")
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("stored file missing: %v", err)
		}
	})

	t.Run("BadExtension", func(t *testing.T) {
		file, header := uploadedFile(t, "script.sh", []byte("#!/bin/sh"))
		defer file.Close()

		_, err := store.Save(file, header)
		if !errors.Is(err, ErrBadExtension) {
			t.Errorf("expected ErrBadExtension, got %v", err)
		}
	})

	t.Run("NoExtension", func(t *testing.T) {
		file, header := uploadedFile(t, "avatar", []byte("bytes"))
		defer file.Close()

		_, err := store.Save(file, header)
		if !errors.Is(err, ErrBadExtension) {
			t.Errorf("expected ErrBadExtension, got %v", err)
		}
	})

	t.Run("TooLarge", func(t *testing.T) {
		file, header := uploadedFile(t, "big.jpg", bytes.Repeat([]byte("x"), 2048))
		defer file.Close()

		_, err := store.Save(file, header)
		if !errors.Is(err, ErrTooLarge) {
			t.Errorf("expected ErrTooLarge, got %v", err)
		}

		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if filepath.Ext(e.Name()) == ".jpg" {
				t.Errorf("rejected upload left a file behind: %s", e.Name())
			}
		}
	})
}
