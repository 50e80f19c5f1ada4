package service

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"eng_assess_backend/internal/config"
	"eng_assess_backend/internal/util"
)

func TestObjectKeyLayout(t *testing.T) {
	at := time.Date(2026, 4, 9, 8, 0, 0, 0, time.UTC)
	key := ObjectKey(ObjectVideo, ".mp4", at)

	pattern := regexp.MustCompile(`^resources/videos/2026/04/[0-9a-f-]{36}\.mp4$`)
	if !pattern.MatchString(key) {
		t.Errorf("key = %q", key)
	}
	if ObjectKey(ObjectVideo, ".mp4", at) == key {
		t.Errorf("keys should be unique")
	}
}

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: dir})
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }

	url, err := svc.Save(context.Background(), ObjectDocument, ".pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/resources/documents/2026/01/") {
		t.Errorf("url = %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil || string(data) != "%PDF-1.4" {
		t.Errorf("stored = %q, err = %v", data, err)
	}

	src := filepath.Join(t.TempDir(), "frame.jpg")
	if err := os.WriteFile(src, []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}
	url, err = svc.SaveFile(context.Background(), ObjectThumbnail, ".jpg", src, "image/jpeg")
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/resources/thumbnails/") {
		t.Errorf("url = %q", url)
	}
}

func TestStorageFallsBackToLocal(t *testing.T) {
	svc := NewStorageService(&config.StorageConfig{Type: util.StorageMinio, MinioEndpoint: "http://bad endpoint", LocalPath: t.TempDir()})
	if svc.Backend != util.StorageLocal {
		t.Errorf("backend = %q, want local", svc.Backend)
	}
}
