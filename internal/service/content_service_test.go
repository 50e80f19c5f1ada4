package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eng_assess_backend/internal/config"
	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestThumbnailFitsBounds(t *testing.T) {
	thumb, err := Thumbnail(bytes.NewReader(pngBytes(t, 1920, 1080)))
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %s, want jpeg", format)
	}
	if cfg.Width != util.ThumbnailWidth || cfg.Height != util.ThumbnailHeight {
		t.Errorf("thumbnail = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestUploadImageToLocalStorage(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: dir})
	svc := NewContentService(storage, t.TempDir())

	got, err := svc.Upload(context.Background(), fileHeader(t, "diagram.png", pngBytes(t, 800, 600)))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if got.Type != model.ResourceArticle || got.MimeType != "image/png" {
		t.Errorf("result = %+v", got)
	}
	if !strings.HasPrefix(got.URL, "/uploads/resources/images/") || !strings.HasPrefix(got.Thumbnail, "/uploads/resources/thumbnails/") {
		t.Errorf("urls = %q, %q", got.URL, got.Thumbnail)
	}

	stored := filepath.Join(dir, strings.TrimPrefix(got.URL, "/uploads/"))
	if _, err := os.Stat(stored); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestUploadRejectsUnknownTypes(t *testing.T) {
	storage := NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()})
	svc := NewContentService(storage, t.TempDir())

	tests := []struct {
		name string
		data []byte
	}{
		{"script.sh", []byte("#!/bin/sh\necho hi\n")},
		{"fake.png", []byte("plain text pretending to be an image")},
	}
	for _, tt := range tests {
		_, err := svc.Upload(context.Background(), fileHeader(t, tt.name, tt.data))
		if !errors.Is(err, util.ErrInvalidFileType) {
			t.Errorf("%s: err = %v, want ErrInvalidFileType", tt.name, err)
		}
	}
}
