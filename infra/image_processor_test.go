package infra

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"already inside bounds", 100, 100, 100, 100},
		{"exactly at bounds", 800, 600, 800, 600},
		{"landscape scaled by width", 1600, 900, 800, 450},
		{"portrait scaled by height", 900, 1800, 300, 600},
		{"both dimensions over", 1600, 1200, 800, 600},
		{"extreme aspect ratio floors at one", 100000, 10, 800, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := FitWithin(tt.width, tt.height, MaxImageWidth, MaxImageHeight)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("FitWithin(%d, %d) = %dx%d, want %dx%d",
					tt.width, tt.height, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestUploadFilename(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	got := UploadFilename(42, now, 3)
	want := "hero-42-1700000000000-3.webp"
	if got != want {
		t.Errorf("UploadFilename = %q, want %q", got, want)
	}
}

func uploadHeader(filename string, size int64, contentType string) *multipart.FileHeader {
	header := &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return header
}

func TestValidateUpload(t *testing.T) {
	processor := &ImageProcessor{MaxFileSize: 5 * 1024 * 1024}

	if err := processor.ValidateUpload(uploadHeader("photo.jpg", 1024, "image/jpeg")); err != nil {
		t.Errorf("valid jpeg rejected: %v", err)
	}
	if err := processor.ValidateUpload(uploadHeader("PHOTO.PNG", 1024, "image/png")); err != nil {
		t.Errorf("extension check should be case-insensitive: %v", err)
	}
	if err := processor.ValidateUpload(uploadHeader("photo.webp", 1024, "")); err != nil {
		t.Errorf("missing content type should pass on extension alone: %v", err)
	}

	err := processor.ValidateUpload(uploadHeader("big.jpg", 6*1024*1024, "image/jpeg"))
	if err == nil || !strings.Contains(err.Error(), "byte limit") {
		t.Errorf("oversized file accepted: %v", err)
	}

	if err := processor.ValidateUpload(uploadHeader("movie.gif", 1024, "image/gif")); err == nil {
		t.Error("gif should be rejected")
	}
	if err := processor.ValidateUpload(uploadHeader("notes.txt", 10, "text/plain")); err == nil {
		t.Error("text file should be rejected")
	}
	if err := processor.ValidateUpload(uploadHeader("tricky.jpg", 10, "application/pdf")); err == nil {
		t.Error("non-image content type should be rejected")
	}
}
