package routes

import (
	"mime/multipart"
	"net/textproto"
	"testing"
)

func imageHeader(filename, contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		h.Header.Set("Content-Type", contentType)
	}
	return h
}

func TestValidateImageFile(t *testing.T) {
	cases := []struct {
		name   string
		header *multipart.FileHeader
		want   bool
	}{
		{"jpeg", imageHeader("front.jpg", "image/jpeg", 1024), true},
		{"png", imageHeader("plan.png", "image/png", 1024), true},
		{"webp", imageHeader("view.webp", "image/webp", 1024), true},
		{"nil header", nil, false},
		{"empty file", imageHeader("front.jpg", "image/jpeg", 0), false},
		{"too large", imageHeader("front.jpg", "image/jpeg", 6*1024*1024), false},
		{"wrong extension", imageHeader("notes.txt", "image/jpeg", 1024), false},
		{"wrong content type", imageHeader("script.jpg", "text/html", 1024), false},
		{"missing content type", imageHeader("front.jpg", "", 1024), false},
		{"svg rejected", imageHeader("logo.svg", "image/svg+xml", 1024), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validateImageFile(tc.header); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
