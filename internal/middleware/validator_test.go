package middleware

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"user@test.com", false},
		{"홍길동 <hong@test.com>", false},
		{"", true},
		{"   ", true},
		{"not-an-address", true},
		{"missing@domain@double.com", true},
	}
	for _, tt := range tests {
		err := ValidateEmail(tt.addr)
		if tt.wantErr {
			assert.Error(t, err, tt.addr)
		} else {
			assert.NoError(t, err, tt.addr)
		}
	}
}

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{Filename: name, Size: size, Header: textproto.MIMEHeader{}}
	if contentType != "" {
		h.Header.Set("Content-Type", contentType)
	}
	return h
}

func TestValidateUpload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  *multipart.FileHeader
		wantErr bool
	}{
		{"pdf ok", fileHeader("이력서.pdf", "application/pdf", 1024), false},
		{"uppercase extension", fileHeader("RESUME.PDF", "application/pdf", 1024), false},
		{"octet-stream ok", fileHeader("resume.pdf", "application/octet-stream", 1024), false},
		{"no content type ok", fileHeader("resume.pdf", "", 1024), false},
		{"nil header", nil, true},
		{"wrong extension", fileHeader("resume.docx", "application/pdf", 1024), true},
		{"no extension", fileHeader("resume", "application/pdf", 1024), true},
		{"too large", fileHeader("resume.pdf", "application/pdf", MaxUploadBytes + 1), true},
		{"wrong content type", fileHeader("resume.pdf", "text/html", 1024), true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateUpload(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
