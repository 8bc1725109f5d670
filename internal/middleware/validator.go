package middleware

import (
	"fmt"
	"mime/multipart"
	"net/mail"
	"path/filepath"
	"strings"
)

// Input validation utilities for the resume endpoints

// MaxUploadBytes caps uploaded resume files at 10 MiB
const MaxUploadBytes = 10 << 20

// ValidateEmail checks a destination address for report delivery
func ValidateEmail(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return fmt.Errorf("email address cannot be empty")
	}
	if _, err := mail.ParseAddress(addr); err != nil {
		return fmt.Errorf("invalid email address: %s", addr)
	}
	return nil
}

// ValidateUpload checks an uploaded resume file before extraction: only
// PDF, within the size cap. Content is still treated as untrusted; the
// extractor absorbs malformed bytes.
func ValidateUpload(header *multipart.FileHeader) error {
	if header == nil {
		return fmt.Errorf("file is required")
	}
	if header.Size > MaxUploadBytes {
		return fmt.Errorf("file too large: %d bytes (max %d)", header.Size, MaxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		return fmt.Errorf("unsupported file type: %s (only pdf is allowed)", ext)
	}

	ct := header.Header.Get("Content-Type")
	if ct != "" && ct != "application/pdf" && ct != "application/octet-stream" {
		return fmt.Errorf("unsupported content type: %s", ct)
	}
	return nil
}
