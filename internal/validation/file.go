package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// PhotoConstraints defines validation rules for goal photo uploads
var PhotoConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	},
	MaxSize: 5 << 20, // 5MB
}

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// ValidateFile validates an upload against a constraint set. The MIME type
// is detected from the file content, not the Content-Type header.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) error {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return &Error{Field: "photo", Message: fmt.Sprintf("file too large (max %d MB)", maxMB)}
	}

	file, err := header.Open()
	if err != nil {
		return &Error{Field: "photo", Message: "could not read file"}
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType reads at most 512 bytes
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return &Error{Field: "photo", Message: "could not read file"}
	}

	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, 0)
	}

	detectedType := http.DetectContentType(buffer[:n])
	if !constraints.AllowedMimeTypes[detectedType] {
		return &Error{Field: "photo", Message: "invalid file type (detected: " + detectedType + ")"}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return &Error{Field: "photo", Message: "invalid file extension: " + ext}
	}

	return nil
}
