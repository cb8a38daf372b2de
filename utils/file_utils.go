package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Extensions accepted for applicant document uploads.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// IsAllowedExtension checks the upload allowlist against a filename.
func IsAllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// UploadBasePath returns the disk root for stored documents.
func UploadBasePath() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// CreateApplicationFolder ensures the per-application upload directory
// exists and returns its path.
func CreateApplicationFolder(applicationID int) (string, error) {
	folder := filepath.Join(UploadBasePath(), fmt.Sprintf("application_%d", applicationID))
	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return "", err
	}
	return folder, nil
}

// GenerateStoredFilename produces a collision-free on-disk name that keeps
// the original extension.
func GenerateStoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}
