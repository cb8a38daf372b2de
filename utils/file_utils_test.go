package utils

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedExtension(t *testing.T) {
	allowed := []string{"resume.pdf", "id.PNG", "photo.jpeg", "letter.docx", "scan.JPG", "old.doc"}
	for _, name := range allowed {
		assert.True(t, IsAllowedExtension(name), "expected %s to be allowed", name)
	}

	blocked := []string{"script.exe", "archive.zip", "page.html", "noextension", "double.pdf.sh"}
	for _, name := range blocked {
		assert.False(t, IsAllowedExtension(name), "expected %s to be blocked", name)
	}
}

func TestGenerateStoredFilename(t *testing.T) {
	first := GenerateStoredFilename("Passport Scan.PDF")
	second := GenerateStoredFilename("Passport Scan.PDF")

	assert.NotEqual(t, first, second)
	assert.Equal(t, ".pdf", filepath.Ext(first))
	assert.False(t, strings.Contains(first, " "))
}

func TestGenerateStoredFilenameWithoutExtension(t *testing.T) {
	name := GenerateStoredFilename("payslip")
	assert.Equal(t, "", filepath.Ext(name))
	assert.NotEmpty(t, name)
}

func TestUploadBasePathDefault(t *testing.T) {
	t.Setenv("UPLOAD_PATH", "")
	assert.Equal(t, "./uploads", UploadBasePath())

	t.Setenv("UPLOAD_PATH", "/srv/uploads")
	assert.Equal(t, "/srv/uploads", UploadBasePath())
}
