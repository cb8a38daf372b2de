package models

import "time"

// ApplicationDocument represents the application_documents table. Only
// metadata lives here; the bytes sit on disk under UPLOAD_PATH.
type ApplicationDocument struct {
	FileID        int       `gorm:"primaryKey;column:file_id" json:"file_id"`
	ApplicationID int       `gorm:"column:application_id" json:"application_id"`
	DocumentType  string    `gorm:"column:document_type" json:"document_type"`
	OriginalName  string    `gorm:"column:original_name" json:"original_name"`
	StoredPath    string    `gorm:"column:stored_path" json:"stored_path"`
	FileSize      int64     `gorm:"column:file_size" json:"file_size"`
	MimeType      string    `gorm:"column:mime_type" json:"mime_type"`
	UploadedAt    time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
	CreateAt      time.Time `gorm:"column:create_at" json:"create_at"`
}

func (ApplicationDocument) TableName() string {
	return "application_documents"
}
