package models

import "time"

// Per-item review statuses stored on field_reviews/file_reviews.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// FieldReview records a verifier decision on one named data point of an
// application. field_value snapshots the value at review time, so it can
// diverge from the live application column after later edits.
type FieldReview struct {
	ReviewID      int       `gorm:"primaryKey;column:review_id" json:"review_id"`
	ApplicationID int       `gorm:"column:application_id;uniqueIndex:uq_field_reviews_app_field" json:"application_id"`
	FieldName     string    `gorm:"column:field_name;uniqueIndex:uq_field_reviews_app_field" json:"field_name"`
	FieldValue    string    `gorm:"column:field_value" json:"field_value"`
	ReviewStatus  string    `gorm:"column:review_status" json:"review_status"`
	ReviewNotes   *string   `gorm:"column:review_notes" json:"review_notes"`
	ReviewedBy    int       `gorm:"column:reviewed_by" json:"reviewed_by"`
	ReviewedAt    time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`
}

// FileReview is the document counterpart of FieldReview, keyed to an
// uploaded file row instead of a field name.
type FileReview struct {
	ReviewID      int       `gorm:"primaryKey;column:review_id" json:"review_id"`
	ApplicationID int       `gorm:"column:application_id;uniqueIndex:uq_file_reviews_app_file" json:"application_id"`
	FileID        int       `gorm:"column:file_id;uniqueIndex:uq_file_reviews_app_file" json:"file_id"`
	ReviewStatus  string    `gorm:"column:review_status" json:"review_status"`
	ReviewNotes   *string   `gorm:"column:review_notes" json:"review_notes"`
	ReviewedBy    int       `gorm:"column:reviewed_by" json:"reviewed_by"`
	ReviewedAt    time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`
}

// ApplicationReview is the rolled-up summary, at most one row per
// application. Upserted, never appended; only the latest summary survives.
type ApplicationReview struct {
	ApplicationReviewID int       `gorm:"primaryKey;column:application_review_id" json:"application_review_id"`
	ApplicationID       int       `gorm:"column:application_id;unique" json:"application_id"`
	OverallStatus       string    `gorm:"column:overall_status" json:"overall_status"`
	ReviewNotes         *string   `gorm:"column:review_notes" json:"review_notes"`
	ReviewedBy          int       `gorm:"column:reviewed_by" json:"reviewed_by"`
	ReviewedAt          time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`
}

// TableName overrides
func (FieldReview) TableName() string {
	return "field_reviews"
}

func (FileReview) TableName() string {
	return "file_reviews"
}

func (ApplicationReview) TableName() string {
	return "application_reviews"
}
