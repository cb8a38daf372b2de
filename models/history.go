package models

import "time"

// Actions recorded in verification_history.
const (
	HistoryActionAssigned      = "assigned"
	HistoryActionStartedReview = "started_review"
	HistoryActionApproved      = "approved"
	HistoryActionRejected      = "rejected"
)

// VerificationHistory is the append-only audit trail of state-changing
// actions. Rows are never updated or deleted, and no decision logic reads
// them back.
type VerificationHistory struct {
	HistoryID     int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	ApplicationID int       `gorm:"column:application_id" json:"application_id"`
	VerifierID    int       `gorm:"column:verifier_id" json:"verifier_id"`
	Action        string    `gorm:"column:action" json:"action"`
	Notes         *string   `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (VerificationHistory) TableName() string {
	return "verification_history"
}
