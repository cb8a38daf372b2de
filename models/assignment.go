package models

import "time"

// VerifierAssignment is a standing grant letting a verifier act on a
// company's applications. A verifier may touch an application only if an
// active row links their id to the application's company.
type VerifierAssignment struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	VerifierID   int        `gorm:"column:verifier_id;uniqueIndex:uq_verifier_assignments_pair" json:"verifier_id"`
	CompanyID    int        `gorm:"column:company_id;uniqueIndex:uq_verifier_assignments_pair" json:"company_id"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Verifier *User    `gorm:"foreignKey:VerifierID;references:UserID" json:"verifier,omitempty"`
	Company  *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

func (VerifierAssignment) TableName() string {
	return "verifier_assignments"
}
