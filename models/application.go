package models

import "time"

// Application status values stored on applications.status.
const (
	StatusPending     = "pending"
	StatusAssigned    = "assigned"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

// Application is one applicant's verification case tied to a company.
// The applicant-supplied columns are flat form data; each one is
// individually reviewable through the field_reviews table.
type Application struct {
	ApplicationID      int        `gorm:"primaryKey;column:application_id" json:"application_id"`
	CompanyID          int        `gorm:"column:company_id" json:"company_id"`
	AssignedVerifierID *int       `gorm:"column:assigned_verifier_id" json:"assigned_verifier_id,omitempty"`
	Status             string     `gorm:"column:status" json:"status"`
	RejectionReason    *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	AssignedAt         *time.Time `gorm:"column:assigned_at" json:"assigned_at,omitempty"`
	ReviewedAt         *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreateAt           *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt           *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt           *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Personal
	FirstName      string `gorm:"column:first_name" json:"first_name"`
	MiddleName     string `gorm:"column:middle_name" json:"middle_name"`
	LastName       string `gorm:"column:last_name" json:"last_name"`
	FatherName     string `gorm:"column:father_name" json:"father_name"`
	MotherName     string `gorm:"column:mother_name" json:"mother_name"`
	DateOfBirth    string `gorm:"column:date_of_birth" json:"date_of_birth"`
	Gender         string `gorm:"column:gender" json:"gender"`
	MaritalStatus  string `gorm:"column:marital_status" json:"marital_status"`
	Nationality    string `gorm:"column:nationality" json:"nationality"`
	Email          string `gorm:"column:email" json:"email"`
	Phone          string `gorm:"column:phone" json:"phone"`
	AlternatePhone string `gorm:"column:alternate_phone" json:"alternate_phone"`
	NationalID     string `gorm:"column:national_id" json:"national_id"`
	TaxID          string `gorm:"column:tax_id" json:"tax_id"`

	// Current address
	CurrentAddressLine  string `gorm:"column:current_address_line" json:"current_address_line"`
	CurrentCity         string `gorm:"column:current_city" json:"current_city"`
	CurrentState        string `gorm:"column:current_state" json:"current_state"`
	CurrentPostalCode   string `gorm:"column:current_postal_code" json:"current_postal_code"`
	CurrentCountry      string `gorm:"column:current_country" json:"current_country"`
	CurrentResidingSince string `gorm:"column:current_residing_since" json:"current_residing_since"`

	// Permanent address
	PermanentAddressLine string `gorm:"column:permanent_address_line" json:"permanent_address_line"`
	PermanentCity        string `gorm:"column:permanent_city" json:"permanent_city"`
	PermanentState       string `gorm:"column:permanent_state" json:"permanent_state"`
	PermanentPostalCode  string `gorm:"column:permanent_postal_code" json:"permanent_postal_code"`
	PermanentCountry     string `gorm:"column:permanent_country" json:"permanent_country"`

	// Education
	HighestQualification string `gorm:"column:highest_qualification" json:"highest_qualification"`
	InstitutionName      string `gorm:"column:institution_name" json:"institution_name"`
	UniversityName       string `gorm:"column:university_name" json:"university_name"`
	DegreeName           string `gorm:"column:degree_name" json:"degree_name"`
	Specialization       string `gorm:"column:specialization" json:"specialization"`
	EnrollmentNumber     string `gorm:"column:enrollment_number" json:"enrollment_number"`
	GraduationYear       string `gorm:"column:graduation_year" json:"graduation_year"`
	EducationGrade       string `gorm:"column:education_grade" json:"education_grade"`

	// References
	Reference1Name     string `gorm:"column:reference1_name" json:"reference1_name"`
	Reference1Relation string `gorm:"column:reference1_relation" json:"reference1_relation"`
	Reference1Phone    string `gorm:"column:reference1_phone" json:"reference1_phone"`
	Reference1Email    string `gorm:"column:reference1_email" json:"reference1_email"`
	Reference1Address  string `gorm:"column:reference1_address" json:"reference1_address"`
	Reference2Name     string `gorm:"column:reference2_name" json:"reference2_name"`
	Reference2Relation string `gorm:"column:reference2_relation" json:"reference2_relation"`
	Reference2Phone    string `gorm:"column:reference2_phone" json:"reference2_phone"`
	Reference2Email    string `gorm:"column:reference2_email" json:"reference2_email"`
	Reference2Address  string `gorm:"column:reference2_address" json:"reference2_address"`
	Reference3Name     string `gorm:"column:reference3_name" json:"reference3_name"`
	Reference3Relation string `gorm:"column:reference3_relation" json:"reference3_relation"`
	Reference3Phone    string `gorm:"column:reference3_phone" json:"reference3_phone"`
	Reference3Email    string `gorm:"column:reference3_email" json:"reference3_email"`
	Reference3Address  string `gorm:"column:reference3_address" json:"reference3_address"`

	// Employment
	EmployerName         string `gorm:"column:employer_name" json:"employer_name"`
	EmployerAddress      string `gorm:"column:employer_address" json:"employer_address"`
	Designation          string `gorm:"column:designation" json:"designation"`
	EmployeeCode         string `gorm:"column:employee_code" json:"employee_code"`
	EmploymentStartDate  string `gorm:"column:employment_start_date" json:"employment_start_date"`
	EmploymentEndDate    string `gorm:"column:employment_end_date" json:"employment_end_date"`
	SupervisorName       string `gorm:"column:supervisor_name" json:"supervisor_name"`
	SupervisorContact    string `gorm:"column:supervisor_contact" json:"supervisor_contact"`
	ReasonForLeaving     string `gorm:"column:reason_for_leaving" json:"reason_for_leaving"`
	PreviousEmployerName string `gorm:"column:previous_employer_name" json:"previous_employer_name"`
	PreviousDesignation  string `gorm:"column:previous_designation" json:"previous_designation"`

	// Neighbors
	Neighbor1Name    string `gorm:"column:neighbor1_name" json:"neighbor1_name"`
	Neighbor1Phone   string `gorm:"column:neighbor1_phone" json:"neighbor1_phone"`
	Neighbor1Address string `gorm:"column:neighbor1_address" json:"neighbor1_address"`
	Neighbor2Name    string `gorm:"column:neighbor2_name" json:"neighbor2_name"`
	Neighbor2Phone   string `gorm:"column:neighbor2_phone" json:"neighbor2_phone"`
	Neighbor2Address string `gorm:"column:neighbor2_address" json:"neighbor2_address"`

	// Residence
	ResidenceType      string `gorm:"column:residence_type" json:"residence_type"`
	ResidenceOwnership string `gorm:"column:residence_ownership" json:"residence_ownership"`
	LandlordName       string `gorm:"column:landlord_name" json:"landlord_name"`
	LandlordPhone      string `gorm:"column:landlord_phone" json:"landlord_phone"`
	YearsAtResidence   string `gorm:"column:years_at_residence" json:"years_at_residence"`

	// Relations
	Company          Company                     `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
	AssignedVerifier *User                       `gorm:"foreignKey:AssignedVerifierID;references:UserID" json:"assigned_verifier,omitempty"`
	Documents        []ApplicationDocument       `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
	QuestionAnswers  []ApplicationQuestionAnswer `gorm:"foreignKey:ApplicationID" json:"question_answers,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// ApplicantName returns the display name used in notifications.
func (a *Application) ApplicantName() string {
	if a.MiddleName != "" {
		return a.FirstName + " " + a.MiddleName + " " + a.LastName
	}
	return a.FirstName + " " + a.LastName
}
