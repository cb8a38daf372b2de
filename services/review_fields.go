package services

import (
	"fmt"
	"strconv"
	"strings"

	"verification-api/models"
)

// questionAnswerPrefix unifies question answers with static fields in the
// field_reviews table without a schema change.
const questionAnswerPrefix = "question_answer_"

// ReviewableFields is the fixed catalogue of statically reviewable
// application fields, in display order. Question answers extend this list
// dynamically per application.
var ReviewableFields = []string{
	// Personal
	"first_name",
	"middle_name",
	"last_name",
	"father_name",
	"mother_name",
	"date_of_birth",
	"gender",
	"marital_status",
	"nationality",
	"email",
	"phone",
	"alternate_phone",
	"national_id",
	"tax_id",
	// Current address
	"current_address_line",
	"current_city",
	"current_state",
	"current_postal_code",
	"current_country",
	"current_residing_since",
	// Permanent address
	"permanent_address_line",
	"permanent_city",
	"permanent_state",
	"permanent_postal_code",
	"permanent_country",
	// Education
	"highest_qualification",
	"institution_name",
	"university_name",
	"degree_name",
	"specialization",
	"enrollment_number",
	"graduation_year",
	"education_grade",
	// References
	"reference1_name",
	"reference1_relation",
	"reference1_phone",
	"reference1_email",
	"reference1_address",
	"reference2_name",
	"reference2_relation",
	"reference2_phone",
	"reference2_email",
	"reference2_address",
	"reference3_name",
	"reference3_relation",
	"reference3_phone",
	"reference3_email",
	"reference3_address",
	// Employment
	"employer_name",
	"employer_address",
	"designation",
	"employee_code",
	"employment_start_date",
	"employment_end_date",
	"supervisor_name",
	"supervisor_contact",
	"reason_for_leaving",
	"previous_employer_name",
	"previous_designation",
	// Neighbors
	"neighbor1_name",
	"neighbor1_phone",
	"neighbor1_address",
	"neighbor2_name",
	"neighbor2_phone",
	"neighbor2_address",
	// Residence
	"residence_type",
	"residence_ownership",
	"landlord_name",
	"landlord_phone",
	"years_at_residence",
}

var fieldValueGetters = map[string]func(*models.Application) string{
	"first_name":             func(a *models.Application) string { return a.FirstName },
	"middle_name":            func(a *models.Application) string { return a.MiddleName },
	"last_name":              func(a *models.Application) string { return a.LastName },
	"father_name":            func(a *models.Application) string { return a.FatherName },
	"mother_name":            func(a *models.Application) string { return a.MotherName },
	"date_of_birth":          func(a *models.Application) string { return a.DateOfBirth },
	"gender":                 func(a *models.Application) string { return a.Gender },
	"marital_status":         func(a *models.Application) string { return a.MaritalStatus },
	"nationality":            func(a *models.Application) string { return a.Nationality },
	"email":                  func(a *models.Application) string { return a.Email },
	"phone":                  func(a *models.Application) string { return a.Phone },
	"alternate_phone":        func(a *models.Application) string { return a.AlternatePhone },
	"national_id":            func(a *models.Application) string { return a.NationalID },
	"tax_id":                 func(a *models.Application) string { return a.TaxID },
	"current_address_line":   func(a *models.Application) string { return a.CurrentAddressLine },
	"current_city":           func(a *models.Application) string { return a.CurrentCity },
	"current_state":          func(a *models.Application) string { return a.CurrentState },
	"current_postal_code":    func(a *models.Application) string { return a.CurrentPostalCode },
	"current_country":        func(a *models.Application) string { return a.CurrentCountry },
	"current_residing_since": func(a *models.Application) string { return a.CurrentResidingSince },
	"permanent_address_line": func(a *models.Application) string { return a.PermanentAddressLine },
	"permanent_city":         func(a *models.Application) string { return a.PermanentCity },
	"permanent_state":        func(a *models.Application) string { return a.PermanentState },
	"permanent_postal_code":  func(a *models.Application) string { return a.PermanentPostalCode },
	"permanent_country":      func(a *models.Application) string { return a.PermanentCountry },
	"highest_qualification":  func(a *models.Application) string { return a.HighestQualification },
	"institution_name":       func(a *models.Application) string { return a.InstitutionName },
	"university_name":        func(a *models.Application) string { return a.UniversityName },
	"degree_name":            func(a *models.Application) string { return a.DegreeName },
	"specialization":         func(a *models.Application) string { return a.Specialization },
	"enrollment_number":      func(a *models.Application) string { return a.EnrollmentNumber },
	"graduation_year":        func(a *models.Application) string { return a.GraduationYear },
	"education_grade":        func(a *models.Application) string { return a.EducationGrade },
	"reference1_name":        func(a *models.Application) string { return a.Reference1Name },
	"reference1_relation":    func(a *models.Application) string { return a.Reference1Relation },
	"reference1_phone":       func(a *models.Application) string { return a.Reference1Phone },
	"reference1_email":       func(a *models.Application) string { return a.Reference1Email },
	"reference1_address":     func(a *models.Application) string { return a.Reference1Address },
	"reference2_name":        func(a *models.Application) string { return a.Reference2Name },
	"reference2_relation":    func(a *models.Application) string { return a.Reference2Relation },
	"reference2_phone":       func(a *models.Application) string { return a.Reference2Phone },
	"reference2_email":       func(a *models.Application) string { return a.Reference2Email },
	"reference2_address":     func(a *models.Application) string { return a.Reference2Address },
	"reference3_name":        func(a *models.Application) string { return a.Reference3Name },
	"reference3_relation":    func(a *models.Application) string { return a.Reference3Relation },
	"reference3_phone":       func(a *models.Application) string { return a.Reference3Phone },
	"reference3_email":       func(a *models.Application) string { return a.Reference3Email },
	"reference3_address":     func(a *models.Application) string { return a.Reference3Address },
	"employer_name":          func(a *models.Application) string { return a.EmployerName },
	"employer_address":       func(a *models.Application) string { return a.EmployerAddress },
	"designation":            func(a *models.Application) string { return a.Designation },
	"employee_code":          func(a *models.Application) string { return a.EmployeeCode },
	"employment_start_date":  func(a *models.Application) string { return a.EmploymentStartDate },
	"employment_end_date":    func(a *models.Application) string { return a.EmploymentEndDate },
	"supervisor_name":        func(a *models.Application) string { return a.SupervisorName },
	"supervisor_contact":     func(a *models.Application) string { return a.SupervisorContact },
	"reason_for_leaving":     func(a *models.Application) string { return a.ReasonForLeaving },
	"previous_employer_name": func(a *models.Application) string { return a.PreviousEmployerName },
	"previous_designation":   func(a *models.Application) string { return a.PreviousDesignation },
	"neighbor1_name":         func(a *models.Application) string { return a.Neighbor1Name },
	"neighbor1_phone":        func(a *models.Application) string { return a.Neighbor1Phone },
	"neighbor1_address":      func(a *models.Application) string { return a.Neighbor1Address },
	"neighbor2_name":         func(a *models.Application) string { return a.Neighbor2Name },
	"neighbor2_phone":        func(a *models.Application) string { return a.Neighbor2Phone },
	"neighbor2_address":      func(a *models.Application) string { return a.Neighbor2Address },
	"residence_type":         func(a *models.Application) string { return a.ResidenceType },
	"residence_ownership":    func(a *models.Application) string { return a.ResidenceOwnership },
	"landlord_name":          func(a *models.Application) string { return a.LandlordName },
	"landlord_phone":         func(a *models.Application) string { return a.LandlordPhone },
	"years_at_residence":     func(a *models.Application) string { return a.YearsAtResidence },
}

// FieldValue returns the live application value for a catalogue field name.
// Unknown names return an empty string.
func FieldValue(application *models.Application, fieldName string) string {
	if getter, ok := fieldValueGetters[fieldName]; ok {
		return getter(application)
	}
	return ""
}

// QuestionAnswerFieldName maps an answer row to its synthetic field name.
func QuestionAnswerFieldName(answerID int) string {
	return fmt.Sprintf("%s%d", questionAnswerPrefix, answerID)
}

// ParseQuestionAnswerFieldName is the inverse mapping. The second return
// is false for static field names.
func ParseQuestionAnswerFieldName(fieldName string) (int, bool) {
	if !strings.HasPrefix(fieldName, questionAnswerPrefix) {
		return 0, false
	}
	answerID, err := strconv.Atoi(strings.TrimPrefix(fieldName, questionAnswerPrefix))
	if err != nil || answerID <= 0 {
		return 0, false
	}
	return answerID, true
}
