package models

import "time"

// FormQuestion is one extra question a company adds to its public
// submission form.
type FormQuestion struct {
	QuestionID    int        `gorm:"primaryKey;column:question_id" json:"question_id"`
	CompanyID     int        `gorm:"column:company_id" json:"company_id"`
	QuestionText  string     `gorm:"column:question_text" json:"question_text"`
	QuestionType  string     `gorm:"column:question_type" json:"question_type"` // text|select|boolean
	Options       *string    `gorm:"column:options" json:"options,omitempty"`   // JSON array for select
	Required      bool       `gorm:"column:required" json:"required"`
	QuestionOrder int        `gorm:"column:question_order" json:"question_order"`
	IsActive      bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// ApplicationQuestionAnswer stores the applicant's answer to one form
// question. Answers are reviewable through field_reviews under the
// synthetic field name question_answer_<answer_id>.
type ApplicationQuestionAnswer struct {
	AnswerID      int       `gorm:"primaryKey;column:answer_id" json:"answer_id"`
	ApplicationID int       `gorm:"column:application_id" json:"application_id"`
	QuestionID    int       `gorm:"column:question_id" json:"question_id"`
	AnswerText    string    `gorm:"column:answer_text" json:"answer_text"`
	CreateAt      time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	Question *FormQuestion `gorm:"foreignKey:QuestionID;references:QuestionID" json:"question,omitempty"`
}

// TableName overrides
func (FormQuestion) TableName() string {
	return "form_questions"
}

func (ApplicationQuestionAnswer) TableName() string {
	return "application_question_answers"
}
