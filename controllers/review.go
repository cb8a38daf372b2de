package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"verification-api/config"
	"verification-api/models"
	"verification-api/services"
	"verification-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var fieldReviewUpsertColumns = []string{"field_value", "review_status", "review_notes", "reviewed_by", "reviewed_at"}
var fileReviewUpsertColumns = []string{"review_status", "review_notes", "reviewed_by", "reviewed_at"}

// FieldReviewEntry is one row of the reviewer projection: either a stored
// field_reviews row or a synthesized pending default carrying the live
// application value.
type FieldReviewEntry struct {
	FieldName    string     `json:"field_name"`
	FieldValue   string     `json:"field_value"`
	ReviewStatus string     `json:"review_status"`
	ReviewNotes  *string    `json:"review_notes"`
	ReviewedBy   *int       `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	QuestionText string     `json:"question_text,omitempty"`
}

// FileReviewEntry is the document counterpart, one per uploaded file.
type FileReviewEntry struct {
	FileID       int        `json:"file_id"`
	DocumentType string     `json:"document_type"`
	OriginalName string     `json:"original_name"`
	ReviewStatus string     `json:"review_status"`
	ReviewNotes  *string    `json:"review_notes"`
	ReviewedBy   *int       `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
}

// ReviewCounts aggregates the projection arrays at read time; nothing here
// is stored.
type ReviewCounts struct {
	TotalFields    int `json:"total_fields"`
	ApprovedFields int `json:"approved_fields"`
	RejectedFields int `json:"rejected_fields"`
	PendingFields  int `json:"pending_fields"`
	TotalFiles     int `json:"total_files"`
	ApprovedFiles  int `json:"approved_files"`
	RejectedFiles  int `json:"rejected_files"`
	PendingFiles   int `json:"pending_files"`
}

// loadOwnedApplication resolves an application by id and assigned verifier
// together. Absence of a match reads the same whether the application does
// not exist or belongs to another verifier.
func loadOwnedApplication(db *gorm.DB, applicationID, verifierID int) (*models.Application, error) {
	var application models.Application
	err := db.Where("application_id = ? AND assigned_verifier_id = ? AND delete_at IS NULL",
		applicationID, verifierID).First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// SubmitReview accepts a batch of field and file review decisions for one
// application and persists them atomically.
func SubmitReview(c *gin.Context) {
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || applicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid application ID"})
		return
	}

	userIDValue, _ := c.Get("userID")
	userID := userIDValue.(int)

	var req struct {
		FieldReviews []struct {
			FieldName  string `json:"fieldName"`
			FieldValue string `json:"fieldValue"`
			Status     string `json:"status"`
			Notes      string `json:"notes"`
		} `json:"fieldReviews"`
		FileReviews []struct {
			FileID int    `json:"fileId"`
			Status string `json:"status"`
			Notes  string `json:"notes"`
		} `json:"fileReviews"`
		OverallNotes string `json:"overallNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	application, err := loadOwnedApplication(config.DB, applicationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Application not found or not assigned to you"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load application", "error": err.Error()})
		return
	}

	now := time.Now()

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, item := range req.FieldReviews {
		fieldName := strings.TrimSpace(item.FieldName)
		if fieldName == "" || item.Status == "" {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Each field review requires fieldName and status"})
			return
		}
		if !utils.IsValidReviewStatus(item.Status) {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Invalid review status '%s' for field %s", item.Status, fieldName)})
			return
		}

		review := models.FieldReview{
			ApplicationID: application.ApplicationID,
			FieldName:     fieldName,
			FieldValue:    item.FieldValue,
			ReviewStatus:  item.Status,
			ReviewedBy:    userID,
			ReviewedAt:    now,
		}
		if notes := strings.TrimSpace(item.Notes); notes != "" {
			review.ReviewNotes = &notes
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}, {Name: "field_name"}},
			DoUpdates: clause.AssignmentColumns(fieldReviewUpsertColumns),
		}).Create(&review).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save field review", "error": err.Error()})
			return
		}
	}

	for _, item := range req.FileReviews {
		if item.FileID <= 0 || item.Status == "" {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Each file review requires fileId and status"})
			return
		}
		if !utils.IsValidReviewStatus(item.Status) {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Invalid review status '%s' for file %d", item.Status, item.FileID)})
			return
		}

		// The file must belong to this application; a miss aborts the
		// whole submission.
		var document models.ApplicationDocument
		if err := tx.Where("file_id = ? AND application_id = ?", item.FileID, application.ApplicationID).
			First(&document).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("File %d does not belong to this application", item.FileID)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to look up file", "error": err.Error()})
			return
		}

		review := models.FileReview{
			ApplicationID: application.ApplicationID,
			FileID:        item.FileID,
			ReviewStatus:  item.Status,
			ReviewedBy:    userID,
			ReviewedAt:    now,
		}
		if notes := strings.TrimSpace(item.Notes); notes != "" {
			review.ReviewNotes = &notes
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}, {Name: "file_id"}},
			DoUpdates: clause.AssignmentColumns(fileReviewUpsertColumns),
		}).Create(&review).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save file review", "error": err.Error()})
			return
		}
	}

	summary := models.ApplicationReview{
		ApplicationID: application.ApplicationID,
		OverallStatus: models.StatusUnderReview,
		ReviewedBy:    userID,
		ReviewedAt:    now,
	}
	if notes := strings.TrimSpace(req.OverallNotes); notes != "" {
		summary.ReviewNotes = &notes
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"overall_status", "review_notes", "reviewed_by", "reviewed_at"}),
	}).Create(&summary).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save review summary", "error": err.Error()})
		return
	}

	if err := tx.Model(&models.Application{}).
		Where("application_id = ?", application.ApplicationID).
		Updates(map[string]interface{}{
			"status":    models.StatusUnderReview,
			"update_at": now,
		}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update application status", "error": err.Error()})
		return
	}

	// History rows mark transitions, not every submit.
	if application.Status != models.StatusUnderReview {
		history := models.VerificationHistory{
			ApplicationID: application.ApplicationID,
			VerifierID:    userID,
			Action:        models.HistoryActionStartedReview,
			CreatedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to log history", "error": err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save review", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review saved",
		"data": gin.H{
			"applicationId":     application.ApplicationID,
			"fieldReviewsCount": len(req.FieldReviews),
			"fileReviewsCount":  len(req.FileReviews),
			"overallStatus":     models.StatusUnderReview,
		},
	})
}

// GetApplicationReview materializes the complete reviewer picture: every
// catalogue field and question answer, every document, defaults synthesized
// as pending for anything never reviewed. Read-only.
func GetApplicationReview(c *gin.Context) {
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || applicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid application ID"})
		return
	}

	var application models.Application
	if err := config.DB.Where("application_id = ? AND delete_at IS NULL", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Application not found"})
		return
	}

	var storedFieldReviews []models.FieldReview
	if err := config.DB.Where("application_id = ?", applicationID).Find(&storedFieldReviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load field reviews", "error": err.Error()})
		return
	}
	reviewsByField := make(map[string]models.FieldReview, len(storedFieldReviews))
	for _, review := range storedFieldReviews {
		reviewsByField[review.FieldName] = review
	}

	fieldEntries := make([]FieldReviewEntry, 0, len(services.ReviewableFields))
	for _, fieldName := range services.ReviewableFields {
		fieldEntries = append(fieldEntries, buildFieldEntry(fieldName, services.FieldValue(&application, fieldName), "", reviewsByField))
	}

	var answers []models.ApplicationQuestionAnswer
	if err := config.DB.Preload("Question").
		Where("application_id = ?", applicationID).
		Order("answer_id ASC").
		Find(&answers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load question answers", "error": err.Error()})
		return
	}
	for _, answer := range answers {
		questionText := ""
		if answer.Question != nil {
			questionText = answer.Question.QuestionText
		}
		fieldName := services.QuestionAnswerFieldName(answer.AnswerID)
		fieldEntries = append(fieldEntries, buildFieldEntry(fieldName, answer.AnswerText, questionText, reviewsByField))
	}

	var documents []models.ApplicationDocument
	if err := config.DB.Where("application_id = ?", applicationID).
		Order("file_id ASC").
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load documents", "error": err.Error()})
		return
	}

	var storedFileReviews []models.FileReview
	if err := config.DB.Where("application_id = ?", applicationID).Find(&storedFileReviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load file reviews", "error": err.Error()})
		return
	}
	reviewsByFile := make(map[int]models.FileReview, len(storedFileReviews))
	for _, review := range storedFileReviews {
		reviewsByFile[review.FileID] = review
	}

	fileEntries := make([]FileReviewEntry, 0, len(documents))
	for _, document := range documents {
		entry := FileReviewEntry{
			FileID:       document.FileID,
			DocumentType: document.DocumentType,
			OriginalName: document.OriginalName,
			ReviewStatus: models.ReviewStatusPending,
		}
		if review, ok := reviewsByFile[document.FileID]; ok {
			entry.ReviewStatus = review.ReviewStatus
			entry.ReviewNotes = review.ReviewNotes
			reviewedBy := review.ReviewedBy
			reviewedAt := review.ReviewedAt
			entry.ReviewedBy = &reviewedBy
			entry.ReviewedAt = &reviewedAt
		}
		fileEntries = append(fileEntries, entry)
	}

	var summary *models.ApplicationReview
	var summaryRow models.ApplicationReview
	if err := config.DB.Where("application_id = ?", applicationID).First(&summaryRow).Error; err == nil {
		summary = &summaryRow
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load review summary", "error": err.Error()})
		return
	}

	counts := ReviewCounts{TotalFields: len(fieldEntries), TotalFiles: len(fileEntries)}
	for _, entry := range fieldEntries {
		switch entry.ReviewStatus {
		case models.ReviewStatusApproved:
			counts.ApprovedFields++
		case models.ReviewStatusRejected:
			counts.RejectedFields++
		default:
			counts.PendingFields++
		}
	}
	for _, entry := range fileEntries {
		switch entry.ReviewStatus {
		case models.ReviewStatusApproved:
			counts.ApprovedFiles++
		case models.ReviewStatusRejected:
			counts.RejectedFiles++
		default:
			counts.PendingFiles++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"applicationId": application.ApplicationID,
			"status":        application.Status,
			"fieldReviews":  fieldEntries,
			"fileReviews":   fileEntries,
			"summary":       summary,
			"counts":        counts,
		},
	})
}

func buildFieldEntry(fieldName, liveValue, questionText string, stored map[string]models.FieldReview) FieldReviewEntry {
	entry := FieldReviewEntry{
		FieldName:    fieldName,
		FieldValue:   liveValue,
		ReviewStatus: models.ReviewStatusPending,
		QuestionText: questionText,
	}
	if review, ok := stored[fieldName]; ok {
		// Stored reviews win verbatim: the reviewer sees the value they
		// reviewed even if the application changed afterwards.
		entry.FieldValue = review.FieldValue
		entry.ReviewStatus = review.ReviewStatus
		entry.ReviewNotes = review.ReviewNotes
		reviewedBy := review.ReviewedBy
		reviewedAt := review.ReviewedAt
		entry.ReviewedBy = &reviewedBy
		entry.ReviewedAt = &reviewedAt
	}
	return entry
}

// FinalizeReview sets the terminal approve/reject outcome for a case.
// Rejection requires a reason; approval clears any prior one. Re-running
// finalize on an already terminal case is allowed.
func FinalizeReview(c *gin.Context) {
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || applicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid application ID"})
		return
	}

	userIDValue, _ := c.Get("userID")
	userID := userIDValue.(int)

	var req struct {
		OverallStatus   string `json:"overallStatus" binding:"required"`
		FinalNotes      string `json:"finalNotes"`
		RejectionReason string `json:"rejectionReason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "overallStatus is required"})
		return
	}

	overallStatus := strings.ToLower(strings.TrimSpace(req.OverallStatus))
	if !utils.IsValidOverallStatus(overallStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "overallStatus must be either 'approved' or 'rejected'"})
		return
	}

	rejectionReason := strings.TrimSpace(req.RejectionReason)
	if overallStatus == models.StatusRejected && rejectionReason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "rejectionReason is required when rejecting"})
		return
	}

	application, err := loadOwnedApplication(config.DB, applicationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Application not found or not assigned to you"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load application", "error": err.Error()})
		return
	}

	now := time.Now()

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	summary := models.ApplicationReview{
		ApplicationID: application.ApplicationID,
		OverallStatus: overallStatus,
		ReviewedBy:    userID,
		ReviewedAt:    now,
	}
	if notes := strings.TrimSpace(req.FinalNotes); notes != "" {
		summary.ReviewNotes = &notes
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"overall_status", "review_notes", "reviewed_by", "reviewed_at"}),
	}).Create(&summary).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save review summary", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"status":      overallStatus,
		"reviewed_at": now,
		"update_at":   now,
	}
	if overallStatus == models.StatusRejected {
		updates["rejection_reason"] = rejectionReason
	} else {
		// Approving after a rejection clears the stale reason.
		updates["rejection_reason"] = nil
	}
	if err := tx.Model(&models.Application{}).
		Where("application_id = ?", application.ApplicationID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update application", "error": err.Error()})
		return
	}

	action := models.HistoryActionApproved
	if overallStatus == models.StatusRejected {
		action = models.HistoryActionRejected
	}
	history := models.VerificationHistory{
		ApplicationID: application.ApplicationID,
		VerifierID:    userID,
		Action:        action,
		CreatedAt:     now,
	}
	if overallStatus == models.StatusRejected {
		history.Notes = &rejectionReason
	} else if notes := strings.TrimSpace(req.FinalNotes); notes != "" {
		history.Notes = &notes
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to log history", "error": err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to finalize review", "error": err.Error()})
		return
	}

	var company models.Company
	if err := config.DB.First(&company, application.CompanyID).Error; err == nil {
		services.NotifyFinalized(&company, application, overallStatus)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review finalized",
		"data": gin.H{
			"applicationId": application.ApplicationID,
			"overallStatus": overallStatus,
			"finalizedAt":   now,
		},
	})
}
