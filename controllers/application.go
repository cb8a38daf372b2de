package controllers

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"verification-api/config"
	"verification-api/models"
	"verification-api/services"
	"verification-api/utils"

	"github.com/gin-gonic/gin"
)

// GetApplications returns the application list visible to the caller.
// Admins see everything; verifiers see the companies they hold an active
// grant for.
func GetApplications(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	query := config.DB.Preload("Company").Preload("AssignedVerifier").
		Where("applications.delete_at IS NULL")

	if roleID.(int) != models.RoleAdmin {
		query = query.Where(
			"company_id IN (SELECT company_id FROM verifier_assignments WHERE verifier_id = ? AND is_active = 1)",
			userID)
	}

	if status := c.Query("status"); status != "" {
		normalized, err := utils.NormalizeStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		query = query.Where("status = ?", normalized)
	}

	if companyID := c.Query("company_id"); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}

	if c.Query("assigned_to_me") == "true" {
		query = query.Where("assigned_verifier_id = ?", userID)
	}

	var applications []models.Application
	if err := query.Order("create_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch applications", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    applications,
		"total":   len(applications),
	})
}

// GetApplication returns a single application with its documents and
// question answers.
func GetApplication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	query := config.DB.Preload("Company").Preload("AssignedVerifier").
		Preload("Documents").Preload("QuestionAnswers.Question").
		Where("application_id = ? AND applications.delete_at IS NULL", id)

	if roleID.(int) != models.RoleAdmin {
		query = query.Where(
			"company_id IN (SELECT company_id FROM verifier_assignments WHERE verifier_id = ? AND is_active = 1)",
			userID)
	}

	var application models.Application
	if err := query.First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    application,
	})
}

// SubmitPublicApplication creates a new pending application from the
// public company form. No authentication; the company code in the URL
// scopes the submission.
func SubmitPublicApplication(c *gin.Context) {
	companyCode := strings.TrimSpace(c.Param("companyCode"))

	var company models.Company
	if err := config.DB.Where("company_code = ? AND is_active = 1 AND delete_at IS NULL", companyCode).
		First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company not found"})
		return
	}

	var req struct {
		models.Application
		Answers []struct {
			QuestionID int    `json:"question_id"`
			Answer     string `json:"answer"`
		} `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "first_name and last_name are required"})
		return
	}
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid email is required"})
		return
	}
	if strings.TrimSpace(req.Phone) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "phone is required"})
		return
	}

	questions, err := services.GetActiveQuestions(company.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load form questions", "error": err.Error()})
		return
	}

	answersByQuestion := make(map[int]string, len(req.Answers))
	for _, answer := range req.Answers {
		answersByQuestion[answer.QuestionID] = strings.TrimSpace(answer.Answer)
	}
	validQuestions := make(map[int]bool, len(questions))
	for _, question := range questions {
		validQuestions[question.QuestionID] = true
		if question.Required && answersByQuestion[question.QuestionID] == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Required question not answered: " + question.QuestionText})
			return
		}
	}

	now := time.Now()
	application := req.Application
	application.ApplicationID = 0
	application.CompanyID = company.CompanyID
	application.AssignedVerifierID = nil
	application.Status = models.StatusPending
	application.RejectionReason = nil
	application.AssignedAt = nil
	application.ReviewedAt = nil
	application.CreateAt = &now
	application.UpdateAt = &now
	application.DeleteAt = nil
	application.Company = models.Company{}
	application.AssignedVerifier = nil
	application.Documents = nil
	application.QuestionAnswers = nil

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&application).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create application", "error": err.Error()})
		return
	}

	for questionID, answerText := range answersByQuestion {
		if !validQuestions[questionID] || answerText == "" {
			continue
		}
		answer := models.ApplicationQuestionAnswer{
			ApplicationID: application.ApplicationID,
			QuestionID:    questionID,
			AnswerText:    answerText,
			CreateAt:      now,
		}
		if err := tx.Create(&answer).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save question answers", "error": err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit application", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Application submitted successfully",
		"data": gin.H{
			"applicationId": application.ApplicationID,
			"status":        application.Status,
		},
	})
}

// UpdateApplication edits applicant-supplied fields (admin only). Only
// catalogue field names are accepted, so the body cannot touch status or
// ownership columns. Stored field reviews keep their snapshot values.
func UpdateApplication(c *gin.Context) {
	id := c.Param("id")

	var application models.Application
	if err := config.DB.Where("application_id = ? AND delete_at IS NULL", id).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Application not found"})
		return
	}

	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := make(map[string]interface{})
	for _, fieldName := range services.ReviewableFields {
		if value, ok := req[fieldName]; ok {
			updates[fieldName] = utils.SanitizeInput(value)
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No editable fields in request"})
		return
	}
	updates["update_at"] = time.Now()

	if err := config.DB.Model(&models.Application{}).
		Where("application_id = ?", application.ApplicationID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update application", "error": err.Error()})
		return
	}

	config.DB.Where("application_id = ?", application.ApplicationID).First(&application)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application updated successfully",
		"data":    application,
	})
}

// DeleteApplication soft deletes an application (admin only). Document
// files are removed from disk best-effort; the metadata rows go with the
// application through the store's cascade.
func DeleteApplication(c *gin.Context) {
	id := c.Param("id")

	var application models.Application
	if err := config.DB.Preload("Documents").
		Where("application_id = ? AND delete_at IS NULL", id).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Application not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.Application{}).
		Where("application_id = ?", application.ApplicationID).
		Updates(map[string]interface{}{
			"delete_at": now,
			"update_at": now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete application", "error": err.Error()})
		return
	}

	// Disk cleanup stays best-effort: a storage failure is logged and the
	// delete still counts.
	for _, document := range application.Documents {
		if err := os.Remove(document.StoredPath); err != nil {
			log.Printf("Warning: failed to remove stored file %s: %v", document.StoredPath, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Application deleted successfully"})
}

// GetVerificationHistory returns the audit trail for an application.
func GetVerificationHistory(c *gin.Context) {
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || applicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid application ID"})
		return
	}

	var history []models.VerificationHistory
	if err := config.DB.Where("application_id = ?", applicationID).
		Order("created_at ASC, history_id ASC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch history", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
		"total":   len(history),
	})
}
