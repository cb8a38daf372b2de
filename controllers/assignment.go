package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"verification-api/config"
	"verification-api/models"
	"verification-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// hasActiveAssignment checks the standing (verifier, company) grant.
func hasActiveAssignment(db *gorm.DB, verifierID, companyID int) (bool, error) {
	var count int64
	err := db.Model(&models.VerifierAssignment{}).
		Where("verifier_id = ? AND company_id = ? AND is_active = 1", verifierID, companyID).
		Count(&count).Error
	return count > 0, err
}

// assignApplicationTo writes the assignment inside a transaction: verifier
// and timestamp on the application row plus an audit history entry.
// Re-assignment is a full overwrite; prior assignees survive only in the
// history log.
func assignApplicationTo(application *models.Application, verifier *models.User) error {
	now := time.Now()

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Application{}).
		Where("application_id = ?", application.ApplicationID).
		Updates(map[string]interface{}{
			"assigned_verifier_id": verifier.UserID,
			"assigned_at":          now,
			"status":               models.StatusAssigned,
			"update_at":            now,
		}).Error; err != nil {
		tx.Rollback()
		return err
	}

	history := models.VerificationHistory{
		ApplicationID: application.ApplicationID,
		VerifierID:    verifier.UserID,
		Action:        models.HistoryActionAssigned,
		CreatedAt:     now,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	services.NotifyAssignment(verifier, application)
	return nil
}

// AssignApplication assigns an application to a named verifier (admin only).
func AssignApplication(c *gin.Context) {
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || applicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid application ID"})
		return
	}

	var req struct {
		VerifierID int `json:"verifier_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "verifier_id is required"})
		return
	}

	var application models.Application
	if err := config.DB.Where("application_id = ? AND delete_at IS NULL", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Application not found"})
		return
	}

	var verifier models.User
	if err := config.DB.Where("user_id = ? AND role_id = ? AND is_active = 1 AND delete_at IS NULL",
		req.VerifierID, models.RoleVerifier).First(&verifier).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Verifier not found"})
		return
	}

	allowed, err := hasActiveAssignment(config.DB, verifier.UserID, application.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check verifier assignment", "error": err.Error()})
		return
	}
	if !allowed {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Verifier is not assigned to this company"})
		return
	}

	if err := assignApplicationTo(&application, &verifier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to assign application", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application assigned successfully",
		"data": gin.H{
			"applicationId": application.ApplicationID,
			"verifierId":    verifier.UserID,
		},
	})
}

// AutoAssignApplication lets a verifier pull an application onto their own
// desk. Allowed only when the case is unassigned or already theirs.
func AutoAssignApplication(c *gin.Context) {
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || applicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid application ID"})
		return
	}

	userIDValue, _ := c.Get("userID")
	userID := userIDValue.(int)

	var application models.Application
	if err := config.DB.Where("application_id = ? AND delete_at IS NULL", applicationID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Application not found"})
		return
	}

	if application.AssignedVerifierID != nil && *application.AssignedVerifierID != userID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Application is already assigned to another verifier"})
		return
	}

	allowed, err := hasActiveAssignment(config.DB, userID, application.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check verifier assignment", "error": err.Error()})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You are not assigned to this company"})
		return
	}

	var verifier models.User
	if err := config.DB.First(&verifier, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load user", "error": err.Error()})
		return
	}

	if err := assignApplicationTo(&application, &verifier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to assign application", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application assigned to you",
		"data": gin.H{
			"applicationId": application.ApplicationID,
			"verifierId":    userID,
		},
	})
}

// CreateVerifierAssignment grants a verifier access to a company's
// applications (admin only). Re-granting a revoked pair reactivates it.
func CreateVerifierAssignment(c *gin.Context) {
	var req struct {
		VerifierID int `json:"verifier_id" binding:"required"`
		CompanyID  int `json:"company_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "verifier_id and company_id are required"})
		return
	}

	var verifier models.User
	if err := config.DB.Where("user_id = ? AND role_id = ? AND delete_at IS NULL",
		req.VerifierID, models.RoleVerifier).First(&verifier).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Verifier not found"})
		return
	}

	var company models.Company
	if err := config.DB.Where("company_id = ? AND delete_at IS NULL", req.CompanyID).
		First(&company).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Company not found"})
		return
	}

	now := time.Now()

	var assignment models.VerifierAssignment
	err := config.DB.Where("verifier_id = ? AND company_id = ?", req.VerifierID, req.CompanyID).
		First(&assignment).Error
	switch {
	case err == nil:
		assignment.IsActive = true
		assignment.UpdateAt = &now
		if err := config.DB.Save(&assignment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update assignment", "error": err.Error()})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		assignment = models.VerifierAssignment{
			VerifierID: req.VerifierID,
			CompanyID:  req.CompanyID,
			IsActive:   true,
			CreateAt:   &now,
			UpdateAt:   &now,
		}
		if err := config.DB.Create(&assignment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create assignment", "error": err.Error()})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load assignment", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verifier assignment saved",
		"data":    assignment,
	})
}

// GetVerifierAssignments lists grants, optionally filtered by verifier or
// company (admin only).
func GetVerifierAssignments(c *gin.Context) {
	query := config.DB.Preload("Verifier").Preload("Company")

	if verifierID := c.Query("verifier_id"); verifierID != "" {
		query = query.Where("verifier_id = ?", verifierID)
	}
	if companyID := c.Query("company_id"); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}

	var assignments []models.VerifierAssignment
	if err := query.Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch assignments", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    assignments,
		"total":   len(assignments),
	})
}

// RevokeVerifierAssignment deactivates a grant (admin only). Applications
// already assigned to the verifier keep their assignee; the grant only
// gates future assignment.
func RevokeVerifierAssignment(c *gin.Context) {
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assignmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid assignment ID"})
		return
	}

	var assignment models.VerifierAssignment
	if err := config.DB.First(&assignment, assignmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Assignment not found"})
		return
	}

	now := time.Now()
	assignment.IsActive = false
	assignment.UpdateAt = &now

	if err := config.DB.Save(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to revoke assignment", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verifier assignment revoked"})
}
