package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"verification-api/config"
	"verification-api/models"
	"verification-api/services"
	"verification-api/utils"

	"github.com/gin-gonic/gin"
)

var validQuestionTypes = map[string]bool{
	"text":    true,
	"select":  true,
	"boolean": true,
}

// GetPublicFormQuestions serves a company's active question set to the
// public submission form.
func GetPublicFormQuestions(c *gin.Context) {
	companyCode := strings.TrimSpace(c.Param("companyCode"))

	var company models.Company
	if err := config.DB.Where("company_code = ? AND is_active = 1 AND delete_at IS NULL", companyCode).
		First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company not found"})
		return
	}

	questions, err := services.GetActiveQuestions(company.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load questions", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"companyName": company.CompanyName,
			"questions":   questions,
		},
	})
}

// GetFormQuestions lists a company's questions including inactive ones
// (admin only).
func GetFormQuestions(c *gin.Context) {
	companyID := c.Query("company_id")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "company_id is required"})
		return
	}

	var questions []models.FormQuestion
	if err := config.DB.Where("company_id = ? AND delete_at IS NULL", companyID).
		Order("question_order ASC, question_id ASC").
		Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch questions", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    questions,
		"total":   len(questions),
	})
}

// CreateFormQuestion adds a question to a company's form (admin only).
func CreateFormQuestion(c *gin.Context) {
	type CreateQuestionRequest struct {
		CompanyID     int    `json:"company_id" binding:"required"`
		QuestionText  string `json:"question_text" binding:"required"`
		QuestionType  string `json:"question_type" binding:"required"`
		Options       string `json:"options"`
		Required      bool   `json:"required"`
		QuestionOrder int    `json:"question_order"`
	}

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if !validQuestionTypes[req.QuestionType] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "question_type must be text, select, or boolean"})
		return
	}

	var company models.Company
	if err := config.DB.Where("company_id = ? AND delete_at IS NULL", req.CompanyID).
		First(&company).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Company not found"})
		return
	}

	now := time.Now()
	question := models.FormQuestion{
		CompanyID:     req.CompanyID,
		QuestionText:  utils.SanitizeInput(req.QuestionText),
		QuestionType:  req.QuestionType,
		Required:      req.Required,
		QuestionOrder: req.QuestionOrder,
		IsActive:      true,
		CreateAt:      &now,
		UpdateAt:      &now,
	}
	if options := strings.TrimSpace(req.Options); options != "" {
		question.Options = &options
	}

	if err := config.DB.Create(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create question", "error": err.Error()})
		return
	}

	services.ClearQuestionCache(req.CompanyID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Question created successfully",
		"data":    question,
	})
}

// UpdateFormQuestion edits a question (admin only).
func UpdateFormQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || questionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid question ID"})
		return
	}

	var question models.FormQuestion
	if err := config.DB.Where("question_id = ? AND delete_at IS NULL", questionID).
		First(&question).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
		return
	}

	type UpdateQuestionRequest struct {
		QuestionText  string `json:"question_text"`
		QuestionType  string `json:"question_type"`
		Options       string `json:"options"`
		Required      *bool  `json:"required"`
		QuestionOrder *int   `json:"question_order"`
		IsActive      *bool  `json:"is_active"`
	}

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.QuestionText != "" {
		question.QuestionText = utils.SanitizeInput(req.QuestionText)
	}
	if req.QuestionType != "" {
		if !validQuestionTypes[req.QuestionType] {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "question_type must be text, select, or boolean"})
			return
		}
		question.QuestionType = req.QuestionType
	}
	if options := strings.TrimSpace(req.Options); options != "" {
		question.Options = &options
	}
	if req.Required != nil {
		question.Required = *req.Required
	}
	if req.QuestionOrder != nil {
		question.QuestionOrder = *req.QuestionOrder
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	now := time.Now()
	question.UpdateAt = &now

	if err := config.DB.Save(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update question", "error": err.Error()})
		return
	}

	services.ClearQuestionCache(question.CompanyID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Question updated successfully",
		"data":    question,
	})
}

// DeleteFormQuestion soft deletes a question (admin only). Existing
// answers keep referencing it for already submitted applications.
func DeleteFormQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || questionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid question ID"})
		return
	}

	var question models.FormQuestion
	if err := config.DB.Where("question_id = ? AND delete_at IS NULL", questionID).
		First(&question).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
		return
	}

	now := time.Now()
	question.IsActive = false
	question.DeleteAt = &now
	question.UpdateAt = &now

	if err := config.DB.Save(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete question", "error": err.Error()})
		return
	}

	services.ClearQuestionCache(question.CompanyID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Question deleted successfully"})
}
