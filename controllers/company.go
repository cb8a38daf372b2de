package controllers

import (
	"net/http"
	"strings"
	"time"

	"verification-api/config"
	"verification-api/models"
	"verification-api/utils"

	"github.com/gin-gonic/gin"
)

// GetCompanies lists companies (admin only).
func GetCompanies(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")

	if active := c.Query("active"); active == "true" {
		query = query.Where("is_active = 1")
	}

	var companies []models.Company
	if err := query.Order("company_name ASC").Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch companies", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    companies,
		"total":   len(companies),
	})
}

// GetCompany returns a single company (admin only).
func GetCompany(c *gin.Context) {
	id := c.Param("id")

	var company models.Company
	if err := config.DB.Where("company_id = ? AND delete_at IS NULL", id).
		First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": company})
}

// CreateCompany registers a new client company (admin only).
func CreateCompany(c *gin.Context) {
	type CreateCompanyRequest struct {
		CompanyName  string `json:"company_name" binding:"required"`
		CompanyCode  string `json:"company_code" binding:"required"`
		ContactName  string `json:"contact_name" binding:"required"`
		ContactEmail string `json:"contact_email" binding:"required,email"`
		ContactPhone string `json:"contact_phone"`
		Address      string `json:"address"`
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	code := strings.ToLower(strings.TrimSpace(req.CompanyCode))

	var existing models.Company
	if err := config.DB.Where("company_code = ?", code).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Company code already in use"})
		return
	}

	now := time.Now()
	company := models.Company{
		CompanyName:  utils.SanitizeInput(req.CompanyName),
		CompanyCode:  code,
		ContactName:  utils.SanitizeInput(req.ContactName),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		IsActive:     true,
		CreateAt:     &now,
		UpdateAt:     &now,
	}
	if phone := strings.TrimSpace(req.ContactPhone); phone != "" {
		company.ContactPhone = &phone
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		company.Address = &address
	}

	if err := config.DB.Create(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create company", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Company created successfully",
		"data":    company,
	})
}

// UpdateCompany edits company details (admin only). The company code is
// immutable; the public form links depend on it.
func UpdateCompany(c *gin.Context) {
	id := c.Param("id")

	var company models.Company
	if err := config.DB.Where("company_id = ? AND delete_at IS NULL", id).
		First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company not found"})
		return
	}

	type UpdateCompanyRequest struct {
		CompanyName  string `json:"company_name"`
		ContactName  string `json:"contact_name"`
		ContactEmail string `json:"contact_email"`
		ContactPhone string `json:"contact_phone"`
		Address      string `json:"address"`
		IsActive     *bool  `json:"is_active"`
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.CompanyName != "" {
		company.CompanyName = utils.SanitizeInput(req.CompanyName)
	}
	if req.ContactName != "" {
		company.ContactName = utils.SanitizeInput(req.ContactName)
	}
	if req.ContactEmail != "" {
		if !utils.ValidateEmail(req.ContactEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid contact email"})
			return
		}
		company.ContactEmail = strings.TrimSpace(req.ContactEmail)
	}
	if phone := strings.TrimSpace(req.ContactPhone); phone != "" {
		company.ContactPhone = &phone
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		company.Address = &address
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	now := time.Now()
	company.UpdateAt = &now

	if err := config.DB.Save(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update company", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Company updated successfully",
		"data":    company,
	})
}

// DeleteCompany soft deletes a company (admin only).
func DeleteCompany(c *gin.Context) {
	id := c.Param("id")

	var company models.Company
	if err := config.DB.Where("company_id = ? AND delete_at IS NULL", id).
		First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company not found"})
		return
	}

	now := time.Now()
	company.IsActive = false
	company.DeleteAt = &now
	company.UpdateAt = &now

	if err := config.DB.Save(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete company", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Company deleted successfully"})
}
