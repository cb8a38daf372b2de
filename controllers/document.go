package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"verification-api/config"
	"verification-api/models"
	"verification-api/utils"

	"github.com/gin-gonic/gin"
)

const maxDocumentSize = 10 * 1024 * 1024 // 10MB

// UploadApplicationDocument stores one document for a freshly submitted
// application. Called from the public form, scoped by company code; only
// pending applications accept uploads.
func UploadApplicationDocument(c *gin.Context) {
	companyCode := strings.TrimSpace(c.Param("companyCode"))
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || applicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid application ID"})
		return
	}

	var company models.Company
	if err := config.DB.Where("company_code = ? AND is_active = 1 AND delete_at IS NULL", companyCode).
		First(&company).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company not found"})
		return
	}

	var application models.Application
	if err := config.DB.Where("application_id = ? AND company_id = ? AND delete_at IS NULL",
		applicationID, company.CompanyID).First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Application not found"})
		return
	}

	if application.Status != models.StatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot upload documents to a processed application"})
		return
	}

	documentType := strings.TrimSpace(c.PostForm("document_type"))
	if documentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "document_type is required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded"})
		return
	}

	if file.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File size exceeds 10MB limit"})
		return
	}

	if !utils.IsAllowedExtension(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File type not allowed"})
		return
	}

	folder, err := utils.CreateApplicationFolder(application.ApplicationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create upload directory"})
		return
	}

	storedName := utils.GenerateStoredFilename(file.Filename)
	fullPath := filepath.Join(folder, storedName)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save file"})
		return
	}

	now := time.Now()
	document := models.ApplicationDocument{
		ApplicationID: application.ApplicationID,
		DocumentType:  documentType,
		OriginalName:  file.Filename,
		StoredPath:    fullPath,
		FileSize:      file.Size,
		MimeType:      file.Header.Get("Content-Type"),
		UploadedAt:    now,
		CreateAt:      now,
	}

	if err := config.DB.Create(&document).Error; err != nil {
		// Remove the stored file if the metadata row fails.
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save file info"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Document uploaded successfully",
		"data": gin.H{
			"fileId":       document.FileID,
			"documentType": document.DocumentType,
			"originalName": document.OriginalName,
			"fileSize":     document.FileSize,
			"mimeType":     document.MimeType,
		},
	})
}

// GetApplicationDocuments lists document metadata for an application.
func GetApplicationDocuments(c *gin.Context) {
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || applicationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid application ID"})
		return
	}

	var documents []models.ApplicationDocument
	if err := config.DB.Where("application_id = ?", applicationID).
		Order("file_id ASC").
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch documents", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    documents,
		"total":   len(documents),
	})
}

// DownloadDocument streams a stored document to the caller.
func DownloadDocument(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("file_id"))
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid file ID"})
		return
	}

	var document models.ApplicationDocument
	if err := config.DB.First(&document, fileID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Document not found"})
		return
	}

	if _, err := os.Stat(document.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Stored file is missing"})
		return
	}

	c.FileAttachment(document.StoredPath, document.OriginalName)
}

// DeleteDocument removes a document (admin only). The disk removal is
// best-effort; the metadata row delete always proceeds, so storage and
// metadata can diverge without a reconciliation process.
func DeleteDocument(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("file_id"))
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid file ID"})
		return
	}

	var document models.ApplicationDocument
	if err := config.DB.First(&document, fileID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Document not found"})
		return
	}

	if err := os.Remove(document.StoredPath); err != nil {
		log.Printf("Warning: failed to remove stored file %s: %v", document.StoredPath, err)
	}

	if err := config.DB.Delete(&models.ApplicationDocument{}, fileID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete document", "error": err.Error()})
		return
	}

	// File reviews for the removed document go with it.
	if err := config.DB.Where("file_id = ?", fileID).Delete(&models.FileReview{}).Error; err != nil {
		log.Printf("Warning: failed to delete file reviews for file %d: %v", fileID, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Document deleted successfully"})
}
