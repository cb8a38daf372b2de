package controllers

import (
	"net/http"

	"verification-api/config"
	"verification-api/models"

	"github.com/gin-gonic/gin"
)

type statusCountRow struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:count" json:"count"`
}

type companyCountRow struct {
	CompanyID   int    `gorm:"column:company_id" json:"company_id"`
	CompanyName string `gorm:"column:company_name" json:"company_name"`
	Count       int64  `gorm:"column:count" json:"count"`
}

// GetDashboardStats returns application counts by status, per-company
// totals, and the latest audit activity. Verifiers see only companies they
// hold an active grant for.
func GetDashboardStats(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	statusQuery := config.DB.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Where("applications.delete_at IS NULL").
		Group("status")
	if roleID.(int) != models.RoleAdmin {
		statusQuery = statusQuery.Where(
			"company_id IN (SELECT company_id FROM verifier_assignments WHERE verifier_id = ? AND is_active = 1)",
			userID)
	}

	var byStatus []statusCountRow
	if err := statusQuery.Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch status counts", "error": err.Error()})
		return
	}

	var byCompany []companyCountRow
	companyQuery := config.DB.Table("applications").
		Select("applications.company_id, companies.company_name, COUNT(*) AS count").
		Joins("JOIN companies ON companies.company_id = applications.company_id").
		Where("applications.delete_at IS NULL").
		Group("applications.company_id, companies.company_name")
	if roleID.(int) != models.RoleAdmin {
		companyQuery = companyQuery.Where(
			"applications.company_id IN (SELECT company_id FROM verifier_assignments WHERE verifier_id = ? AND is_active = 1)",
			userID)
	}
	if err := companyQuery.Scan(&byCompany).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch company counts", "error": err.Error()})
		return
	}

	var recentActivity []models.VerificationHistory
	activityQuery := config.DB.Order("created_at DESC, history_id DESC").Limit(10)
	if roleID.(int) != models.RoleAdmin {
		activityQuery = activityQuery.Where("verifier_id = ?", userID)
	}
	if err := activityQuery.Find(&recentActivity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch recent activity", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"byStatus":       byStatus,
			"byCompany":      byCompany,
			"recentActivity": recentActivity,
		},
	})
}
