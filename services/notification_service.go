package services

import (
	"fmt"
	"log"
	"time"

	"verification-api/config"
	"verification-api/models"
)

// NotifyUser writes an in-app notification row and optionally mails the
// user. Both writes are best-effort: a failure is logged and never aborts
// the caller's transaction.
func NotifyUser(userID int, title, message, notifType string, applicationID *int, email string) {
	notification := models.Notification{
		UserID:   uint(userID),
		Title:    title,
		Message:  message,
		Type:     notifType,
		IsRead:   false,
		CreateAt: time.Now(),
	}
	if applicationID != nil {
		related := uint(*applicationID)
		notification.RelatedApplicationID = &related
	}

	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create notification for user %d: %v", userID, err)
	}

	if email == "" {
		return
	}
	body := fmt.Sprintf("<p>%s</p><p>%s</p>", title, message)
	if err := config.SendMail([]string{email}, title, body); err != nil {
		log.Printf("Warning: failed to send notification mail to %s: %v", email, err)
	}
}

// NotifyAssignment tells a verifier a case landed on their desk.
func NotifyAssignment(verifier *models.User, application *models.Application) {
	appID := application.ApplicationID
	NotifyUser(
		verifier.UserID,
		"New application assigned",
		fmt.Sprintf("Application #%d (%s) has been assigned to you for verification.",
			application.ApplicationID, application.ApplicantName()),
		"info",
		&appID,
		verifier.Email,
	)
}

// NotifyFinalized mails the company contact when a case reaches a terminal
// outcome. The company contact has no user row, so this is mail-only.
func NotifyFinalized(company *models.Company, application *models.Application, overallStatus string) {
	if company == nil || company.ContactEmail == "" {
		return
	}
	subject := fmt.Sprintf("Verification %s for %s", overallStatus, application.ApplicantName())
	body := fmt.Sprintf("<p>The background verification for <b>%s</b> (application #%d) has been <b>%s</b>.</p>",
		application.ApplicantName(), application.ApplicationID, overallStatus)
	if err := config.SendMail([]string{company.ContactEmail}, subject, body); err != nil {
		log.Printf("Warning: failed to send finalization mail to %s: %v", company.ContactEmail, err)
	}
}
