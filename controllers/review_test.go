package controllers

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"verification-api/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withScriptedDB points the global DB at a scripted connection for the
// duration of one test.
func withScriptedDB(t *testing.T, steps []*queryStep) *scriptedDB {
	t.Helper()
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	previous := config.DB
	config.DB = gormDB
	t.Cleanup(func() {
		config.DB = previous
		cleanup()
	})
	return state
}

func invokeHandler(t *testing.T, handler gin.HandlerFunc, applicationID string, userID int, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: applicationID}}
	c.Set("userID", userID)
	handler(c)
	return recorder
}

func ownedApplicationStep(status string) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT \\* FROM `applications` WHERE application_id = \\? AND assigned_verifier_id = \\? AND delete_at IS NULL"),
		columns: []string{"application_id", "company_id", "assigned_verifier_id", "status"},
		rows: [][]driver.Value{
			{int64(5), int64(3), int64(7), status},
		},
	}
}

func missingApplicationStep() *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT \\* FROM `applications` WHERE application_id = \\? AND assigned_verifier_id = \\? AND delete_at IS NULL"),
		columns: []string{"application_id"},
		rows:    nil,
	}
}

func TestLoadOwnedApplicationMissReadsAsNotFound(t *testing.T) {
	withScriptedDB(t, []*queryStep{missingApplicationStep()})

	_, err := loadOwnedApplication(config.DB, 5, 7)
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestSubmitReviewRejectsInvalidApplicationID(t *testing.T) {
	state := withScriptedDB(t, nil)

	recorder := invokeHandler(t, SubmitReview, "abc", 7, gin.H{})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func TestSubmitReviewUnknownApplicationReturnsNotFound(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{missingApplicationStep()})

	recorder := invokeHandler(t, SubmitReview, "5", 7, gin.H{
		"fieldReviews": []gin.H{{"fieldName": "first_name", "status": "approved"}},
	})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Application not found or not assigned to you") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("expected no writes after ownership miss: %v", err)
	}
}

func TestSubmitReviewRejectsInvalidFieldStatus(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{ownedApplicationStep("assigned")})

	recorder := invokeHandler(t, SubmitReview, "5", 7, gin.H{
		"fieldReviews": []gin.H{{"fieldName": "first_name", "status": "maybe"}},
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Invalid review status 'maybe' for field first_name") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if state.rollbackCount() != 1 {
		t.Fatalf("expected one rollback, got %d", state.rollbackCount())
	}
	if state.commitCount() != 0 {
		t.Fatalf("expected no commits, got %d", state.commitCount())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("expected no writes for invalid status: %v", err)
	}
}

func TestSubmitReviewRejectsMissingFieldName(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{ownedApplicationStep("assigned")})

	recorder := invokeHandler(t, SubmitReview, "5", 7, gin.H{
		"fieldReviews": []gin.H{{"fieldName": "  ", "status": "approved"}},
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "requires fieldName and status") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if state.rollbackCount() != 1 {
		t.Fatalf("expected one rollback, got %d", state.rollbackCount())
	}
}

func TestSubmitReviewAbortsOnForeignFile(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{
		ownedApplicationStep("assigned"),
		{
			// The field review lands in the transaction first; the foreign
			// file must take it down with the rollback.
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `field_reviews` .*ON DUPLICATE KEY UPDATE"),
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `application_documents` WHERE file_id = \\? AND application_id = \\?"),
			columns: []string{"file_id"},
			rows:    nil,
		},
	})

	recorder := invokeHandler(t, SubmitReview, "5", 7, gin.H{
		"fieldReviews": []gin.H{{"fieldName": "first_name", "fieldValue": "Alice", "status": "approved"}},
		"fileReviews":  []gin.H{{"fileId": 9, "status": "approved"}},
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "File 9 does not belong to this application") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if state.rollbackCount() != 1 {
		t.Fatalf("expected one rollback, got %d", state.rollbackCount())
	}
	if state.commitCount() != 0 {
		t.Fatalf("expected no commits, got %d", state.commitCount())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("expected no review writes: %v", err)
	}
}

func TestSubmitReviewPersistsBatchAndMarksTransition(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{
		ownedApplicationStep("assigned"),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `field_reviews` .*ON DUPLICATE KEY UPDATE"),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `application_reviews` .*ON DUPLICATE KEY UPDATE"),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `applications` SET"),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `verification_history`"),
		},
	})

	recorder := invokeHandler(t, SubmitReview, "5", 7, gin.H{
		"fieldReviews": []gin.H{{"fieldName": "first_name", "fieldValue": "Alice", "status": "approved"}},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if state.commitCount() != 1 {
		t.Fatalf("expected one commit, got %d", state.commitCount())
	}
	if state.rollbackCount() != 0 {
		t.Fatalf("expected no rollbacks, got %d", state.rollbackCount())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			OverallStatus string `json:"overallStatus"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response.Success || response.Data.OverallStatus != "under_review" {
		t.Fatalf("unexpected response: %s", recorder.Body.String())
	}
}

func TestSubmitReviewSkipsHistoryWhenAlreadyUnderReview(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{
		ownedApplicationStep("under_review"),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `field_reviews` .*ON DUPLICATE KEY UPDATE"),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `application_reviews` .*ON DUPLICATE KEY UPDATE"),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `applications` SET"),
		},
	})

	recorder := invokeHandler(t, SubmitReview, "5", 7, gin.H{
		"fieldReviews": []gin.H{{"fieldName": "email", "fieldValue": "a@b.co", "status": "rejected", "notes": "typo"}},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("expected no history row on repeat submits: %v", err)
	}
}

func TestGetApplicationReviewProjection(t *testing.T) {
	reviewedAt := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	state := withScriptedDB(t, []*queryStep{
		applicationByIDStep(nil),
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `field_reviews` WHERE application_id = \\?"),
			columns: []string{"review_id", "application_id", "field_name", "field_value", "review_status", "reviewed_by", "reviewed_at"},
			rows: [][]driver.Value{
				{int64(1), int64(5), "first_name", "Alicia", "approved", int64(7), reviewedAt},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `application_question_answers` WHERE application_id = \\?"),
			columns: []string{"answer_id", "application_id", "question_id", "answer_text"},
			rows: [][]driver.Value{
				{int64(21), int64(5), int64(4), "Yes"},
			},
		},
		{
			// The answer row carries question_id=4; the preload must bind
			// that, not the answer's own id.
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `form_questions` WHERE `form_questions`\\.`question_id`"),
			args:    []driver.Value{int64(4)},
			columns: []string{"question_id", "company_id", "question_text"},
			rows: [][]driver.Value{
				{int64(4), int64(3), "Do you consent to a background check?"},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `application_documents` WHERE application_id = \\?"),
			columns: []string{"file_id", "application_id", "document_type", "original_name"},
			rows: [][]driver.Value{
				{int64(9), int64(5), "id_proof", "passport.pdf"},
				{int64(10), int64(5), "address_proof", "lease.pdf"},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `file_reviews` WHERE application_id = \\?"),
			columns: []string{"review_id", "application_id", "file_id", "review_status", "reviewed_by", "reviewed_at"},
			rows: [][]driver.Value{
				{int64(2), int64(5), int64(9), "approved", int64(7), reviewedAt},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `application_reviews` WHERE application_id = \\?"),
			columns: []string{"application_review_id"},
			rows:    nil,
		},
	})

	recorder := invokeHandler(t, GetApplicationReview, "5", 7, gin.H{})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			FieldReviews []FieldReviewEntry `json:"fieldReviews"`
			FileReviews  []FileReviewEntry  `json:"fileReviews"`
			Counts       ReviewCounts       `json:"counts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Data.FieldReviews) != 71 {
		t.Fatalf("expected 70 catalogue fields plus one answer, got %d", len(response.Data.FieldReviews))
	}

	entries := make(map[string]FieldReviewEntry, len(response.Data.FieldReviews))
	for _, entry := range response.Data.FieldReviews {
		entries[entry.FieldName] = entry
	}

	// Stored reviews win verbatim over the live column value.
	firstName := entries["first_name"]
	if firstName.ReviewStatus != "approved" || firstName.FieldValue != "Alicia" {
		t.Fatalf("unexpected first_name entry: %+v", firstName)
	}

	answer, ok := entries["question_answer_21"]
	if !ok {
		t.Fatalf("missing synthetic answer entry")
	}
	if answer.FieldValue != "Yes" || answer.ReviewStatus != "pending" {
		t.Fatalf("unexpected answer entry: %+v", answer)
	}
	if answer.QuestionText != "Do you consent to a background check?" {
		t.Fatalf("unexpected question text: %q", answer.QuestionText)
	}

	// Never-reviewed catalogue fields synthesize as pending.
	if email := entries["email"]; email.ReviewStatus != "pending" || email.ReviewedBy != nil {
		t.Fatalf("unexpected email entry: %+v", email)
	}

	if len(response.Data.FileReviews) != 2 {
		t.Fatalf("expected two file entries, got %d", len(response.Data.FileReviews))
	}
	for _, entry := range response.Data.FileReviews {
		switch entry.FileID {
		case 9:
			if entry.ReviewStatus != "approved" {
				t.Fatalf("expected file 9 approved, got %+v", entry)
			}
		case 10:
			if entry.ReviewStatus != "pending" {
				t.Fatalf("expected file 10 pending, got %+v", entry)
			}
		default:
			t.Fatalf("unexpected file entry %+v", entry)
		}
	}

	counts := response.Data.Counts
	if counts.TotalFields != 71 || counts.ApprovedFields != 1 || counts.RejectedFields != 0 || counts.PendingFields != 70 {
		t.Fatalf("unexpected field counts: %+v", counts)
	}
	if counts.ApprovedFields+counts.RejectedFields+counts.PendingFields != counts.TotalFields {
		t.Fatalf("field counts do not add up: %+v", counts)
	}
	if counts.TotalFiles != 2 || counts.ApprovedFiles != 1 || counts.PendingFiles != 1 || counts.RejectedFiles != 0 {
		t.Fatalf("unexpected file counts: %+v", counts)
	}
	if counts.ApprovedFiles+counts.RejectedFiles+counts.PendingFiles != counts.TotalFiles {
		t.Fatalf("file counts do not add up: %+v", counts)
	}
}

func TestFinalizeReviewRejectsUnknownOverallStatus(t *testing.T) {
	state := withScriptedDB(t, nil)

	recorder := invokeHandler(t, FinalizeReview, "5", 7, gin.H{"overallStatus": "pending"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "must be either 'approved' or 'rejected'") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("expected validation before any lookup: %v", err)
	}
}

func TestFinalizeReviewRequiresRejectionReason(t *testing.T) {
	state := withScriptedDB(t, nil)

	recorder := invokeHandler(t, FinalizeReview, "5", 7, gin.H{"overallStatus": "rejected"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "rejectionReason is required when rejecting") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("expected validation before any lookup: %v", err)
	}
}

func TestFinalizeReviewUnknownApplicationReturnsNotFound(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{missingApplicationStep()})

	recorder := invokeHandler(t, FinalizeReview, "5", 7, gin.H{"overallStatus": "approved"})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Application not found or not assigned to you") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("expected no writes after ownership miss: %v", err)
	}
}

func TestFinalizeReviewApprovesCase(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{
		ownedApplicationStep("under_review"),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `application_reviews` .*ON DUPLICATE KEY UPDATE"),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `applications` SET"),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `verification_history`"),
		},
		{
			// Company lookup for the outcome notification; an empty result
			// skips the send.
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `companies`"),
			columns: []string{"company_id"},
			rows:    nil,
		},
	})

	recorder := invokeHandler(t, FinalizeReview, "5", 7, gin.H{
		"overallStatus": "approved",
		"finalNotes":    "all checks passed",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if state.commitCount() != 1 {
		t.Fatalf("expected one commit, got %d", state.commitCount())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			OverallStatus string `json:"overallStatus"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response.Success || response.Data.OverallStatus != "approved" {
		t.Fatalf("unexpected response: %s", recorder.Body.String())
	}
}

func TestFinalizeReviewNormalizesStatusCase(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{
		ownedApplicationStep("under_review"),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `application_reviews` .*ON DUPLICATE KEY UPDATE"),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `applications` SET"),
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `verification_history`"),
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `companies`"),
			columns: []string{"company_id"},
			rows:    nil,
		},
	})

	recorder := invokeHandler(t, FinalizeReview, "5", 7, gin.H{
		"overallStatus":   " REJECTED ",
		"rejectionReason": "identity mismatch",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), `"overallStatus":"rejected"`) {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
