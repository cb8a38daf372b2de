package utils

import (
	"fmt"
	"strings"

	"verification-api/models"
)

var statusSynonyms = map[string][]string{
	models.StatusPending:     {"pending", "new", "unassigned"},
	models.StatusAssigned:    {"assigned"},
	models.StatusUnderReview: {"under_review", "in_review", "reviewing"},
	models.StatusApproved:    {"approved", "cleared"},
	models.StatusRejected:    {"rejected", "declined"},
}

var statusByAlias = func() map[string]string {
	m := make(map[string]string)
	for canonical, aliases := range statusSynonyms {
		for _, alias := range aliases {
			m[alias] = canonical
		}
	}
	return m
}()

// NormalizeStatus resolves a query-string status filter to the canonical
// applications.status value. Empty input stays empty (no filter).
func NormalizeStatus(raw string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", nil
	}
	if canonical, ok := statusByAlias[trimmed]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("unknown status '%s'", raw)
}

// IsTerminalStatus reports whether the status ends the review lifecycle.
// Terminal here is descriptive only; finalize may still be re-run.
func IsTerminalStatus(status string) bool {
	return status == models.StatusApproved || status == models.StatusRejected
}

// IsValidReviewStatus checks a per-item review decision value.
func IsValidReviewStatus(status string) bool {
	switch status {
	case models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected:
		return true
	}
	return false
}

// IsValidOverallStatus checks a finalize decision value.
func IsValidOverallStatus(status string) bool {
	return status == models.StatusApproved || status == models.StatusRejected
}
