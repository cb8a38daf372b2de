package utils

import (
	"testing"

	"verification-api/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"pending":      models.StatusPending,
		"new":          models.StatusPending,
		"unassigned":   models.StatusPending,
		"assigned":     models.StatusAssigned,
		"under_review": models.StatusUnderReview,
		"in_review":    models.StatusUnderReview,
		"reviewing":    models.StatusUnderReview,
		"approved":     models.StatusApproved,
		"cleared":      models.StatusApproved,
		"rejected":     models.StatusRejected,
		"declined":     models.StatusRejected,
		" Approved ":   models.StatusApproved,
		"REJECTED":     models.StatusRejected,
	}
	for input, want := range cases {
		got, err := NormalizeStatus(input)
		assert.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestNormalizeStatusEmptyMeansNoFilter(t *testing.T) {
	got, err := NormalizeStatus("")
	assert.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = NormalizeStatus("   ")
	assert.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestNormalizeStatusRejectsUnknown(t *testing.T) {
	_, err := NormalizeStatus("done")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status 'done'")
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(models.StatusApproved))
	assert.True(t, IsTerminalStatus(models.StatusRejected))
	assert.False(t, IsTerminalStatus(models.StatusPending))
	assert.False(t, IsTerminalStatus(models.StatusAssigned))
	assert.False(t, IsTerminalStatus(models.StatusUnderReview))
}

func TestIsValidReviewStatus(t *testing.T) {
	assert.True(t, IsValidReviewStatus("pending"))
	assert.True(t, IsValidReviewStatus("approved"))
	assert.True(t, IsValidReviewStatus("rejected"))
	assert.False(t, IsValidReviewStatus("maybe"))
	assert.False(t, IsValidReviewStatus(""))
	assert.False(t, IsValidReviewStatus("Approved"))
}

func TestIsValidOverallStatus(t *testing.T) {
	assert.True(t, IsValidOverallStatus("approved"))
	assert.True(t, IsValidOverallStatus("rejected"))
	assert.False(t, IsValidOverallStatus("pending"))
	assert.False(t, IsValidOverallStatus("under_review"))
	assert.False(t, IsValidOverallStatus(""))
}
