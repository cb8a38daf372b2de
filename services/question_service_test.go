package services

import (
	"testing"
	"time"

	"verification-api/models"

	"github.com/stretchr/testify/assert"
)

func TestGetActiveQuestionsServesFromCache(t *testing.T) {
	questionCacheMu.Lock()
	questionCache[101] = &questionCacheEntry{
		questions: []models.FormQuestion{
			{QuestionID: 1, CompanyID: 101, QuestionText: "Do you consent to a background check?"},
		},
		fetchedAt: time.Now(),
	}
	questionCacheMu.Unlock()
	defer ClearQuestionCache(101)

	// A fresh cache entry must be served without touching the database;
	// config.DB is nil in tests, so a miss here would panic.
	questions, err := GetActiveQuestions(101)
	assert.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, "Do you consent to a background check?", questions[0].QuestionText)
}

func TestGetActiveQuestionsIgnoresExpiredEntries(t *testing.T) {
	questionCacheMu.Lock()
	questionCache[102] = &questionCacheEntry{
		questions: []models.FormQuestion{{QuestionID: 2, CompanyID: 102}},
		fetchedAt: time.Now().Add(-questionTTL - time.Second),
	}
	questionCacheMu.Unlock()
	defer ClearQuestionCache(102)

	questionCacheMu.RLock()
	entry := questionCache[102]
	questionCacheMu.RUnlock()
	assert.NotNil(t, entry)
	assert.False(t, time.Since(entry.fetchedAt) < questionTTL)
}

func TestClearQuestionCache(t *testing.T) {
	questionCacheMu.Lock()
	questionCache[103] = &questionCacheEntry{fetchedAt: time.Now()}
	questionCacheMu.Unlock()

	ClearQuestionCache(103)

	questionCacheMu.RLock()
	_, ok := questionCache[103]
	questionCacheMu.RUnlock()
	assert.False(t, ok)
}
