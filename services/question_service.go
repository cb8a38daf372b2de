package services

import (
	"fmt"
	"sync"
	"time"

	"verification-api/config"
	"verification-api/models"
)

var (
	questionCacheMu sync.RWMutex
	questionCache   = make(map[int]*questionCacheEntry)
	questionTTL     = 5 * time.Minute
)

type questionCacheEntry struct {
	questions []models.FormQuestion
	fetchedAt time.Time
}

// GetActiveQuestions returns a company's active form questions in display
// order, served from a short-lived in-memory cache. The public submission
// form hits this on every render, so the extra query per request is not
// worth it.
func GetActiveQuestions(companyID int) ([]models.FormQuestion, error) {
	questionCacheMu.RLock()
	cached := questionCache[companyID]
	questionCacheMu.RUnlock()

	if cached != nil && time.Since(cached.fetchedAt) < questionTTL {
		return cached.questions, nil
	}

	questionCacheMu.Lock()
	defer questionCacheMu.Unlock()

	if cached = questionCache[companyID]; cached != nil && time.Since(cached.fetchedAt) < questionTTL {
		return cached.questions, nil
	}

	var rows []models.FormQuestion
	if err := config.DB.
		Where("company_id = ? AND is_active = 1 AND delete_at IS NULL", companyID).
		Order("question_order ASC, question_id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load form questions: %w", err)
	}

	questionCache[companyID] = &questionCacheEntry{
		questions: rows,
		fetchedAt: time.Now(),
	}
	return rows, nil
}

// ClearQuestionCache invalidates the cached question set for a company.
// Called after admin edits so the public form picks changes up immediately.
func ClearQuestionCache(companyID int) {
	questionCacheMu.Lock()
	defer questionCacheMu.Unlock()
	delete(questionCache, companyID)
}
