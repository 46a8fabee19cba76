package repository

import (
	"context"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/database"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"
)

// SaveResult stores a completed session summary.
func SaveResult(ctx context.Context, result *models.SessionResult) error {
	return database.DB.WithContext(ctx).Create(result).Error
}

// GetResultBySessionID loads one stored session summary.
func GetResultBySessionID(ctx context.Context, sessionID string) (*models.SessionResult, error) {
	var result models.SessionResult
	err := database.DB.WithContext(ctx).First(&result, "session_id = ?", sessionID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRecentResults lists a user's latest session summaries.
func GetRecentResults(ctx context.Context, userID uint, limit int) ([]models.SessionResult, error) {
	var results []models.SessionResult
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}
