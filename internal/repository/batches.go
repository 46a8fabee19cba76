package repository

import (
	"context"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/database"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"

	"github.com/google/uuid"
)

// SaveBatch appends a keystroke batch. The store is strictly append-only:
// a retried flush gets a fresh row, never deduplicated.
func SaveBatch(ctx context.Context, payload models.BatchPayload, userID *uint, receivedAt time.Time) (*models.KeystrokeBatch, error) {
	batch := &models.KeystrokeBatch{
		ID:         uuid.NewString(),
		SessionID:  payload.SessionID,
		UserID:     userID,
		Events:     models.EventList(payload.Events),
		ReceivedAt: receivedAt,
	}
	err := database.DB.WithContext(ctx).Create(batch).Error
	return batch, err
}

// GetActiveUserIDs lists users with at least one stored batch since the
// window start.
func GetActiveUserIDs(ctx context.Context, since time.Time) ([]uint, error) {
	var ids []uint
	err := database.DB.WithContext(ctx).
		Model(&models.KeystrokeBatch{}).
		Distinct("user_id").
		Where("user_id IS NOT NULL AND received_at >= ?", since).
		Pluck("user_id", &ids).Error
	return ids, err
}

// GetRecentBatches loads up to limit of the user's most recent batches
// inside the window, returned in ascending receipt order. Each batch keeps
// its internal event order; nothing re-sorts events across batches.
func GetRecentBatches(ctx context.Context, userID uint, since time.Time, limit int) ([]models.KeystrokeBatch, error) {
	var batches []models.KeystrokeBatch
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND received_at >= ?", userID, since).
		Order("received_at DESC").
		Limit(limit).
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	// Most-recent-first selection, oldest-first processing.
	for i, j := 0, len(batches)-1; i < j; i, j = i+1, j-1 {
		batches[i], batches[j] = batches[j], batches[i]
	}
	return batches, nil
}
