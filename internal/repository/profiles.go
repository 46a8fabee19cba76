package repository

import (
	"context"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/database"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"

	"gorm.io/gorm/clause"
)

// GetProfile reads a user's weakness profile. Absence surfaces as
// gorm.ErrRecordNotFound; callers treat that as a normal state.
func GetProfile(ctx context.Context, userID uint) (*models.WeaknessProfile, error) {
	var profile models.WeaknessProfile
	err := database.DB.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ReplaceProfile writes the freshly computed profile, replacing any previous
// record wholesale. Profiles are never merged.
func ReplaceProfile(ctx context.Context, profile *models.WeaknessProfile) error {
	return database.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}
