package database

import (
	"fmt"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/config"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/logging"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	gormLogger := logging.NewGormZapLogger(log)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create composite indexes with ordering, so the batch
	// window index is handled separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.KeystrokeBatch{},
		&models.WeaknessProfile{},
		&models.SessionResult{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// The aggregator scans per user over a trailing receipt-time window.
	batchIndex := `CREATE INDEX IF NOT EXISTS idx_batches_window ON keystroke_batches (user_id, received_at DESC);`
	if err := DB.Exec(batchIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on batch table", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
