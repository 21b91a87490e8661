package migrations

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rajivgeraev/deals-api/internal/logger"
)

// Open подключается к PostgreSQL через gorm для выполнения миграций
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate создает или обновляет таблицы сервиса
func Migrate(db *gorm.DB, log logger.Logger) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
		log.Debug("table migrated", logger.Fields{"model": fmt.Sprintf("%T", model)})
	}

	log.Info("✅ Миграции применены", logger.Fields{"tables": len(Models())})
	return nil
}
