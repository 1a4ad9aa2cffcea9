package postgres

import (
	"database/sql"
	"fmt"

	"github.com/VitaminP8/newsfeed/internal/config"
	"github.com/VitaminP8/newsfeed/models"
	_ "github.com/jackc/pgx/v5/stdlib" // драйвер "pgx" для database/sql
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DSN собирает строку подключения в формате key=value, который понимает pgx
func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
	)
}

// InitDB подключается к PostgreSQL через pgx и оборачивает соединение в gorm
func InitDB(cfg config.DBConfig, log *zap.Logger) (*gorm.DB, error) {
	sqlDB, err := sql.Open("pgx", DSN(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open pgx connection")
	}

	db, err := gorm.Open("postgres", sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "failed to connect to the database")
	}
	db.LogMode(false)

	log.Info("connected to the database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

// Migrate создает таблицы и индексы, включая уникальный индекс лайков
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}
	return nil
}

// CloseDB закрывает соединение с базой данных
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	err := db.Close()
	if err != nil {
		return errors.Wrap(err, "failed to close the database connection")
	}
	return nil
}
