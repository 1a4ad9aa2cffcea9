package main

import (
	"github.com/VitaminP8/newsfeed/internal/config"
	"github.com/VitaminP8/newsfeed/internal/logger"
	"github.com/VitaminP8/newsfeed/internal/newsfeed"
	"github.com/VitaminP8/newsfeed/internal/storage/memory"
	"github.com/VitaminP8/newsfeed/internal/storage/postgres"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app хранит общие зависимости всех команд
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB
	stores newsfeed.Stores
}

func newApp(cmd *cobra.Command) (*app, error) {
	// загружаем .env до чтения переменных окружения
	config.LoadEnv()

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}
	if err := a.openStorage(); err != nil {
		_ = log.Sync()
		return nil, err
	}
	return a, nil
}

func (a *app) openStorage() error {
	switch a.cfg.Storage {
	case config.StoragePostgres:
		db, err := postgres.InitDB(a.cfg.DB, a.log)
		if err != nil {
			return err
		}
		a.db = db
		a.stores = newsfeed.Stores{
			Users:    postgres.NewUserPostgresStorage(db),
			Posts:    postgres.NewPostPostgresStorage(db),
			Comments: postgres.NewCommentPostgresStorage(db),
			Likes:    postgres.NewLikePostgresStorage(db),
		}
		a.log.Info("using postgres storage")

	case config.StorageMemory:
		store := memory.NewStorage()
		a.stores = newsfeed.Stores{Users: store, Posts: store, Comments: store, Likes: store}
		a.log.Info("using in-memory storage")

	default:
		return errors.Errorf("unknown storage type: %s", a.cfg.Storage)
	}
	return nil
}

// migrate создает схему; для in-memory хранилища ничего не делает
func (a *app) migrate() error {
	if a.db == nil {
		return nil
	}
	if err := postgres.Migrate(a.db); err != nil {
		return err
	}
	a.log.Info("database migrated")
	return nil
}

func (a *app) close() {
	if err := postgres.CloseDB(a.db); err != nil {
		a.log.Error("failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}
