package user

import (
	"context"

	"github.com/VitaminP8/newsfeed/models"
)

type UserStorage interface {
	// CreateUser возвращает apperr.ErrConflict, если username занят
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	// DeleteUserByID удаляет пользователя, его посты, комментарии и лайки
	DeleteUserByID(ctx context.Context, id uint) error
}
