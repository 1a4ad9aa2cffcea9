package post

import (
	"context"

	"github.com/VitaminP8/newsfeed/models"
)

type PostStorage interface {
	// CreatePost сохраняет пост; заполненный CreatedAt не перезаписывается (нужно для сидов)
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error)
	// DeletePostByID удаляет пост вместе с комментариями и лайками
	DeletePostByID(ctx context.Context, id uint) error
}
