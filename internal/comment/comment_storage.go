package comment

import (
	"context"

	"github.com/VitaminP8/newsfeed/models"
)

type CommentStorage interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	// GetCommentsByPost возвращает комментарии поста, новые сначала
	GetCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	CountCommentsByPost(ctx context.Context, postID uint) (int, error)
	UpdateComment(ctx context.Context, id uint, content string) (*models.Comment, error)
	DeleteCommentByID(ctx context.Context, id uint) error
}
