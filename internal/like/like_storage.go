package like

import (
	"context"

	"github.com/VitaminP8/newsfeed/models"
)

type LikeStorage interface {
	// LikePost идемпотентен: повторный вызов не создает второй лайк
	LikePost(ctx context.Context, userID, postID uint) error
	// UnlikePost ничего не делает, если лайка нет
	UnlikePost(ctx context.Context, userID, postID uint) error
	GetLikesByPost(ctx context.Context, postID uint) ([]*models.Like, error)
	CountLikesByPost(ctx context.Context, postID uint) (int, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
}
