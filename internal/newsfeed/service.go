// Package newsfeed holds the operations behind the GraphQL API: ownership
// and authentication gates over the stores, plus the values derived per viewer.
package newsfeed

import (
	"context"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/internal/auth"
	"github.com/VitaminP8/newsfeed/internal/comment"
	"github.com/VitaminP8/newsfeed/internal/like"
	"github.com/VitaminP8/newsfeed/internal/post"
	"github.com/VitaminP8/newsfeed/internal/user"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/pkg/errors"
)

// Stores: набор хранилищ, с которыми работает сервис
type Stores struct {
	Users    user.UserStorage
	Posts    post.PostStorage
	Comments comment.CommentStorage
	Likes    like.LikeStorage
}

type Service struct {
	users    user.UserStorage
	posts    post.PostStorage
	comments comment.CommentStorage
	likes    like.LikeStorage
	tokens   *auth.TokenService
}

func NewService(stores Stores, tokens *auth.TokenService) *Service {
	return &Service{
		users:    stores.Users,
		posts:    stores.Posts,
		comments: stores.Comments,
		likes:    stores.Likes,
		tokens:   tokens,
	}
}

// requireUser возвращает пользователя запроса или ErrUnauthenticated
func requireUser(ctx context.Context) (*models.User, error) {
	u, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, errors.Wrap(apperr.ErrUnauthenticated, "login required")
	}
	return u, nil
}

func requireOwner(u *models.User, authorID uint, entity string, id uint) error {
	if u.ID != authorID {
		return errors.Wrapf(apperr.ErrForbidden, "user %d is not the author of %s %d", u.ID, entity, id)
	}
	return nil
}

func (s *Service) Me(ctx context.Context) (*models.User, error) {
	return requireUser(ctx)
}

func (s *Service) UserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// IsAuthor сравнивает автора с пользователем запроса; аноним никогда не автор
func (s *Service) IsAuthor(ctx context.Context, authorID uint) bool {
	u, ok := auth.UserFromContext(ctx)
	return ok && u.ID == authorID
}

// CanSeeEmail: email виден только самому пользователю
func (s *Service) CanSeeEmail(ctx context.Context, userID uint) bool {
	return s.IsAuthor(ctx, userID)
}

func (s *Service) IsLiked(ctx context.Context, postID uint) (bool, error) {
	u, ok := auth.UserFromContext(ctx)
	if !ok {
		return false, nil
	}
	return s.likes.IsLiked(ctx, u.ID, postID)
}

func (s *Service) LikesCount(ctx context.Context, postID uint) (int, error) {
	return s.likes.CountLikesByPost(ctx, postID)
}

func (s *Service) CommentsCount(ctx context.Context, postID uint) (int, error) {
	return s.comments.CountCommentsByPost(ctx, postID)
}

func (s *Service) Likes(ctx context.Context, postID uint) ([]*models.Like, error) {
	return s.likes.GetLikesByPost(ctx, postID)
}
