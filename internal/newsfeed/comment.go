package newsfeed

import (
	"context"
	"strings"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/pkg/errors"
)

// PostComments отдает комментарии поста, новые первыми; для несуществующего поста список пуст
func (s *Service) PostComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.comments.GetCommentsByPost(ctx, postID)
}

func (s *Service) CreateComment(ctx context.Context, postID uint, content string) (*models.Comment, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, errors.Wrap(apperr.ErrValidation, "comment content is empty")
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		PostID:  postID,
		UserID:  u.ID,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment полностью заменяет текст комментария
func (s *Service) UpdateComment(ctx context.Context, id uint, content string) (*models.Comment, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(u, comment.UserID, "comment", id); err != nil {
		return nil, err
	}

	return s.comments.UpdateComment(ctx, id, content)
}

func (s *Service) DeleteComment(ctx context.Context, id uint) (*models.Comment, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(u, comment.UserID, "comment", id); err != nil {
		return nil, err
	}

	if err := s.comments.DeleteCommentByID(ctx, id); err != nil {
		return nil, err
	}
	return comment, nil
}
