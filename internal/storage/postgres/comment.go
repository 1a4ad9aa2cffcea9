package postgres

import (
	"context"

	"github.com/VitaminP8/newsfeed/models"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

type CommentPostgresStorage struct {
	db *gorm.DB
}

func NewCommentPostgresStorage(db *gorm.DB) *CommentPostgresStorage {
	return &CommentPostgresStorage{db: db}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, comment *models.Comment) error {
	err := s.db.Create(comment).Error
	if err != nil {
		return errors.Wrap(err, "could not create comment")
	}
	return nil
}

func (s *CommentPostgresStorage) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.First(&comment, id).Error
	if err != nil {
		return nil, notFoundOr(err, "comment %d", id)
	}
	return &comment, nil
}

func (s *CommentPostgresStorage) GetCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.db.Where("post_id = ?", postID).
		Order("created_at desc").
		Order("id desc").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not get comments")
	}
	return comments, nil
}

func (s *CommentPostgresStorage) CountCommentsByPost(ctx context.Context, postID uint) (int, error) {
	var count int
	err := s.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "could not count comments")
	}
	return count, nil
}

func (s *CommentPostgresStorage) UpdateComment(ctx context.Context, id uint, content string) (*models.Comment, error) {
	comment, err := s.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	err = s.db.Save(comment).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not update comment")
	}
	return comment, nil
}

func (s *CommentPostgresStorage) DeleteCommentByID(ctx context.Context, id uint) error {
	if _, err := s.GetCommentByID(ctx, id); err != nil {
		return err
	}

	err := s.db.Where("id = ?", id).Delete(&models.Comment{}).Error
	if err != nil {
		return errors.Wrap(err, "could not delete comment")
	}
	return nil
}
