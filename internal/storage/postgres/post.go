package postgres

import (
	"context"

	"github.com/VitaminP8/newsfeed/models"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

type PostPostgresStorage struct {
	db *gorm.DB
}

func NewPostPostgresStorage(db *gorm.DB) *PostPostgresStorage {
	return &PostPostgresStorage{db: db}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, post *models.Post) error {
	err := s.db.Create(post).Error
	if err != nil {
		return errors.Wrap(err, "could not create post")
	}
	return nil
}

func (s *PostPostgresStorage) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.First(&post, id).Error
	if err != nil {
		return nil, notFoundOr(err, "post %d", id)
	}
	return &post, nil
}

func (s *PostPostgresStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := s.db.Order("created_at desc").Order("id desc").Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not get posts")
	}
	return posts, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error) {
	post, err := s.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}

	// Save обновляет и updated_at
	err = s.db.Save(post).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not update post")
	}
	return post, nil
}

func (s *PostPostgresStorage) DeletePostByID(ctx context.Context, id uint) error {
	if _, err := s.GetPostByID(ctx, id); err != nil {
		return err
	}

	return inTx(s.db, func(tx *gorm.DB) error {
		return deletePostTree(tx, id)
	})
}

// deletePostTree удаляет пост и все, что к нему привязано
func deletePostTree(tx *gorm.DB, postID uint) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
		return errors.Wrap(err, "could not delete post likes")
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return errors.Wrap(err, "could not delete post comments")
	}
	if err := tx.Where("id = ?", postID).Delete(&models.Post{}).Error; err != nil {
		return errors.Wrap(err, "could not delete post")
	}
	return nil
}
