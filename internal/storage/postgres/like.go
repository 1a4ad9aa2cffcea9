package postgres

import (
	"context"

	"github.com/VitaminP8/newsfeed/models"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

type LikePostgresStorage struct {
	db *gorm.DB
}

func NewLikePostgresStorage(db *gorm.DB) *LikePostgresStorage {
	return &LikePostgresStorage{db: db}
}

func (s *LikePostgresStorage) LikePost(ctx context.Context, userID, postID uint) error {
	liked, err := s.IsLiked(ctx, userID, postID)
	if err != nil {
		return err
	}
	if liked {
		return nil
	}

	err = s.db.Create(&models.Like{UserID: userID, PostID: postID}).Error
	if err != nil {
		// уникальный индекс idx_like_user_post: параллельный запрос успел вставить тот же лайк
		if liked, _ := s.IsLiked(ctx, userID, postID); liked {
			return nil
		}
		return errors.Wrap(err, "could not create like")
	}
	return nil
}

func (s *LikePostgresStorage) UnlikePost(ctx context.Context, userID, postID uint) error {
	err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{}).Error
	if err != nil {
		return errors.Wrap(err, "could not delete like")
	}
	return nil
}

func (s *LikePostgresStorage) GetLikesByPost(ctx context.Context, postID uint) ([]*models.Like, error) {
	var likes []*models.Like
	err := s.db.Where("post_id = ?", postID).Order("created_at desc").Order("id desc").Find(&likes).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not get likes")
	}
	return likes, nil
}

func (s *LikePostgresStorage) CountLikesByPost(ctx context.Context, postID uint) (int, error) {
	var count int
	err := s.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "could not count likes")
	}
	return count, nil
}

func (s *LikePostgresStorage) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int
	err := s.db.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "could not check like")
	}
	return count > 0, nil
}
