package postgres

import (
	"context"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

type UserPostgresStorage struct {
	db *gorm.DB
}

func NewUserPostgresStorage(db *gorm.DB) *UserPostgresStorage {
	return &UserPostgresStorage{db: db}
}

func (s *UserPostgresStorage) CreateUser(ctx context.Context, user *models.User) error {
	// проверка - существует ли такой пользователь
	taken, err := s.usernameTaken(user.Username)
	if err != nil {
		return err
	}
	if taken {
		return errors.Wrapf(apperr.ErrConflict, "user with username %s already exists", user.Username)
	}

	err = s.db.Create(user).Error
	if err != nil {
		// между проверкой и вставкой username мог занять параллельный запрос
		if taken, _ := s.usernameTaken(user.Username); taken {
			return errors.Wrapf(apperr.ErrConflict, "user with username %s already exists", user.Username)
		}
		return errors.Wrap(err, "could not create user")
	}
	return nil
}

func (s *UserPostgresStorage) usernameTaken(username string) (bool, error) {
	var count int
	err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "could not check username")
	}
	return count > 0, nil
}

func (s *UserPostgresStorage) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if err != nil {
		return nil, notFoundOr(err, "user %d", id)
	}
	return &user, nil
}

func (s *UserPostgresStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, notFoundOr(err, "user %s", username)
	}
	return &user, nil
}

func (s *UserPostgresStorage) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.db.Order("id asc").Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not get users")
	}
	return users, nil
}

func (s *UserPostgresStorage) DeleteUserByID(ctx context.Context, id uint) error {
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}

	return inTx(s.db, func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return errors.Wrap(err, "could not get user posts")
		}
		for _, postID := range postIDs {
			if err := deletePostTree(tx, postID); err != nil {
				return err
			}
		}

		// лайки и комментарии пользователя под чужими постами
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return errors.Wrap(err, "could not delete likes")
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return errors.Wrap(err, "could not delete comments")
		}
		if err := tx.Where("id = ?", id).Delete(&models.User{}).Error; err != nil {
			return errors.Wrap(err, "could not delete user")
		}
		return nil
	})
}

// notFoundOr переводит gorm.ErrRecordNotFound в apperr.ErrNotFound
func notFoundOr(err error, format string, args ...interface{}) error {
	if gorm.IsRecordNotFoundError(err) {
		return errors.Wrapf(apperr.ErrNotFound, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}

func inTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "could not begin transaction")
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "could not commit transaction")
	}
	return nil
}
