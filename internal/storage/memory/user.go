package memory

import (
	"context"
	"sort"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/pkg/errors"
)

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return errors.Wrapf(apperr.ErrConflict, "user %s already exists", user.Username)
		}
	}

	now := s.now()
	user.ID = s.nextUserID
	s.nextUserID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return nil, errors.Wrapf(apperr.ErrNotFound, "user %d", id)
	}
	found := *u
	return &found, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, errors.Wrapf(apperr.ErrNotFound, "user %s", username)
}

func (s *Storage) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		found := *u
		users = append(users, &found)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Storage) DeleteUserByID(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return errors.Wrapf(apperr.ErrNotFound, "user %d", id)
	}

	for postID, p := range s.posts {
		if p.UserID == id {
			s.deletePostLocked(postID)
		}
	}
	for commentID, c := range s.comments {
		if c.UserID == id {
			delete(s.comments, commentID)
		}
	}
	for key := range s.likes {
		if key.userID == id {
			delete(s.likes, key)
		}
	}
	delete(s.users, id)
	return nil
}
