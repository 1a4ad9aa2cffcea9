package memory

import (
	"context"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/pkg/errors"
)

func (s *Storage) LikePost(ctx context.Context, userID, postID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[postID]; !exists {
		return errors.Wrapf(apperr.ErrNotFound, "post %d", postID)
	}

	key := likeKey{userID: userID, postID: postID}
	if _, exists := s.likes[key]; exists {
		return nil
	}

	s.likes[key] = &models.Like{
		ID:        s.nextLikeID,
		UserID:    userID,
		PostID:    postID,
		CreatedAt: s.now(),
	}
	s.nextLikeID++
	return nil
}

func (s *Storage) UnlikePost(ctx context.Context, userID, postID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.likes, likeKey{userID: userID, postID: postID})
	return nil
}

func (s *Storage) GetLikesByPost(ctx context.Context, postID uint) ([]*models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	likes := []*models.Like{}
	for key, l := range s.likes {
		if key.postID == postID {
			found := *l
			likes = append(likes, &found)
		}
	}
	sortLikes(likes)
	return likes, nil
}

func (s *Storage) CountLikesByPost(ctx context.Context, postID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key := range s.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

func (s *Storage) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.likes[likeKey{userID: userID, postID: postID}]
	return exists, nil
}
