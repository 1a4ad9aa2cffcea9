package memory

import (
	"context"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/pkg/errors"
)

func (s *Storage) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	post.ID = s.nextPostID
	s.nextPostID++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.CreatedAt
	}

	stored := *post
	s.posts[post.ID] = &stored
	return nil
}

func (s *Storage) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, errors.Wrapf(apperr.ErrNotFound, "post %d", id)
	}
	found := *post
	return &found, nil
}

func (s *Storage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]*models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		found := *post
		posts = append(posts, &found)
	}
	sortPosts(posts)
	return posts, nil
}

func (s *Storage) UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, errors.Wrapf(apperr.ErrNotFound, "post %d", id)
	}

	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	post.UpdatedAt = s.now()

	updated := *post
	return &updated, nil
}

func (s *Storage) DeletePostByID(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[id]; !exists {
		return errors.Wrapf(apperr.ErrNotFound, "post %d", id)
	}

	s.deletePostLocked(id)
	return nil
}
