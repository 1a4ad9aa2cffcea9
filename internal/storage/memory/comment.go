package memory

import (
	"context"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/pkg/errors"
)

func (s *Storage) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[comment.PostID]; !exists {
		return errors.Wrapf(apperr.ErrNotFound, "post %d", comment.PostID)
	}

	now := s.now()
	comment.ID = s.nextCommentID
	s.nextCommentID++
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (s *Storage) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, exists := s.comments[id]
	if !exists {
		return nil, errors.Wrapf(apperr.ErrNotFound, "comment %d", id)
	}
	found := *comment
	return &found, nil
}

func (s *Storage) GetCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := []*models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			found := *c
			comments = append(comments, &found)
		}
	}
	sortComments(comments)
	return comments, nil
}

func (s *Storage) CountCommentsByPost(ctx context.Context, postID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (s *Storage) UpdateComment(ctx context.Context, id uint, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, exists := s.comments[id]
	if !exists {
		return nil, errors.Wrapf(apperr.ErrNotFound, "comment %d", id)
	}

	comment.Content = content
	comment.UpdatedAt = s.now()

	updated := *comment
	return &updated, nil
}

func (s *Storage) DeleteCommentByID(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.comments[id]; !exists {
		return errors.Wrapf(apperr.ErrNotFound, "comment %d", id)
	}

	delete(s.comments, id)
	return nil
}
