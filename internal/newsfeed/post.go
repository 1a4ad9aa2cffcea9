package newsfeed

import (
	"context"

	"github.com/VitaminP8/newsfeed/models"
)

func (s *Service) AllPosts(ctx context.Context) ([]*models.Post, error) {
	return s.posts.GetAllPosts(ctx)
}

func (s *Service) Post(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetPostByID(ctx, id)
}

func (s *Service) CreatePost(ctx context.Context, title, content string) (*models.Post, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		UserID:  u.ID,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost меняет только переданные непустые поля
func (s *Service) UpdatePost(ctx context.Context, id uint, patch models.PostPatch) (*models.Post, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(u, post.UserID, "post", id); err != nil {
		return nil, err
	}

	return s.posts.UpdatePost(ctx, id, models.PostPatch{
		Title:   nonEmpty(patch.Title),
		Content: nonEmpty(patch.Content),
	})
}

// DeletePost возвращает пост в том виде, в котором он был до удаления
func (s *Service) DeletePost(ctx context.Context, id uint) (*models.Post, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(u, post.UserID, "post", id); err != nil {
		return nil, err
	}

	if err := s.posts.DeletePostByID(ctx, id); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) LikePost(ctx context.Context, postID uint) (*models.Post, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.likes.LikePost(ctx, u.ID, postID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) UnlikePost(ctx context.Context, postID uint) (*models.Post, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.likes.UnlikePost(ctx, u.ID, postID); err != nil {
		return nil, err
	}
	return post, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
