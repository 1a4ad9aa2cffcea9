package graph

import (
	"context"
	"time"

	"github.com/VitaminP8/newsfeed/internal/newsfeed"
	"github.com/VitaminP8/newsfeed/models"
	graphql "github.com/graph-gophers/graphql-go"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (r *Resolver) posts(posts []*models.Post) []*postResolver {
	res := make([]*postResolver, 0, len(posts))
	for _, p := range posts {
		res = append(res, &postResolver{r: r, post: p})
	}
	return res
}

func (r *Resolver) comments(comments []*models.Comment) []*commentResolver {
	res := make([]*commentResolver, 0, len(comments))
	for _, c := range comments {
		res = append(res, &commentResolver{r: r, comment: c})
	}
	return res
}

// author загружает автора; ошибка для non-null поля уходит в errors ответа
func (r *Resolver) author(ctx context.Context, field string, id uint) (*userResolver, error) {
	u, err := r.svc.UserByID(ctx, id)
	if err != nil {
		r.fail(ctx, field, err)
		return nil, err
	}
	return &userResolver{r: r, user: u}, nil
}

type postResolver struct {
	r    *Resolver
	post *models.Post
}

func (p *postResolver) ID() graphql.ID { return toID(p.post.ID) }
func (p *postResolver) Title() string { return p.post.Title }
func (p *postResolver) Content() string { return p.post.Content }
func (p *postResolver) CreatedAt() string { return formatTime(p.post.CreatedAt) }
func (p *postResolver) UpdatedAt() string { return formatTime(p.post.UpdatedAt) }

func (p *postResolver) Author(ctx context.Context) (*userResolver, error) {
	return p.r.author(ctx, "Post.author", p.post.UserID)
}

func (p *postResolver) IsAuthor(ctx context.Context) bool {
	return p.r.svc.IsAuthor(ctx, p.post.UserID)
}

func (p *postResolver) LikesCount(ctx context.Context) (int32, error) {
	n, err := p.r.svc.LikesCount(ctx, p.post.ID)
	if err != nil {
		p.r.fail(ctx, "Post.likesCount", err)
		return 0, err
	}
	return int32(n), nil
}

func (p *postResolver) CommentsCount(ctx context.Context) (int32, error) {
	n, err := p.r.svc.CommentsCount(ctx, p.post.ID)
	if err != nil {
		p.r.fail(ctx, "Post.commentsCount", err)
		return 0, err
	}
	return int32(n), nil
}

func (p *postResolver) Likes(ctx context.Context) ([]*likeResolver, error) {
	likes, err := p.r.svc.Likes(ctx, p.post.ID)
	if err != nil {
		p.r.fail(ctx, "Post.likes", err)
		return nil, err
	}
	res := make([]*likeResolver, 0, len(likes))
	for _, l := range likes {
		res = append(res, &likeResolver{r: p.r, like: l})
	}
	return res, nil
}

func (p *postResolver) Comments(ctx context.Context) ([]*commentResolver, error) {
	comments, err := p.r.svc.PostComments(ctx, p.post.ID)
	if err != nil {
		p.r.fail(ctx, "Post.comments", err)
		return nil, err
	}
	return p.r.comments(comments), nil
}

func (p *postResolver) IsLiked(ctx context.Context) (bool, error) {
	liked, err := p.r.svc.IsLiked(ctx, p.post.ID)
	if err != nil {
		p.r.fail(ctx, "Post.isLiked", err)
		return false, err
	}
	return liked, nil
}

type commentResolver struct {
	r       *Resolver
	comment *models.Comment
}

func (c *commentResolver) ID() graphql.ID { return toID(c.comment.ID) }
func (c *commentResolver) Content() string { return c.comment.Content }
func (c *commentResolver) CreatedAt() string { return formatTime(c.comment.CreatedAt) }
func (c *commentResolver) UpdatedAt() string { return formatTime(c.comment.UpdatedAt) }

func (c *commentResolver) Author(ctx context.Context) (*userResolver, error) {
	return c.r.author(ctx, "Comment.author", c.comment.UserID)
}

func (c *commentResolver) IsAuthor(ctx context.Context) bool {
	return c.r.svc.IsAuthor(ctx, c.comment.UserID)
}

type likeResolver struct {
	r    *Resolver
	like *models.Like
}

func (l *likeResolver) ID() graphql.ID { return toID(l.like.ID) }
func (l *likeResolver) CreatedAt() string { return formatTime(l.like.CreatedAt) }

func (l *likeResolver) User(ctx context.Context) (*userResolver, error) {
	return l.r.author(ctx, "Like.user", l.like.UserID)
}

type userResolver struct {
	r    *Resolver
	user *models.User
	// self: пользователь только что вошел или зарегистрировался, и это его собственные данные
	self bool
}

func (u *userResolver) ID() graphql.ID { return toID(u.user.ID) }
func (u *userResolver) Username() string { return u.user.Username }

func (u *userResolver) FirstName() *string { return &u.user.FirstName }
func (u *userResolver) LastName() *string { return &u.user.LastName }

// Email отдается только самому пользователю
func (u *userResolver) Email(ctx context.Context) *string {
	if u.self || u.r.svc.CanSeeEmail(ctx, u.user.ID) {
		return &u.user.Email
	}
	return nil
}

type authPayloadResolver struct {
	r       *Resolver
	payload *newsfeed.AuthPayload
}

func (a *authPayloadResolver) Token() *string { return &a.payload.Token }

func (a *authPayloadResolver) User() *userResolver {
	return &userResolver{r: a.r, user: a.payload.User, self: true}
}
