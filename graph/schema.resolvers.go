package graph

import (
	"context"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/internal/newsfeed"
	"github.com/VitaminP8/newsfeed/models"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"
)

// Любая ошибка операции превращается в null (или пустой список) через r.fail.

type createPostInput struct {
	Title   string
	Content string
}

type updatePostInput struct {
	Title   *string
	Content *string
}

type signupInput struct {
	Username  string
	Password  string
	Email     string
	FirstName *string
	LastName  *string
}

type loginInput struct {
	Username string
	Password string
}

type createCommentInput struct {
	PostID  graphql.ID
	Content string
}

type updateCommentInput struct {
	Content string
}

// Query

func (r *Resolver) AllPosts(ctx context.Context) []*postResolver {
	posts, err := r.svc.AllPosts(ctx)
	if err != nil {
		r.fail(ctx, "allPosts", err)
		return []*postResolver{}
	}
	return r.posts(posts)
}

func (r *Resolver) Post(ctx context.Context, args struct{ ID graphql.ID }) *postResolver {
	id, err := parseID(args.ID)
	if err != nil {
		r.fail(ctx, "post", err)
		return nil
	}

	post, err := r.svc.Post(ctx, id)
	if err != nil {
		r.fail(ctx, "post", err)
		return nil
	}
	return &postResolver{r: r, post: post}
}

// Me для анонима просто null, это не ошибка
func (r *Resolver) Me(ctx context.Context) *userResolver {
	u, err := r.svc.Me(ctx)
	if err != nil {
		if !errors.Is(err, apperr.ErrUnauthenticated) {
			r.fail(ctx, "me", err)
		}
		return nil
	}
	return &userResolver{r: r, user: u}
}

func (r *Resolver) PostComments(ctx context.Context, args struct{ PostID graphql.ID }) []*commentResolver {
	postID, err := parseID(args.PostID)
	if err != nil {
		r.fail(ctx, "postComments", err)
		return []*commentResolver{}
	}

	comments, err := r.svc.PostComments(ctx, postID)
	if err != nil {
		r.fail(ctx, "postComments", err)
		return []*commentResolver{}
	}
	return r.comments(comments)
}

// Mutation: посты

func (r *Resolver) CreatePost(ctx context.Context, args struct{ Input createPostInput }) *postResolver {
	post, err := r.svc.CreatePost(ctx, args.Input.Title, args.Input.Content)
	return r.postOrNull(ctx, "createPost", post, err)
}

func (r *Resolver) UpdatePost(ctx context.Context, args struct {
	ID    graphql.ID
	Input updatePostInput
}) *postResolver {
	id, err := parseID(args.ID)
	if err != nil {
		return r.postOrNull(ctx, "updatePost", nil, err)
	}

	post, err := r.svc.UpdatePost(ctx, id, models.PostPatch{
		Title:   args.Input.Title,
		Content: args.Input.Content,
	})
	return r.postOrNull(ctx, "updatePost", post, err)
}

func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID graphql.ID }) *postResolver {
	id, err := parseID(args.ID)
	if err != nil {
		return r.postOrNull(ctx, "deletePost", nil, err)
	}

	post, err := r.svc.DeletePost(ctx, id)
	return r.postOrNull(ctx, "deletePost", post, err)
}

func (r *Resolver) LikePost(ctx context.Context, args struct{ PostID graphql.ID }) *postResolver {
	postID, err := parseID(args.PostID)
	if err != nil {
		return r.postOrNull(ctx, "likePost", nil, err)
	}

	post, err := r.svc.LikePost(ctx, postID)
	return r.postOrNull(ctx, "likePost", post, err)
}

func (r *Resolver) UnlikePost(ctx context.Context, args struct{ PostID graphql.ID }) *postResolver {
	postID, err := parseID(args.PostID)
	if err != nil {
		return r.postOrNull(ctx, "unlikePost", nil, err)
	}

	post, err := r.svc.UnlikePost(ctx, postID)
	return r.postOrNull(ctx, "unlikePost", post, err)
}

// Mutation: комментарии

func (r *Resolver) CreateComment(ctx context.Context, args struct{ Input createCommentInput }) *commentResolver {
	postID, err := parseID(args.Input.PostID)
	if err != nil {
		return r.commentOrNull(ctx, "createComment", nil, err)
	}

	comment, err := r.svc.CreateComment(ctx, postID, args.Input.Content)
	return r.commentOrNull(ctx, "createComment", comment, err)
}

func (r *Resolver) UpdateComment(ctx context.Context, args struct {
	ID    graphql.ID
	Input updateCommentInput
}) *commentResolver {
	id, err := parseID(args.ID)
	if err != nil {
		return r.commentOrNull(ctx, "updateComment", nil, err)
	}

	comment, err := r.svc.UpdateComment(ctx, id, args.Input.Content)
	return r.commentOrNull(ctx, "updateComment", comment, err)
}

func (r *Resolver) DeleteComment(ctx context.Context, args struct{ ID graphql.ID }) *commentResolver {
	id, err := parseID(args.ID)
	if err != nil {
		return r.commentOrNull(ctx, "deleteComment", nil, err)
	}

	comment, err := r.svc.DeleteComment(ctx, id)
	return r.commentOrNull(ctx, "deleteComment", comment, err)
}

// Mutation: аутентификация

func (r *Resolver) Signup(ctx context.Context, args struct{ Input signupInput }) *authPayloadResolver {
	payload, err := r.svc.Signup(ctx, newsfeed.SignupInput{
		Username:  args.Input.Username,
		Password:  args.Input.Password,
		Email:     args.Input.Email,
		FirstName: deref(args.Input.FirstName),
		LastName:  deref(args.Input.LastName),
	})
	if err != nil {
		r.fail(ctx, "signup", err)
		return nil
	}
	return &authPayloadResolver{r: r, payload: payload}
}

func (r *Resolver) Login(ctx context.Context, args struct{ Input loginInput }) *authPayloadResolver {
	payload, err := r.svc.Login(ctx, newsfeed.LoginInput{
		Username: args.Input.Username,
		Password: args.Input.Password,
	})
	if err != nil {
		r.fail(ctx, "login", err)
		return nil
	}
	return &authPayloadResolver{r: r, payload: payload}
}

func (r *Resolver) VerifyToken(ctx context.Context, args struct{ Token string }) *bool {
	ok, err := r.svc.VerifyToken(ctx, args.Token)
	if err != nil {
		r.fail(ctx, "verifyToken", err)
		return nil
	}
	return &ok
}

func (r *Resolver) RefreshToken(ctx context.Context, args struct{ Token string }) *string {
	token, err := r.svc.RefreshToken(ctx, args.Token)
	if err != nil {
		r.fail(ctx, "refreshToken", err)
		return nil
	}
	return &token
}

func (r *Resolver) postOrNull(ctx context.Context, operation string, post *models.Post, err error) *postResolver {
	if err != nil {
		r.fail(ctx, operation, err)
		return nil
	}
	return &postResolver{r: r, post: post}
}

func (r *Resolver) commentOrNull(ctx context.Context, operation string, comment *models.Comment, err error) *commentResolver {
	if err != nil {
		r.fail(ctx, operation, err)
		return nil
	}
	return &commentResolver{r: r, comment: comment}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
