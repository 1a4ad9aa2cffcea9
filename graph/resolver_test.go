package graph

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/VitaminP8/newsfeed/internal/auth"
	"github.com/VitaminP8/newsfeed/internal/metrics"
	"github.com/VitaminP8/newsfeed/internal/newsfeed"
	"github.com/VitaminP8/newsfeed/internal/storage/memory"
	"github.com/VitaminP8/newsfeed/models"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test_jwt_secret"

type testEnv struct {
	schema  *graphql.Schema
	store   *memory.Storage
	metrics *metrics.Metrics
	logs    *observer.ObservedLogs
	tokens  *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStorage()
	tokens := auth.NewTokenService(testSecret, time.Hour)
	svc := newsfeed.NewService(newsfeed.Stores{
		Users:    store,
		Posts:    store,
		Comments: store,
		Likes:    store,
	}, tokens)

	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New(prometheus.NewRegistry())

	return &testEnv{
		schema:  NewSchema(NewResolver(svc, zap.New(core), m)),
		store:   store,
		metrics: m,
		logs:    logs,
		tokens:  tokens,
	}
}

// exec выполняет запрос и раскладывает data в out; ошибок GraphQL быть не должно
func (e *testEnv) exec(t *testing.T, ctx context.Context, query string, vars map[string]interface{}, out interface{}) {
	t.Helper()
	resp := e.schema.Exec(ctx, query, "", vars)
	require.Empty(t, resp.Errors)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

// signup регистрирует пользователя через мутацию и возвращает контекст с ним
func (e *testEnv) signup(t *testing.T, username string) (context.Context, *models.User) {
	t.Helper()
	var data struct {
		Signup *authPayload `json:"signup"`
	}
	e.exec(t, context.Background(), signupMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"username": username,
			"password": username + "-pass",
			"email":    username + "@example.com",
		},
	}, &data)
	require.NotNil(t, data.Signup)

	u, err := e.store.GetUserByUsername(context.Background(), username)
	require.NoError(t, err)
	return auth.WithUser(context.Background(), u), u
}

type userData struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
}

type authPayload struct {
	Token *string   `json:"token"`
	User  *userData `json:"user"`
}

type postData struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Author        userData   `json:"author"`
	CreatedAt     string     `json:"createdAt"`
	IsAuthor      bool       `json:"isAuthor"`
	IsLiked       bool       `json:"isLiked"`
	LikesCount    int        `json:"likesCount"`
	CommentsCount int        `json:"commentsCount"`
	Likes         []likeData `json:"likes"`
}

type likeData struct {
	ID   string   `json:"id"`
	User userData `json:"user"`
}

type commentData struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Author   userData `json:"author"`
	IsAuthor bool     `json:"isAuthor"`
}

const signupMutation = `mutation Signup($input: SignupInput!) {
	signup(input: $input) { token user { id username email firstName } }
}`

const createPostMutation = `mutation CreatePost($input: CreatePostInput!) {
	createPost(input: $input) { id title content author { id username } isAuthor }
}`

const postQuery = `query Post($id: ID!) {
	post(id: $id) {
		id title content createdAt isAuthor isLiked likesCount commentsCount
		author { id username email }
		likes { id user { username } }
	}
}`

const deletePostMutation = `mutation DeletePost($id: ID!) { deletePost(id: $id) { id title } }`

const likePostMutation = `mutation LikePost($postId: ID!) { likePost(postId: $postId) { id likesCount isLiked } }`

func TestSchemaParses(t *testing.T) {
	assert.NotPanics(t, func() { newTestEnv(t) })
}

func TestPostLifecycle(t *testing.T) {
	env := newTestEnv(t)
	aliceCtx, alice := env.signup(t, "alice")
	bobCtx, _ := env.signup(t, "bob")
	anon := context.Background()

	var created struct {
		CreatePost *postData `json:"createPost"`
	}
	env.exec(t, aliceCtx, createPostMutation, map[string]interface{}{
		"input": map[string]interface{}{"title": "Hi", "content": "World"},
	}, &created)
	require.NotNil(t, created.CreatePost)
	assert.True(t, created.CreatePost.IsAuthor)
	assert.Equal(t, "alice", created.CreatePost.Author.Username)
	postID := created.CreatePost.ID

	t.Run("Anonymous view", func(t *testing.T) {
		var data struct {
			Post *postData `json:"post"`
		}
		env.exec(t, anon, postQuery, map[string]interface{}{"id": postID}, &data)
		require.NotNil(t, data.Post)
		assert.False(t, data.Post.IsAuthor)
		assert.False(t, data.Post.IsLiked)
		assert.Nil(t, data.Post.Author.Email)
		_, err := time.Parse(time.RFC3339, data.Post.CreatedAt)
		assert.NoError(t, err)
	})

	t.Run("Author sees own email", func(t *testing.T) {
		var data struct {
			Post *postData `json:"post"`
		}
		env.exec(t, aliceCtx, postQuery, map[string]interface{}{"id": postID}, &data)
		require.NotNil(t, data.Post.Author.Email)
		assert.Equal(t, alice.Email, *data.Post.Author.Email)
	})

	t.Run("Bob likes the post", func(t *testing.T) {
		var liked struct {
			LikePost *postData `json:"likePost"`
		}
		env.exec(t, bobCtx, likePostMutation, map[string]interface{}{"postId": postID}, &liked)
		require.NotNil(t, liked.LikePost)
		assert.Equal(t, 1, liked.LikePost.LikesCount)
		assert.True(t, liked.LikePost.IsLiked)

		var data struct {
			Post *postData `json:"post"`
		}
		env.exec(t, anon, postQuery, map[string]interface{}{"id": postID}, &data)
		require.Len(t, data.Post.Likes, 1)
		assert.Equal(t, "bob", data.Post.Likes[0].User.Username)
	})

	t.Run("Bob cannot delete", func(t *testing.T) {
		var data struct {
			DeletePost *postData `json:"deletePost"`
		}
		env.exec(t, bobCtx, deletePostMutation, map[string]interface{}{"id": postID}, &data)
		assert.Nil(t, data.DeletePost)

		var found struct {
			Post *postData `json:"post"`
		}
		env.exec(t, anon, postQuery, map[string]interface{}{"id": postID}, &found)
		assert.NotNil(t, found.Post)

		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.OperationFailures().WithLabelValues("deletePost", "forbidden")))
		entries := env.logs.FilterField(zap.String("operation", "deletePost")).All()
		require.Len(t, entries, 1)
		assert.Equal(t, "operation failed", entries[0].Message)
	})

	t.Run("Alice deletes", func(t *testing.T) {
		var data struct {
			DeletePost *postData `json:"deletePost"`
		}
		env.exec(t, aliceCtx, deletePostMutation, map[string]interface{}{"id": postID}, &data)
		require.NotNil(t, data.DeletePost)
		assert.Equal(t, "Hi", data.DeletePost.Title)

		var found struct {
			Post *postData `json:"post"`
		}
		env.exec(t, anon, postQuery, map[string]interface{}{"id": postID}, &found)
		assert.Nil(t, found.Post)
	})
}

func TestMutationsReturnNullOnFailure(t *testing.T) {
	env := newTestEnv(t)
	aliceCtx, _ := env.signup(t, "alice")

	t.Run("Anonymous createPost", func(t *testing.T) {
		var data struct {
			CreatePost *postData `json:"createPost"`
		}
		env.exec(t, context.Background(), createPostMutation, map[string]interface{}{
			"input": map[string]interface{}{"title": "t", "content": "c"},
		}, &data)
		assert.Nil(t, data.CreatePost)
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.OperationFailures().WithLabelValues("createPost", "unauthenticated")))
	})

	t.Run("Invalid id", func(t *testing.T) {
		var data struct {
			Post *postData `json:"post"`
		}
		env.exec(t, context.Background(), postQuery, map[string]interface{}{"id": "abc"}, &data)
		assert.Nil(t, data.Post)
	})

	t.Run("Blank comment", func(t *testing.T) {
		var created struct {
			CreatePost *postData `json:"createPost"`
		}
		env.exec(t, aliceCtx, createPostMutation, map[string]interface{}{
			"input": map[string]interface{}{"title": "t", "content": "c"},
		}, &created)
		require.NotNil(t, created.CreatePost)

		var data struct {
			CreateComment *commentData `json:"createComment"`
		}
		env.exec(t, aliceCtx, `mutation CreateComment($input: CreateCommentInput!) {
			createComment(input: $input) { id content }
		}`, map[string]interface{}{
			"input": map[string]interface{}{"postId": created.CreatePost.ID, "content": "   "},
		}, &data)
		assert.Nil(t, data.CreateComment)
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.OperationFailures().WithLabelValues("createComment", "validation")))
	})

	t.Run("Duplicate signup", func(t *testing.T) {
		var data struct {
			Signup *authPayload `json:"signup"`
		}
		env.exec(t, context.Background(), signupMutation, map[string]interface{}{
			"input": map[string]interface{}{"username": "alice", "password": "x", "email": "x@example.com"},
		}, &data)
		assert.Nil(t, data.Signup)

		users, err := env.store.GetAllUsers(context.Background())
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	aliceCtx, _ := env.signup(t, "alice")
	bobCtx, _ := env.signup(t, "bob")

	var created struct {
		CreatePost *postData `json:"createPost"`
	}
	env.exec(t, aliceCtx, createPostMutation, map[string]interface{}{
		"input": map[string]interface{}{"title": "t", "content": "c"},
	}, &created)
	require.NotNil(t, created.CreatePost)
	postID := created.CreatePost.ID

	createComment := `mutation CreateComment($input: CreateCommentInput!) {
		createComment(input: $input) { id content author { username } isAuthor }
	}`
	var first, second struct {
		CreateComment *commentData `json:"createComment"`
	}
	env.exec(t, bobCtx, createComment, map[string]interface{}{
		"input": map[string]interface{}{"postId": postID, "content": "first"},
	}, &first)
	require.NotNil(t, first.CreateComment)
	assert.True(t, first.CreateComment.IsAuthor)
	env.exec(t, aliceCtx, createComment, map[string]interface{}{
		"input": map[string]interface{}{"postId": postID, "content": "second"},
	}, &second)
	require.NotNil(t, second.CreateComment)

	t.Run("Listed newest first", func(t *testing.T) {
		var data struct {
			PostComments []commentData `json:"postComments"`
		}
		env.exec(t, bobCtx, `query GetPostComments($postId: ID!) {
			postComments(postId: $postId) { id content isAuthor author { username } }
		}`, map[string]interface{}{"postId": postID}, &data)
		require.Len(t, data.PostComments, 2)
		assert.Equal(t, "second", data.PostComments[0].Content)
		assert.False(t, data.PostComments[0].IsAuthor)
		assert.True(t, data.PostComments[1].IsAuthor)
	})

	t.Run("Update by non-author is null", func(t *testing.T) {
		var data struct {
			UpdateComment *commentData `json:"updateComment"`
		}
		env.exec(t, aliceCtx, `mutation UpdateComment($id: ID!, $input: UpdateCommentInput!) {
			updateComment(id: $id, input: $input) { id content }
		}`, map[string]interface{}{
			"id":    first.CreateComment.ID,
			"input": map[string]interface{}{"content": "hijacked"},
		}, &data)
		assert.Nil(t, data.UpdateComment)
	})

	t.Run("Comments count", func(t *testing.T) {
		var data struct {
			Post *postData `json:"post"`
		}
		env.exec(t, bobCtx, postQuery, map[string]interface{}{"id": postID}, &data)
		assert.Equal(t, 2, data.Post.CommentsCount)
	})
}

func TestAuthMutations(t *testing.T) {
	env := newTestEnv(t)
	anon := context.Background()

	var signed struct {
		Signup *authPayload `json:"signup"`
	}
	env.exec(t, anon, signupMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"username":  "carol",
			"password":  "pw",
			"email":     "carol@example.com",
			"firstName": "Carol",
		},
	}, &signed)
	require.NotNil(t, signed.Signup)
	require.NotNil(t, signed.Signup.Token)
	require.NotNil(t, signed.Signup.User.Email)
	assert.Equal(t, "carol@example.com", *signed.Signup.User.Email)
	assert.Equal(t, "Carol", *signed.Signup.User.FirstName)

	t.Run("Login", func(t *testing.T) {
		login := `mutation Login($input: LoginInput!) { login(input: $input) { token user { id username } } }`

		var ok struct {
			Login *authPayload `json:"login"`
		}
		env.exec(t, anon, login, map[string]interface{}{
			"input": map[string]interface{}{"username": "carol", "password": "pw"},
		}, &ok)
		require.NotNil(t, ok.Login)
		assert.Equal(t, signed.Signup.User.ID, ok.Login.User.ID)

		var bad struct {
			Login *authPayload `json:"login"`
		}
		env.exec(t, anon, login, map[string]interface{}{
			"input": map[string]interface{}{"username": "carol", "password": "nope"},
		}, &bad)
		assert.Nil(t, bad.Login)
	})

	t.Run("Verify and refresh", func(t *testing.T) {
		var verified struct {
			VerifyToken *bool `json:"verifyToken"`
		}
		env.exec(t, anon, `mutation V($token: String!) { verifyToken(token: $token) }`,
			map[string]interface{}{"token": *signed.Signup.Token}, &verified)
		require.NotNil(t, verified.VerifyToken)
		assert.True(t, *verified.VerifyToken)

		env.exec(t, anon, `mutation V($token: String!) { verifyToken(token: $token) }`,
			map[string]interface{}{"token": "garbage"}, &verified)
		require.NotNil(t, verified.VerifyToken)
		assert.False(t, *verified.VerifyToken)

		var refreshed struct {
			RefreshToken *string `json:"refreshToken"`
		}
		env.exec(t, anon, `mutation R($token: String!) { refreshToken(token: $token) }`,
			map[string]interface{}{"token": *signed.Signup.Token}, &refreshed)
		require.NotNil(t, refreshed.RefreshToken)
		_, err := env.tokens.Verify(*refreshed.RefreshToken)
		assert.NoError(t, err)

		env.exec(t, anon, `mutation R($token: String!) { refreshToken(token: $token) }`,
			map[string]interface{}{"token": "garbage"}, &refreshed)
		assert.Nil(t, refreshed.RefreshToken)
	})

	t.Run("Me", func(t *testing.T) {
		var data struct {
			Me *userData `json:"me"`
		}
		env.exec(t, anon, `query { me { id username } }`, nil, &data)
		assert.Nil(t, data.Me)

		u, err := env.store.GetUserByUsername(anon, "carol")
		require.NoError(t, err)
		env.exec(t, auth.WithUser(anon, u), `query { me { id username email } }`, nil, &data)
		require.NotNil(t, data.Me)
		assert.Equal(t, "carol", data.Me.Username)
		require.NotNil(t, data.Me.Email)
	})
}
