package seed

import (
	"context"
	"testing"
	"time"

	"github.com/VitaminP8/newsfeed/internal/auth"
	"github.com/VitaminP8/newsfeed/internal/newsfeed"
	"github.com/VitaminP8/newsfeed/internal/storage/memory"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStores() (newsfeed.Stores, *memory.Storage) {
	store := memory.NewStorage()
	return newsfeed.Stores{Users: store, Posts: store, Comments: store, Likes: store}, store
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	stores, store := newStores()

	opts := DefaultOptions()
	opts.Posts = 20
	res, err := Run(ctx, stores, opts, gofakeit.New(42), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 8, res.Users)
	assert.Equal(t, 20, res.Posts)

	t.Run("Admin is a superuser", func(t *testing.T) {
		admin, err := store.GetUserByUsername(ctx, AdminUsername)
		require.NoError(t, err)
		assert.True(t, admin.IsSuperuser)
		assert.True(t, auth.CheckPassword(admin.Password, "admin"))
	})

	t.Run("Mock users can log in", func(t *testing.T) {
		u, err := store.GetUserByUsername(ctx, "john_doe")
		require.NoError(t, err)
		assert.Equal(t, "John", u.FirstName)
		assert.True(t, auth.CheckPassword(u.Password, "password"))

		users, err := store.GetAllUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 9)
	})

	t.Run("Posts use fixed titles and recent dates", func(t *testing.T) {
		posts, err := store.GetAllPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 20)

		titles := map[string]bool{}
		monthAgo := time.Now().Add(-30*24*time.Hour - time.Minute)
		for _, p := range posts {
			titles[p.Title] = true
			assert.NotEmpty(t, p.Content)
			assert.True(t, p.CreatedAt.After(monthAgo), p.CreatedAt)
			assert.True(t, p.CreatedAt.Before(time.Now()), p.CreatedAt)
		}
		for _, title := range postTitles {
			assert.True(t, titles[title], title)
		}
	})

	t.Run("Comments and likes match the result", func(t *testing.T) {
		posts, err := store.GetAllPosts(ctx)
		require.NoError(t, err)

		comments, likes := 0, 0
		for _, p := range posts {
			c, err := store.CountCommentsByPost(ctx, p.ID)
			require.NoError(t, err)
			assert.LessOrEqual(t, c, opts.MaxComments)
			comments += c

			l, err := store.CountLikesByPost(ctx, p.ID)
			require.NoError(t, err)
			assert.LessOrEqual(t, l, opts.MaxLikes)
			likes += l
		}
		assert.Equal(t, res.Comments, comments)
		assert.Equal(t, res.Likes, likes)
	})

	t.Run("Second run does not duplicate users", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Posts = 1
		res, err := Run(ctx, stores, opts, gofakeit.New(7), zap.NewNop())
		require.NoError(t, err)
		assert.Zero(t, res.Users)

		users, err := store.GetAllUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 9)
	})

	t.Run("Clear keeps only superusers", func(t *testing.T) {
		opts := Options{Clear: true}
		res, err := Run(ctx, stores, opts, gofakeit.New(1), zap.NewNop())
		require.NoError(t, err)
		assert.Zero(t, res.Posts)

		users, err := store.GetAllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, AdminUsername, users[0].Username)

		posts, err := store.GetAllPosts(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestRunExtraUsers(t *testing.T) {
	ctx := context.Background()
	stores, store := newStores()

	res, err := Run(ctx, stores, Options{Users: 10, Posts: 0}, gofakeit.New(3), zap.NewNop())
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Users, 10)
	assert.GreaterOrEqual(t, res.Users, 8)

	users, err := store.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, res.Users+1)
}

func TestRunIsDeterministic(t *testing.T) {
	ctx := context.Background()

	titles := func() []string {
		stores, store := newStores()
		_, err := Run(ctx, stores, Options{Users: 2, Posts: 20}, gofakeit.New(99), zap.NewNop())
		require.NoError(t, err)

		posts, err := store.GetAllPosts(ctx)
		require.NoError(t, err)
		byID := make([]string, len(posts)+1)
		for _, p := range posts {
			byID[p.ID] = p.Title
		}
		return byID
	}

	assert.Equal(t, titles(), titles())
}
