package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitaminP8/newsfeed/internal/storage/memory"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthMiddleware(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStorage()
	user := &models.User{Username: "testuser", Password: "hash"}
	require.NoError(t, store.CreateUser(ctx, user))

	tokens := NewTokenService(testSecret, time.Hour)

	// Тестовый обработчик печатает пользователя из контекста
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		if err == nil {
			fmt.Fprintf(w, "User ID: %d", userID)
		} else {
			fmt.Fprint(w, "No user ID in context")
		}
	})
	handler := AuthMiddleware(tokens, store, zap.NewNop())(testHandler)

	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/query", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	t.Run("Valid JWT token", func(t *testing.T) {
		w := serve("JWT " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, fmt.Sprintf("User ID: %d", user.ID), w.Body.String())
	})

	t.Run("Valid Bearer token", func(t *testing.T) {
		w := serve("Bearer " + token)
		assert.Equal(t, fmt.Sprintf("User ID: %d", user.ID), w.Body.String())
	})

	t.Run("Invalid token signature", func(t *testing.T) {
		forged, err := NewTokenService("wrong_secret", time.Hour).Issue(user)
		require.NoError(t, err)

		w := serve("JWT " + forged)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("Expired token", func(t *testing.T) {
		old := time.Now().Add(-2 * time.Hour)
		expired, err := NewTokenService(testSecret, time.Hour, WithClock(func() time.Time { return old })).Issue(user)
		require.NoError(t, err)

		w := serve("JWT " + expired)
		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("No token", func(t *testing.T) {
		w := serve("")
		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("Invalid token format", func(t *testing.T) {
		w := serve("InvalidFormat")
		assert.Equal(t, "No user ID in context", w.Body.String())
	})

	t.Run("Deleted user", func(t *testing.T) {
		ghost := &models.User{Username: "ghost", Password: "hash"}
		require.NoError(t, store.CreateUser(ctx, ghost))
		ghostToken, err := tokens.Issue(ghost)
		require.NoError(t, err)
		require.NoError(t, store.DeleteUserByID(ctx, ghost.ID))

		w := serve("JWT " + ghostToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "No user ID in context", w.Body.String())
	})
}
