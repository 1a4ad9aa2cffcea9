package auth

import (
	"context"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/models"
)

type contextKey string

const identityKey = contextKey("identity")

// Identity: результат аутентификации запроса; User == nil означает анонима
type Identity struct {
	User *models.User
}

func (i Identity) Authenticated() bool {
	return i.User != nil
}

// Сохраняет пользователя в контексте
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, identityKey, Identity{User: user})
}

// Достает Identity из контекста; без middleware считаем анонимом
func IdentityFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	id := IdentityFromContext(ctx)
	return id.User, id.Authenticated()
}

// Достает userID из контекста
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return 0, apperr.ErrUnauthenticated
	}
	return user.ID, nil
}
