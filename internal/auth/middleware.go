package auth

import (
	"net/http"
	"strings"

	"github.com/VitaminP8/newsfeed/internal/user"
	"go.uber.org/zap"
)

// AuthMiddleware определяет пользователя по заголовку Authorization и кладет его в context.
// Любая ошибка оставляет запрос анонимным, запрос никогда не прерывается.
func AuthMiddleware(tokens *TokenService, users user.UserStorage, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractTokenFromHeader(r.Header.Get("Authorization"))
			if tokenStr == "" {
				next.ServeHTTP(w, r) // неавторизованный доступ — пропускаем
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				log.Debug("rejected token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				// пользователь мог быть удален после выдачи токена
				log.Debug("token user not loaded", zap.Uint("user_id", claims.UserID), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// extractTokenFromHeader принимает "JWT <token>" и, для совместимости, "Bearer <token>"
func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && (parts[0] == "JWT" || parts[0] == "Bearer") {
		return parts[1]
	}
	return ""
}
