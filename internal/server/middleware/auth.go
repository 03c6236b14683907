package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vmikh/offsync/internal/server/handlers"
	"github.com/vmikh/offsync/pkg/api"
)

// AuthMiddleware создает middleware идентификации пользователя.
// Предпочтительный способ - JWT Bearer токен; для доверенных
// окружений (локальная разработка, тесты) достаточно заголовка
// X-User-ID. Запрос без того и другого отклоняется.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := identify(jwtConfig, r)
			if err != nil {
				logger.Warn("Authentication failed", "error", err)
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, userID)

			logger.Debug("User authenticated", "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identify извлекает идентификатор пользователя из запроса
func identify(jwtConfig handlers.JWTConfig, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", errInvalidAuthHeader
		}

		claims, err := handlers.ValidateAccessToken(jwtConfig, parts[1])
		if err != nil {
			return "", err
		}
		return claims.UserID, nil
	}

	if userID := r.Header.Get(api.HeaderUserID); userID != "" {
		return userID, nil
	}

	return "", errMissingIdentity
}
