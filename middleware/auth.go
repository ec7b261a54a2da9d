package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"urbancard/models"
	"urbancard/services"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// AuthMiddleware проверяет токен и кладет проверенные claims в контекст запроса.
// Любая проблема с токеном отдается как один и тот же 401 без уточнения причины.
func AuthMiddleware(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			// Убираем префикс "Bearer " если он есть
			if strings.HasPrefix(tokenString, "Bearer ") {
				tokenString = tokenString[7:]
			}

			// Проверяем токен
			claims, err := tokens.Validate(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			// Добавляем заголовок X-User-ID
			r.Header.Set("X-User-ID", strconv.FormatUint(uint64(claims.UserID), 10))

			// Добавляем claims в контекст запроса
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly пропускает только аутентифицированных администраторов.
// Должен стоять после AuthMiddleware.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetClaimsFromContext(r)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if claims.Role != models.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClaimsFromContext получает проверенные claims из контекста запроса
func GetClaimsFromContext(r *http.Request) (*services.TokenClaims, error) {
	claims, ok := r.Context().Value(claimsContextKey).(*services.TokenClaims)
	if !ok {
		return nil, fmt.Errorf("claims not found in context")
	}
	return claims, nil
}
