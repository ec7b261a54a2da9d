package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"urbancard/models"
	"urbancard/services"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func issueToken(t *testing.T, ts *services.TokenService, role models.Role) string {
	t.Helper()
	token, err := ts.Generate(&models.User{
		ID:    1,
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	return token
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	ts := services.NewTokenService("test-secret", 2)
	handler := AuthMiddleware(ts)(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	ts := services.NewTokenService("test-secret", 2)
	handler := AuthMiddleware(ts)(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewarePutsClaimsInContext(t *testing.T) {
	ts := services.NewTokenService("test-secret", 2)

	var got *services.TokenClaims
	handler := AuthMiddleware(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetClaimsFromContext(r)
		if err != nil {
			t.Errorf("GetClaimsFromContext returned error: %v", err)
		}
		got = claims
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, ts, models.RoleUser))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got == nil || got.Email != "test@example.com" || got.UserID != 1 {
		t.Errorf("claims in context = %+v, want email test@example.com and userId 1", got)
	}
}

// Пользователь с ролью USER не попадает на административный маршрут,
// даже если токен валиден
func TestAdminOnlyRejectsUserRole(t *testing.T) {
	ts := services.NewTokenService("test-secret", 2)
	handler := AuthMiddleware(ts)(AdminOnly(okHandler()))

	req := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, ts, models.RoleUser))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestAdminOnlyAllowsAdminRole(t *testing.T) {
	ts := services.NewTokenService("test-secret", 2)
	handler := AuthMiddleware(ts)(AdminOnly(okHandler()))

	req := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, ts, models.RoleAdmin))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}
