package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// Preflight-запрос должен получать заголовки CORS и тогда, когда маршрут
// зарегистрирован только для POST и роутер сам OPTIONS не обслуживает
func TestCORSMiddlewarePreflightOnMethodLimitedRoute(t *testing.T) {
	router := mux.NewRouter()
	router.Handle("/api/v1/auth/login", okHandler()).Methods("POST")

	handler := CORSMiddleware(router)

	req := httptest.NewRequest("OPTIONS", "/api/v1/auth/login", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if origin := rr.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", origin)
	}
	if methods := rr.Header().Get("Access-Control-Allow-Methods"); methods == "" {
		t.Error("Access-Control-Allow-Methods header is missing")
	}
}

func TestCORSMiddlewarePassesThroughRegularRequests(t *testing.T) {
	handler := CORSMiddleware(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if origin := rr.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", origin)
	}
}
