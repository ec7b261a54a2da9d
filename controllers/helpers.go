package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"urbancard/services"
	"urbancard/utils"
)

// writeJSON сериализует ответ в JSON
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeServiceError отображает ошибку сервиса в HTTP статус.
// Неизвестные ошибки считаются инфраструктурными: наружу уходит общий 500,
// детали остаются в логе.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	case errors.Is(err, services.ErrCardNotFound):
		http.Error(w, "Card not found", http.StatusNotFound)
	case errors.Is(err, services.ErrUserAlreadyExists):
		http.Error(w, "User already registered", http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidCredentials):
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, services.ErrInvalidToken):
		http.Error(w, "Invalid token", http.StatusUnauthorized)
	default:
		utils.LogError("Internal error: %v", err)
		utils.GetMetrics().RecordError(err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// parsePagination читает параметры page и size из запроса
func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return page, size
}
