package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"urbancard/middleware"
	"urbancard/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// UserController обрабатывает запросы, связанные с пользователями
type UserController struct {
	userService *services.UserService
	validate    *validator.Validate
}

type DeleteUsersRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

// NewUserController создает новый экземпляр UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{
		userService: userService,
		validate:    validator.New(),
	}
}

// GetUsers возвращает страницу активных пользователей (только для админов)
func (c *UserController) GetUsers(w http.ResponseWriter, r *http.Request) {
	page, size := parsePagination(r)
	search := r.URL.Query().Get("search")

	users, err := c.userService.FindAll(search, page, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetUser возвращает пользователя по ID (только для админов)
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	user, err := c.userService.FindByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GetMe возвращает профиль вызывающего. ID берется из проверенного токена,
// а не из запроса, поэтому чужой профиль через этот маршрут недоступен.
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetClaimsFromContext(r)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	user, err := c.userService.FindByID(claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUser изменяет данные пользователя (только для админов)
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	var req services.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return
	}

	user, err := c.userService.Update(id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteUsers помечает пользователей удаленными вместе с их картами
// (только для админов)
func (c *UserController) DeleteUsers(w http.ResponseWriter, r *http.Request) {
	var req DeleteUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		http.Error(w, "ids must not be empty", http.StatusBadRequest)
		return
	}

	if err := c.userService.Delete(req.IDs); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseUserID читает ID пользователя из пути запроса
func parseUserID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id), err
}
