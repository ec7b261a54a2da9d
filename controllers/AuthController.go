package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"urbancard/models"
	"urbancard/services"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// UserAccounts — часть пользовательского сервиса, нужная аутентификации
type UserAccounts interface {
	FindByEmail(email string) (*models.User, error)
	Register(req services.RegisterUserRequest) (*models.User, error)
}

type AuthController struct {
	userService  UserAccounts
	tokenService *services.TokenService
	validate     *validator.Validate
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegisterResponse struct {
	Message string            `json:"message"`
	User    *services.UserDTO `json:"user"`
}

func NewAuthController(userService UserAccounts, tokenService *services.TokenService) *AuthController {
	validate := validator.New()

	// Регистрация кастомной валидации для пароля
	validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		// Проверка на наличие хотя бы одной цифры
		hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
		// Проверка на наличие хотя бы одной заглавной буквы
		hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
		// Проверка на наличие хотя бы одной строчной буквы
		hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
		// Проверка на наличие хотя бы одного специального символа
		hasSpecial := regexp.MustCompile(`[!@#$%^&*]`).MatchString(password)

		return hasNumber && hasUpper && hasLower && hasSpecial
	})

	return &AuthController{
		userService:  userService,
		tokenService: tokenService,
		validate:     validate,
	}
}

// Login обрабатывает вход пользователя
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация запроса
	if err := c.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return
	}

	// Ищем пользователя по email. Несуществующий пользователь и неверный
	// пароль дают один и тот же ответ; недоступность хранилища — это не
	// ошибка учетных данных и уходит наружу как 500.
	user, err := c.userService.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		writeServiceError(w, err)
		return
	}

	// Проверяем пароль
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// Выпускаем токен
	tokenString, err := c.tokenService.Generate(user)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: tokenString})
}

// Register создает нового пользователя. Маршрут доступен только администраторам,
// самостоятельной регистрации в системе нет.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация запроса
	if err := c.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return
	}

	user, err := c.userService.Register(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User: &services.UserDTO{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
			Cards: []string{},
		},
	})
}
