package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"urbancard/config"
	"urbancard/controllers"
	"urbancard/database"
	"urbancard/middleware"
	"urbancard/services"
	"urbancard/utils"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Создаем первого администратора, если активных админов еще нет
	if err := seedAdmin(db, cfg); err != nil {
		log.Fatalf("Ошибка создания администратора: %v", err)
	}

	// Инициализируем сервисы
	emailService := services.NewEmailService(cfg)
	tokenService := services.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.ExpiresIn)
	userService := services.NewUserService(db.DB, emailService)
	cardService := services.NewCardService(db.DB, db, userService)
	userService.SetCardDeactivator(cardService)
	reportService := services.NewReportService(db.DB)

	// Инициализируем контроллеры
	authController := controllers.NewAuthController(userService, tokenService)
	userController := controllers.NewUserController(userService)
	cardController := controllers.NewCardController(cardService)
	reportController := controllers.NewReportController(reportService)

	// Ограничитель попыток входа
	loginLimiter := utils.NewRateLimiter(10, time.Minute)

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.LoggingMiddleware)

	// Публичный маршрут для входа
	router.Handle("/api/v1/auth/login",
		middleware.RateLimitMiddleware(loginLimiter)(http.HandlerFunc(authController.Login))).
		Methods("POST")

	// Защищенные маршруты
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.AuthMiddleware(tokenService))

	// Самообслуживание: данные берутся из токена вызывающего
	protected.HandleFunc("/users/me", userController.GetMe).Methods("GET")
	protected.HandleFunc("/cards/me", cardController.GetCardsMe).Methods("GET")
	protected.HandleFunc("/cards/me/{number}", cardController.GetCardMe).Methods("GET")

	// Административные маршруты
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminOnly)

	admin.HandleFunc("/auth/register", authController.Register).Methods("POST")

	admin.HandleFunc("/admin/users", userController.GetUsers).Methods("GET")
	admin.HandleFunc("/admin/users/{id}", userController.GetUser).Methods("GET")
	admin.HandleFunc("/admin/users/{id}", userController.UpdateUser).Methods("PATCH")
	admin.HandleFunc("/admin/users", userController.DeleteUsers).Methods("DELETE")

	admin.HandleFunc("/admin/cards", cardController.GetCards).Methods("GET")
	admin.HandleFunc("/admin/cards", cardController.CreateCard).Methods("POST")
	admin.HandleFunc("/admin/cards/{number}", cardController.GetCard).Methods("GET")
	admin.HandleFunc("/admin/cards/{number}", cardController.UpdateCard).Methods("PATCH")
	admin.HandleFunc("/admin/cards", cardController.DeleteCards).Methods("DELETE")

	admin.HandleFunc("/admin/reports/export", reportController.ExportReport).Methods("GET")
	admin.HandleFunc("/admin/metrics", reportController.GetMetrics).Methods("GET")

	// Запускаем сервер. CORS оборачивает роутер снаружи: preflight-запросы
	// должны получать ответ и тогда, когда роутер не находит маршрут
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, middleware.CORSMiddleware(router)); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

// seedAdmin создает первого администратора из конфигурации
func seedAdmin(db *database.Database, cfg *config.Config) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.SeedAdmin(cfg.Admin.Name, cfg.Admin.Email, string(hash))
}
