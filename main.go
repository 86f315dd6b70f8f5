package main

import (
	"fmt"
	"log"
	"net/http"

	"ledgerProject/config"
	"ledgerProject/controllers"
	"ledgerProject/database"
	"ledgerProject/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// healthHandler отвечает на проверку работоспособности сервиса
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// setupRouter собирает роутер с middleware и маршрутами
func setupRouter(db *database.Database, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Подключаем middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimit())

	// Проверка работоспособности
	router.GET("/health", healthHandler)

	// Инициализируем контроллеры
	transactionController := controllers.NewTransactionController(db, cfg)
	transactionController.RegisterRoutes(router)

	return router
}

func main() {
	// Загружаем переменные окружения из .env, если файл есть
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных и выполняем миграции
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Собираем роутер
	router := setupRouter(db, cfg)

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
