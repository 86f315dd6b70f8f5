package controllers

import (
	"errors"
	"net/http"
	"time"

	"ledgerProject/config"
	"ledgerProject/database"
	"ledgerProject/middleware"
	"ledgerProject/services"
	"ledgerProject/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionController обрабатывает запросы, связанные с журналом транзакций
type TransactionController struct {
	transactionService *services.TransactionService
	sessionService     *services.SessionService
	cfg                *config.Config
}

// NewTransactionController создает новый экземпляр TransactionController
func NewTransactionController(db *database.Database, cfg *config.Config) *TransactionController {
	return &TransactionController{
		transactionService: services.NewTransactionService(db),
		sessionService:     services.NewSessionService(),
		cfg:                cfg,
	}
}

// Create обрабатывает запрос на создание транзакции.
// При отсутствии cookie сессии создается новая сессия, и ее идентификатор
// возвращается клиенту в Set-Cookie.
func (c *TransactionController) Create(ctx *gin.Context) {
	startTime := time.Now()

	// Создаем DTO для запроса
	var dto services.CreateTransactionDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Определяем сессию: существующая из cookie или новая
	current, _ := ctx.Cookie(c.cfg.Session.CookieName)
	resolution := c.sessionService.Resolve(current)

	// Создаем транзакцию
	transaction, err := c.transactionService.Create(resolution.SessionID, dto)
	utils.LogOperation("create_transaction", startTime, err)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	// Передаем клиенту новый идентификатор сессии
	if resolution.IsNew {
		ctx.SetCookie(
			c.cfg.Session.CookieName,
			resolution.SessionID,
			c.cfg.Session.MaxAge,
			"/",
			"",
			false,
			true,
		)
	}

	// Отправляем ответ
	ctx.JSON(http.StatusCreated, gin.H{
		"id":         transaction.ID,
		"session_id": resolution.SessionID,
	})
}

// List обрабатывает запрос на получение всех транзакций сессии
func (c *TransactionController) List(ctx *gin.Context) {
	// Получаем идентификатор сессии из контекста (установлен middleware)
	sessionID, ok := middleware.GetSessionID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Получаем список транзакций
	transactions, err := c.transactionService.List(sessionID)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	// Отправляем ответ
	ctx.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
	})
}

// GetByID обрабатывает запрос на получение транзакции по идентификатору
func (c *TransactionController) GetByID(ctx *gin.Context) {
	// Получаем идентификатор сессии из контекста (установлен middleware)
	sessionID, ok := middleware.GetSessionID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Проверяем форму идентификатора
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	// Ищем транзакцию
	transaction, err := c.transactionService.GetByID(sessionID, id)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	// Отправляем ответ
	ctx.JSON(http.StatusOK, gin.H{
		"transaction": transaction,
	})
}

// Summary обрабатывает запрос на получение баланса сессии
func (c *TransactionController) Summary(ctx *gin.Context) {
	// Получаем идентификатор сессии из контекста (установлен middleware)
	sessionID, ok := middleware.GetSessionID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Считаем баланс
	summary, err := c.transactionService.Summary(sessionID)
	if err != nil {
		c.handleServiceError(ctx, err)
		return
	}

	// Отправляем ответ
	ctx.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}

// handleServiceError сопоставляет ошибки сервисов с HTTP-статусами
func (c *TransactionController) handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTransactionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStoreUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// RegisterRoutes регистрирует маршруты контроллера.
// Чтение защищено SessionRequired, запись проходит без проверки:
// отсутствие сессии при записи означает создание новой.
func (c *TransactionController) RegisterRoutes(router *gin.Engine) {
	guard := middleware.SessionRequired(c.cfg.Session.CookieName)

	router.POST("/api/transactions", c.Create)
	router.GET("/api/transactions", guard, c.List)
	router.GET("/api/transactions/summary", guard, c.Summary)
	router.GET("/api/transactions/:id", guard, c.GetByID)
}
