package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ledgerProject/database"
	"ledgerProject/models"
	"ledgerProject/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType представляет тип транзакции
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// CreateTransactionDTO представляет данные для создания транзакции.
// Amount — всегда неотрицательная величина; знак определяется полем Type.
type CreateTransactionDTO struct {
	Title  string          `json:"title" validate:"required"`
	Amount float64         `json:"amount" validate:"gte=0"`
	Type   TransactionType `json:"type" validate:"required,oneof=credit debit"`
}

// TransactionDTO представляет транзакцию в ответе API
type TransactionDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
	SessionID string  `json:"session_id"`
}

// SummaryDTO представляет баланс сессии
type SummaryDTO struct {
	Amount float64 `json:"amount"`
}

// TransactionService предоставляет методы для работы с журналом транзакций.
// Все операции выполняются строго в рамках одной сессии.
type TransactionService struct {
	store     *database.Database
	validator *validator.Validate
}

// NewTransactionService создает новый экземпляр TransactionService
func NewTransactionService(store *database.Database) *TransactionService {
	return &TransactionService{
		store:     store,
		validator: validator.New(),
	}
}

// Create конвертирует намерение клиента в запись журнала: вычисляет знак
// суммы по типу операции, генерирует идентификатор и выполняет одну вставку.
// Временную метку created_at назначает хранилище.
func (s *TransactionService) Create(sessionID string, dto CreateTransactionDTO) (*TransactionDTO, error) {
	// Идентификатор сессии обязан быть определен до вызова
	if sessionID == "" {
		return nil, fmt.Errorf("%w: не указан идентификатор сессии", ErrInvalidInput)
	}

	// Валидируем DTO
	if err := s.validateDTO(dto); err != nil {
		return nil, err
	}

	// Вычисляем знак суммы по типу операции
	amount := dto.Amount
	if dto.Type == TransactionTypeDebit {
		amount = -amount
	}

	// Создаем транзакцию
	transaction := &models.Transaction{
		ID:        uuid.NewString(),
		Title:     dto.Title,
		Amount:    amount,
		SessionID: sessionID,
	}

	// Сохраняем транзакцию
	if err := s.store.CreateTransaction(transaction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Записываем метрики операции
	utils.GetMetrics().RecordTransaction(string(dto.Type))

	return toTransactionDTO(transaction), nil
}

// List возвращает все транзакции сессии. Порядок определяется хранилищем;
// для сессии без транзакций возвращается пустой слайс, а не nil.
func (s *TransactionService) List(sessionID string) ([]TransactionDTO, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: не указан идентификатор сессии", ErrInvalidInput)
	}

	// Ищем все транзакции сессии
	transactions, err := s.store.GetTransactionsBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Конвертируем в DTO
	dtos := make([]TransactionDTO, 0, len(transactions))
	for i := range transactions {
		dtos = append(dtos, *toTransactionDTO(&transactions[i]))
	}

	return dtos, nil
}

// GetByID возвращает транзакцию по идентификатору в рамках сессии.
// Несуществующий идентификатор и идентификатор чужой сессии дают один и тот
// же результат ErrTransactionNotFound, чтобы нельзя было проверить наличие
// чужих транзакций.
func (s *TransactionService) GetByID(sessionID, id string) (*TransactionDTO, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: не указан идентификатор сессии", ErrInvalidInput)
	}

	// Ищем транзакцию в базе данных
	transaction, err := s.store.GetTransactionBySessionAndID(sessionID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return toTransactionDTO(transaction), nil
}

// Summary возвращает баланс сессии — сумму всех ее транзакций со знаком.
// Для сессии без транзакций баланс равен 0.
func (s *TransactionService) Summary(sessionID string) (*SummaryDTO, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: не указан идентификатор сессии", ErrInvalidInput)
	}

	// Считаем сумму в хранилище
	total, err := s.store.SumAmountBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Записываем метрики операции
	utils.GetMetrics().RecordSummary()

	return &SummaryDTO{Amount: total}, nil
}

// validateDTO валидирует DTO и переводит ошибки валидации
func (s *TransactionService) validateDTO(dto CreateTransactionDTO) error {
	if err := s.validator.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		var errorMessages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
			case "gte":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше или равно "+e.Param())
			case "oneof":
				errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть одним из: "+e.Param())
			}
		}
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(errorMessages, "; "))
	}
	return nil
}

// toTransactionDTO конвертирует модель в DTO
func toTransactionDTO(transaction *models.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:        transaction.ID,
		Title:     transaction.Title,
		Amount:    transaction.Amount,
		CreatedAt: transaction.CreatedAt.Format(time.RFC3339),
		SessionID: transaction.SessionID,
	}
}
