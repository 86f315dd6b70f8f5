package services

import (
	"errors"
)

// Ошибки уровня сервисов. Контроллеры сопоставляют их с HTTP-статусами
// через errors.Is, сами сервисы ничего не логируют и не повторяют операции.
var (
	// ErrInvalidInput возвращается при некорректных данных транзакции:
	// отрицательная сумма, неизвестный тип или пустой идентификатор сессии
	ErrInvalidInput = errors.New("некорректные данные транзакции")

	// ErrTransactionNotFound возвращается, когда транзакция не найдена
	// в рамках сессии вызывающего
	ErrTransactionNotFound = errors.New("транзакция не найдена")

	// ErrStoreUnavailable возвращается, когда хранилище не смогло
	// выполнить операцию
	ErrStoreUnavailable = errors.New("хранилище недоступно")
)
