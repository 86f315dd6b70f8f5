package models

import (
	"time"
)

// Transaction представляет запись в журнале транзакций.
// Знак поля Amount определяется типом операции при создании:
// положительный для credit, отрицательный для debit.
type Transaction struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Title     string    `gorm:"column:title;not null"`
	Amount    float64   `gorm:"column:amount;type:decimal(10,2);not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	SessionID string    `gorm:"column:session_id;not null;size:64;index"`
}

func (Transaction) TableName() string {
	return "transactions"
}
