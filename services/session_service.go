package services

import (
	"log"

	"ledgerProject/utils"
)

// SessionResolution представляет результат определения сессии
type SessionResolution struct {
	SessionID string
	IsNew     bool
}

// SessionService определяет идентификатор сессии для операции записи.
// Сессия — это непрозрачный токен, хранимый клиентом в cookie; отдельной
// сущности в базе данных у нее нет.
type SessionService struct{}

// NewSessionService создает новый экземпляр SessionService
func NewSessionService() *SessionService {
	return &SessionService{}
}

// Resolve возвращает идентификатор сессии для запроса.
// Если клиент уже предъявил идентификатор, он возвращается без изменений.
// Если идентификатора нет, генерируется новый случайный токен, и вызывающий
// обязан передать его клиенту (установить cookie).
func (s *SessionService) Resolve(current string) SessionResolution {
	if current != "" {
		return SessionResolution{
			SessionID: current,
			IsNew:     false,
		}
	}

	// Генерируем новый токен сессии
	token, err := utils.GenerateSecureToken(24)
	if err != nil {
		// Недоступность криптографического источника случайности —
		// фатальное состояние процесса, а не ошибка запроса
		log.Fatalf("Ошибка генерации токена сессии: %v", err)
	}

	return SessionResolution{
		SessionID: token,
		IsNew:     true,
	}
}
