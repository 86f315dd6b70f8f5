package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	Session struct {
		CookieName string
		MaxAge     int // в секундах
	}
}

// NewConfig создает новый экземпляр конфигурации
func NewConfig() (*Config, error) {
	v := viper.New()

	// Значения по умолчанию
	v.SetDefault("SERVER_PORT", 3333)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "ledger_db")
	v.SetDefault("SESSION_COOKIE_NAME", "sessionId")
	v.SetDefault("SESSION_COOKIE_MAX_AGE", 60*60*24*7) // 7 дней

	// Читаем переменные окружения
	v.AutomaticEnv()

	cfg := &Config{}

	// Настройки сервера
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("неверный формат порта сервера: %d", cfg.Server.Port)
	}

	// Настройки базы данных
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetInt("DB_PORT")
	if cfg.DB.Port <= 0 || cfg.DB.Port > 65535 {
		return nil, fmt.Errorf("неверный формат порта базы данных: %d", cfg.DB.Port)
	}
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.DBName = v.GetString("DB_NAME")

	// Настройки сессионной cookie
	cfg.Session.CookieName = v.GetString("SESSION_COOKIE_NAME")
	cfg.Session.MaxAge = v.GetInt("SESSION_COOKIE_MAX_AGE")
	if cfg.Session.CookieName == "" {
		return nil, fmt.Errorf("имя сессионной cookie не может быть пустым")
	}
	if cfg.Session.MaxAge <= 0 {
		return nil, fmt.Errorf("неверное время жизни сессионной cookie: %d", cfg.Session.MaxAge)
	}

	return cfg, nil
}
