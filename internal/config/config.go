// Пакет config — загрузка и валидация конфигурации Record Store
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bigkaa/goartstore/record-store/internal/domain/preset"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// DefaultPort — фиксированный порт HTTP-сервера, через окружение не меняется.
const DefaultPort = 3000

// Config содержит все параметры конфигурации Record Store.
type Config struct {
	// Доменный пресет (jogadores, cervejas)
	Domain *preset.Preset
	// Порт HTTP-сервера (DefaultPort)
	Port int
	// Директория для загруженных файлов
	UploadDir string
	// Единственная пара учётных данных Basic-аутентификации
	AuthUser     string
	AuthPassword string
	// Лимит JSON-тела запроса в байтах
	MaxBodySize int64
	// Лимит multipart-загрузки в байтах
	MaxUploadSize int64
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Путь к TLS сертификату (опционально)
	TLSCert string
	// Путь к TLS приватному ключу (опционально)
	TLSKey string
	// Таймауты HTTP-сервера
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	// Таймаут graceful shutdown
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// значения и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// RS_DOMAIN — доменный пресет (по умолчанию jogadores)
	domainName := getEnvDefault("RS_DOMAIN", preset.Jogadores)
	domain, ok := preset.Lookup(domainName)
	if !ok {
		return nil, fmt.Errorf("RS_DOMAIN: недопустимое значение %q, допустимые: %s",
			domainName, strings.Join(preset.Names(), ", "))
	}
	cfg.Domain = domain

	cfg.Port = DefaultPort

	// RS_UPLOAD_DIR — директория загрузок (по умолчанию uploads)
	cfg.UploadDir = getEnvDefault("RS_UPLOAD_DIR", "uploads")

	// RS_AUTH_USER / RS_AUTH_PASSWORD — по умолчанию берутся из пресета
	cfg.AuthUser = getEnvDefault("RS_AUTH_USER", domain.Username)
	cfg.AuthPassword = getEnvDefault("RS_AUTH_PASSWORD", domain.Password)

	// RS_MAX_BODY_SIZE — лимит JSON-тела (по умолчанию 100 KiB)
	cfg.MaxBodySize, err = getEnvInt64("RS_MAX_BODY_SIZE", 100<<10)
	if err != nil {
		return nil, fmt.Errorf("RS_MAX_BODY_SIZE: %w", err)
	}
	if cfg.MaxBodySize <= 0 {
		return nil, fmt.Errorf("RS_MAX_BODY_SIZE: значение должно быть положительным")
	}

	// RS_MAX_UPLOAD_SIZE — лимит загрузки (по умолчанию 1 GB)
	cfg.MaxUploadSize, err = getEnvInt64("RS_MAX_UPLOAD_SIZE", 1<<30)
	if err != nil {
		return nil, fmt.Errorf("RS_MAX_UPLOAD_SIZE: %w", err)
	}
	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("RS_MAX_UPLOAD_SIZE: значение должно быть положительным")
	}

	// RS_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("RS_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("RS_LOG_LEVEL: %w", err)
	}

	// RS_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("RS_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("RS_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// RS_TLS_CERT / RS_TLS_KEY — задаются только парой
	cfg.TLSCert = getEnvDefault("RS_TLS_CERT", "")
	cfg.TLSKey = getEnvDefault("RS_TLS_KEY", "")
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return nil, fmt.Errorf("RS_TLS_CERT и RS_TLS_KEY должны быть заданы вместе")
	}

	cfg.HTTPReadTimeout, err = getEnvDuration("RS_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RS_HTTP_READ_TIMEOUT: %w", err)
	}
	cfg.HTTPWriteTimeout, err = getEnvDuration("RS_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RS_HTTP_WRITE_TIMEOUT: %w", err)
	}
	cfg.HTTPIdleTimeout, err = getEnvDuration("RS_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RS_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// RS_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 10s)
	cfg.ShutdownTimeout, err = getEnvDuration("RS_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RS_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// TLSEnabled возвращает true, если заданы сертификат и ключ.
func (c *Config) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt64 возвращает int64 значение переменной окружения или значение по умолчанию.
func getEnvInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1m)", val)
	}
	if d <= 0 {
		return 0, fmt.Errorf("длительность должна быть положительной: %q", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
