// Точка входа Record Store — сервиса записей и файлов с Basic-аутентификацией.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bigkaa/goartstore/record-store/internal/api/handlers"
	"github.com/bigkaa/goartstore/record-store/internal/api/middleware"
	"github.com/bigkaa/goartstore/record-store/internal/config"
	"github.com/bigkaa/goartstore/record-store/internal/server"
	"github.com/bigkaa/goartstore/record-store/internal/service"
	"github.com/bigkaa/goartstore/record-store/internal/storage/filestore"
	"github.com/bigkaa/goartstore/record-store/internal/storage/records"
)

func main() {
	// Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Record Store запускается",
		slog.String("domain", cfg.Domain.Name),
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("upload_dir", cfg.UploadDir),
	)

	// --- Инициализация компонентов ---

	// 1. Хранилище записей с начальными данными пресета
	store := records.New(logger)
	store.Seed(cfg.Domain.Seed())
	middleware.RecordsTotal.Set(float64(store.Count()))

	// 2. Файловое хранилище загрузок
	files, err := filestore.New(cfg.UploadDir)
	if err != nil {
		logger.Error("Ошибка инициализации FileStore", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 3. Сервисы
	uploadSvc := service.NewUploadService(files, cfg.MaxUploadSize, logger)
	downloadSvc := service.NewDownloadService(files, logger)

	// 4. Handlers
	apiHandler := handlers.NewAPIHandler(
		cfg.Domain,
		handlers.NewRecordsHandler(store, logger),
		handlers.NewTransferHandler(uploadSvc, downloadSvc, cfg.MaxUploadSize),
		handlers.NewHealthHandler(cfg.UploadDir, store),
		middleware.NewBasicAuth(cfg.AuthUser, cfg.AuthPassword, logger),
		cfg.MaxBodySize,
	)

	// 5. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Record Store остановлен")
}
