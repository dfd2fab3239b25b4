// download.go — сервис скачивания загруженных файлов.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/goartstore/record-store/internal/api/errors"
	"github.com/bigkaa/goartstore/record-store/internal/api/middleware"
	"github.com/bigkaa/goartstore/record-store/internal/storage/filestore"
)

// DownloadService — сервис скачивания файлов.
type DownloadService struct {
	store  *filestore.FileStore
	logger *slog.Logger
}

// NewDownloadService создаёт сервис скачивания файлов.
func NewDownloadService(store *filestore.FileStore, logger *slog.Logger) *DownloadService {
	return &DownloadService{
		store:  store,
		logger: logger.With(slog.String("component", "download_service")),
	}
}

// DownloadError — ошибка скачивания с HTTP-кодом.
type DownloadError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Serve отдаёт файл из директории загрузок через http.ServeContent.
// Файл открывается, проверяется и закрывается в пределах вызова;
// отсутствие файла — 404.
func (s *DownloadService) Serve(w http.ResponseWriter, r *http.Request, name string) *DownloadError {
	file, err := s.store.Open(name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			middleware.OperationsTotal.WithLabelValues("download", "not_found").Inc()
			return &DownloadError{
				StatusCode: http.StatusNotFound,
				Code:       apierrors.CodeNotFound,
				Message:    "Arquivo não encontrado",
			}
		}
		s.logger.Error("Ошибка открытия файла",
			slog.String("filename", name),
			slog.String("error", err.Error()),
		)
		middleware.OperationsTotal.WithLabelValues("download", "error").Inc()
		return &DownloadError{
			StatusCode: http.StatusInternalServerError,
			Code:       apierrors.CodeInternalError,
			Message:    "Ошибка чтения файла",
		}
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		s.logger.Error("Ошибка получения stat файла",
			slog.String("filename", name),
			slog.String("error", err.Error()),
		)
		middleware.OperationsTotal.WithLabelValues("download", "error").Inc()
		return &DownloadError{
			StatusCode: http.StatusInternalServerError,
			Code:       apierrors.CodeInternalError,
			Message:    "Ошибка чтения файла",
		}
	}

	// http.ServeContent определяет Content-Type по расширению,
	// обрабатывает Range и If-Modified-Since.
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), file)

	middleware.OperationsTotal.WithLabelValues("download", "success").Inc()

	s.logger.Debug("Файл скачан",
		slog.String("filename", name),
		slog.Int64("size", stat.Size()),
	)

	return nil
}
