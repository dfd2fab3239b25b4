// Пакет service — бизнес-логика Record Store.
// upload.go — сервис сохранения загруженных файлов.
package service

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/goartstore/record-store/internal/api/errors"
	"github.com/bigkaa/goartstore/record-store/internal/api/middleware"
	"github.com/bigkaa/goartstore/record-store/internal/domain/model"
	"github.com/bigkaa/goartstore/record-store/internal/storage/filestore"
)

// UploadParams — параметры загрузки файла.
type UploadParams struct {
	// Reader — поток данных файла
	Reader io.Reader
	// FieldName — имя поля multipart формы
	FieldName string
	// OriginalFilename — имя файла на стороне клиента
	OriginalFilename string
	// ContentType — MIME-тип части
	ContentType string
	// Encoding — Content-Transfer-Encoding части
	Encoding string
	// Size — размер файла из multipart заголовка
	Size int64
	// UploadedBy — имя пользователя из Basic-аутентификации
	UploadedBy string
}

// UploadError — ошибка загрузки с HTTP-кодом.
type UploadError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UploadService — сервис загрузки файлов.
type UploadService struct {
	store   *filestore.FileStore
	maxSize int64
	logger  *slog.Logger
}

// NewUploadService создаёт сервис загрузки файлов.
func NewUploadService(store *filestore.FileStore, maxSize int64, logger *slog.Logger) *UploadService {
	return &UploadService{
		store:   store,
		maxSize: maxSize,
		logger:  logger.With(slog.String("component", "upload_service")),
	}
}

// Upload сохраняет файл в директории загрузок и возвращает его описание.
// Имя на диске: <unix-millis>-<original-filename>.
func (s *UploadService) Upload(params UploadParams) (*model.UploadedFile, *UploadError) {
	if params.Size > s.maxSize {
		middleware.OperationsTotal.WithLabelValues("upload", "rejected").Inc()
		return nil, &UploadError{
			StatusCode: http.StatusRequestEntityTooLarge,
			Code:       apierrors.CodeFileTooLarge,
			Message:    fmt.Sprintf("Размер файла %d байт превышает максимум %d байт", params.Size, s.maxSize),
		}
	}

	saved, err := s.store.SaveFile(params.Reader, params.OriginalFilename)
	if err != nil {
		middleware.OperationsTotal.WithLabelValues("upload", "error").Inc()
		s.logger.Error("Ошибка сохранения файла",
			slog.String("filename", params.OriginalFilename),
			slog.String("error", err.Error()),
		)
		return nil, &UploadError{
			StatusCode: http.StatusInternalServerError,
			Code:       apierrors.CodeInternalError,
			Message:    "Ошибка сохранения файла на диск",
		}
	}

	middleware.OperationsTotal.WithLabelValues("upload", "success").Inc()
	middleware.UploadBytesTotal.Add(float64(saved.Size))

	s.logger.Info("Файл загружен",
		slog.String("filename", saved.Filename),
		slog.String("original_filename", params.OriginalFilename),
		slog.Int64("size", saved.Size),
		slog.String("uploaded_by", params.UploadedBy),
	)

	return &model.UploadedFile{
		FieldName:    params.FieldName,
		OriginalName: params.OriginalFilename,
		Encoding:     params.Encoding,
		MimeType:     detectContentType(params.ContentType),
		Destination:  s.store.Dir(),
		Filename:     saved.Filename,
		Path:         saved.FullPath,
		Size:         saved.Size,
	}, nil
}

// detectContentType возвращает MIME-тип части или application/octet-stream.
func detectContentType(contentType string) string {
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
