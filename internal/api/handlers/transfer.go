// transfer.go — HTTP handlers загрузки и скачивания файлов.
package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/record-store/internal/api/errors"
	"github.com/bigkaa/goartstore/record-store/internal/api/middleware"
	"github.com/bigkaa/goartstore/record-store/internal/domain/model"
	"github.com/bigkaa/goartstore/record-store/internal/service"
)

// uploadField — имя поля multipart формы с файлом.
const uploadField = "file"

// multipartMemory — часть формы, которая держится в памяти; остальное
// multipart-парсер сбрасывает во временные файлы.
const multipartMemory = 32 << 20

// multipartOverhead — запас на заголовки и границы multipart поверх лимита файла.
const multipartOverhead = 1 << 20

// uploadResponse — тело успешного ответа на загрузку.
type uploadResponse struct {
	Message string              `json:"message"`
	File    *model.UploadedFile `json:"file"`
}

// TransferHandler — обработчик загрузки и скачивания файлов.
type TransferHandler struct {
	uploadSvc   *service.UploadService
	downloadSvc *service.DownloadService
	maxSize     int64
}

// NewTransferHandler создаёт обработчик файловых endpoints.
// maxSize — лимит размера загружаемого файла в байтах.
func NewTransferHandler(uploadSvc *service.UploadService, downloadSvc *service.DownloadService, maxSize int64) *TransferHandler {
	return &TransferHandler{
		uploadSvc:   uploadSvc,
		downloadSvc: downloadSvc,
		maxSize:     maxSize,
	}
}

// UploadFile обрабатывает POST /upload.
// Multipart form: file (обязательно). Без файла — 400.
func (h *TransferHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.As(err, &maxErr):
			errors.FileTooLarge(w, fmt.Sprintf("Размер запроса превышает лимит %d байт", h.maxSize))
		case stderrors.Is(err, http.ErrNotMultipart), stderrors.Is(err, http.ErrMissingBoundary):
			errors.ValidationError(w, "Nenhum arquivo enviado")
		default:
			errors.ValidationError(w, fmt.Sprintf("Ошибка парсинга multipart: %s", err.Error()))
		}
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		errors.ValidationError(w, "Nenhum arquivo enviado")
		return
	}
	defer file.Close()

	encoding := header.Header.Get("Content-Transfer-Encoding")
	if encoding == "" {
		encoding = "7bit"
	}

	result, uploadErr := h.uploadSvc.Upload(service.UploadParams{
		Reader:           file,
		FieldName:        uploadField,
		OriginalFilename: header.Filename,
		ContentType:      header.Header.Get("Content-Type"),
		Encoding:         encoding,
		Size:             header.Size,
		UploadedBy:       middleware.SubjectFromContext(r.Context()),
	})
	if uploadErr != nil {
		writeServiceError(w, uploadErr.StatusCode, uploadErr.Code, uploadErr.Message)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message: "Arquivo enviado com sucesso",
		File:    result,
	})
}

// DownloadFile обрабатывает GET /download/{filename}.
// Отсутствующий файл — 404, иначе содержимое отдаётся потоком.
func (h *TransferHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	// chi маршрутизирует по RawPath, если он задан: имя нужно декодировать
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(name)
		if err != nil {
			errors.NotFound(w, "Arquivo não encontrado")
			return
		}
		name = decoded
	}

	if downloadErr := h.downloadSvc.Serve(w, r, name); downloadErr != nil {
		writeServiceError(w, downloadErr.StatusCode, downloadErr.Code, downloadErr.Message)
	}
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
// Внутренние ошибки идут через InternalError, остальные — с кодом сервиса.
func writeServiceError(w http.ResponseWriter, statusCode int, code, message string) {
	if statusCode == http.StatusInternalServerError {
		errors.InternalError(w, message)
		return
	}
	errors.WriteError(w, statusCode, code, message)
}
