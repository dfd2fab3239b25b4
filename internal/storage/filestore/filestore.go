// Пакет filestore — операции с загруженными файлами на диске.
// Файлы хранятся плоско в директории загрузок под именем
// <unix-millis>-<original-filename>; запись идёт через временный
// файл с атомарным rename.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound — файл отсутствует в директории загрузок
// или имя не является допустимым именем файла.
var ErrNotFound = errors.New("файл не найден")

// FileStore — управление загруженными файлами.
type FileStore struct {
	// dir — директория загрузок (RS_UPLOAD_DIR)
	dir string
	// now — источник времени для имён файлов
	now func() time.Time
}

// Option — функциональная опция FileStore.
type Option func(*FileStore)

// WithClock задаёт источник времени для генерации имён файлов.
func WithClock(now func() time.Time) Option {
	return func(fs *FileStore) {
		fs.now = now
	}
}

// SaveResult — результат сохранения файла на диск.
type SaveResult struct {
	// Filename — имя файла в директории загрузок
	Filename string
	// FullPath — путь к файлу на диске
	FullPath string
	// Size — размер записанных данных в байтах
	Size int64
}

// New создаёт новый FileStore. Создаёт директорию, если она
// не существует.
func New(dir string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию загрузок %s: %w", dir, err)
	}

	fs := &FileStore{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(fs)
	}
	return fs, nil
}

// SaveFile записывает данные из reader в директорию загрузок.
// Имя файла: <unix-millis>-<original-filename>, от клиентского имени
// берётся только базовая часть.
//
// Паттерн: temp файл → запись → fsync → atomic rename.
// При ошибке temp файл удаляется.
func (fs *FileStore) SaveFile(reader io.Reader, originalFilename string) (*SaveResult, error) {
	name := GenerateName(fs.now(), originalFilename)
	fullPath := filepath.Join(fs.dir, name)
	tmpPath := fmt.Sprintf("%s.%s.tmp", fullPath, uuid.New().String()[:8])

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	size, err := io.Copy(f, reader)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка записи данных: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return &SaveResult{
		Filename: name,
		FullPath: fullPath,
		Size:     size,
	}, nil
}

// Open открывает файл загрузок для чтения.
// Возвращает ErrNotFound, если файла нет, имя недопустимо
// или по этому имени лежит директория.
// Вызывающий код обязан закрыть файл.
func (fs *FileStore) Open(name string) (*os.File, error) {
	if !ValidName(name) {
		return nil, ErrNotFound
	}

	fullPath := filepath.Join(fs.dir, name)
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка открытия файла %s: %w", name, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ошибка получения stat файла %s: %w", name, err)
	}
	if !stat.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	return f, nil
}

// Dir возвращает путь к директории загрузок.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// GenerateName формирует имя файла на диске: <unix-millis>-<base-name>.
func GenerateName(t time.Time, originalFilename string) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), baseName(originalFilename))
}

// ValidName проверяет, что name — простое имя файла без разделителей пути.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

// baseName оставляет от клиентского имени только последний сегмент,
// учитывая оба вида разделителей.
func baseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
