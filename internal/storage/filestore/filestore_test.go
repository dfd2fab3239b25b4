package filestore

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fixedClock возвращает источник времени с фиксированным значением.
func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

// TestNew_CreatesDirectory проверяет создание директории загрузок.
func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	fs, err := New(dir)
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	if fs.Dir() != dir {
		t.Errorf("ожидался путь %s, получен %s", dir, fs.Dir())
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("директория не создана: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("путь не является директорией")
	}
}

// TestSaveFile проверяет сохранение файла и формат имени.
func TestSaveFile(t *testing.T) {
	fs, err := New(t.TempDir(), WithClock(fixedClock(1700000000123)))
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	content := []byte("Olá, mundo! Тестовые данные.")
	result, err := fs.SaveFile(bytes.NewReader(content), "relatorio.pdf")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	if result.Filename != "1700000000123-relatorio.pdf" {
		t.Errorf("неожиданное имя файла: %s", result.Filename)
	}
	if result.Size != int64(len(content)) {
		t.Errorf("размер: ожидалось %d, получено %d", len(content), result.Size)
	}
	if result.FullPath != filepath.Join(fs.Dir(), result.Filename) {
		t.Errorf("неожиданный путь: %s", result.FullPath)
	}

	data, err := os.ReadFile(result.FullPath)
	if err != nil {
		t.Fatalf("ошибка чтения файла: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("содержимое файла не совпадает")
	}
}

// TestSaveFile_NoTmpFile проверяет, что в директории остаётся ровно один файл.
func TestSaveFile_NoTmpFile(t *testing.T) {
	dir := t.TempDir()
	fs, err := New(dir)
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	if _, err := fs.SaveFile(bytes.NewReader([]byte("data")), "file.txt"); err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ошибка чтения директории: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ожидался 1 файл, найдено %d", len(entries))
	}
	if strings.HasSuffix(entries[0].Name(), ".tmp") {
		t.Errorf("временный файл не должен оставаться: %s", entries[0].Name())
	}
}

// TestSaveFile_EmptyFile проверяет сохранение пустого файла.
func TestSaveFile_EmptyFile(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	result, err := fs.SaveFile(bytes.NewReader(nil), "empty.txt")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}
	if result.Size != 0 {
		t.Errorf("ожидался размер 0, получено %d", result.Size)
	}
}

// failingReader возвращает ошибку при чтении.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("обрыв соединения")
}

// TestSaveFile_ReaderError проверяет очистку при ошибке чтения.
func TestSaveFile_ReaderError(t *testing.T) {
	dir := t.TempDir()
	fs, err := New(dir)
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	if _, err := fs.SaveFile(failingReader{}, "broken.bin"); err == nil {
		t.Fatal("ожидалась ошибка сохранения")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("после ошибки директория должна быть пустой, найдено %d", len(entries))
	}
}

// TestOpen проверяет чтение сохранённого файла.
func TestOpen(t *testing.T) {
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	content := []byte("read test data")
	result, err := fs.SaveFile(bytes.NewReader(content), "read-test.txt")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	f, err := fs.Open(result.Filename)
	if err != nil {
		t.Fatalf("ошибка открытия для чтения: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ошибка чтения: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("прочитанные данные не совпадают с записанными")
	}
}

// TestOpen_NotFound проверяет ErrNotFound для отсутствующих и недопустимых имён.
func TestOpen_NotFound(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	fs, err := New(dir)
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	// Файл вне директории загрузок
	if err := os.WriteFile(filepath.Join(root, "secret.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Поддиректория внутри директории загрузок
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"nonexistent.txt", "", ".", "..", "../secret.txt", `..\secret.txt`, "sub"} {
		t.Run(name, func(t *testing.T) {
			f, err := fs.Open(name)
			if err == nil {
				f.Close()
				t.Fatalf("ожидалась ошибка для %q", name)
			}
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("ожидалась ErrNotFound, получено %v", err)
			}
		})
	}
}

// TestGenerateName проверяет формирование имени файла.
func TestGenerateName(t *testing.T) {
	ts := time.UnixMilli(1712345678901)

	tests := []struct {
		original string
		expected string
	}{
		{"foto.jpg", "1712345678901-foto.jpg"},
		{"My Photo.jpg", "1712345678901-My Photo.jpg"},
		{"dir/sub/foto.jpg", "1712345678901-foto.jpg"},
		{`C:\Users\foto.jpg`, "1712345678901-foto.jpg"},
		{"..", "1712345678901-file"},
		{"", "1712345678901-file"},
	}

	for _, tt := range tests {
		if got := GenerateName(ts, tt.original); got != tt.expected {
			t.Errorf("GenerateName(%q): ожидалось %q, получено %q", tt.original, tt.expected, got)
		}
	}
}

// TestValidName проверяет допустимость имён для скачивания.
func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"1712345678901-foto.jpg", true},
		{"arquivo com espaço.txt", true},
		{"", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{`a\b`, false},
		{"a\x00b", false},
	}

	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.valid {
			t.Errorf("ValidName(%q): ожидалось %v, получено %v", tt.name, tt.valid, got)
		}
	}
}
