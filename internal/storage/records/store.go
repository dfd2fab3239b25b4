// Пакет records — потокобезопасное in-memory хранилище записей.
//
// Коллекция упорядочена по порядку вставки; обновления не меняют
// положение записи. Заполняется начальными данными при старте (Seed)
// и живёт до завершения процесса, без персистентности.
//
// Каждая операция выполняется под одной блокировкой: мутация атомарна
// в пределах запроса, но между запросами транзакций нет.
package records

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/bigkaa/goartstore/record-store/internal/domain/model"
)

// notFound — результат lookup, когда запись не найдена.
const notFound = -1

// Store — упорядоченная коллекция записей.
// Использует sync.RWMutex для конкурентного чтения и
// эксклюзивной записи.
type Store struct {
	mu     sync.RWMutex
	items  []model.Record
	ready  bool
	logger *slog.Logger
}

// New создаёт пустое хранилище. Для заполнения вызовите Seed.
func New(logger *slog.Logger) *Store {
	return &Store{
		logger: logger.With(slog.String("component", "record_store")),
	}
}

// Seed заменяет содержимое хранилища переданными записями
// и помечает хранилище как ready.
func (s *Store) Seed(records []model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]model.Record, 0, len(records))
	for _, rec := range records {
		s.items = append(s.items, rec.Clone())
	}
	s.ready = true

	s.logger.Info("Хранилище записей заполнено", slog.Int("records", len(s.items)))
}

// IsReady возвращает true, если хранилище заполнено начальными данными.
func (s *Store) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// List возвращает всю коллекцию в порядке вставки.
// Пустая коллекция — пустой (не nil) срез.
func (s *Store) List() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Record, 0, len(s.items))
	for _, rec := range s.items {
		result = append(result, rec.Clone())
	}
	return result
}

// Get возвращает копию записи по id.
// Возвращает nil, если запись не найдена.
func (s *Store) Get(id int) model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i == notFound {
		return nil
	}
	return s.items[i].Clone()
}

// Create добавляет запись в конец коллекции и возвращает сохранённую копию.
//
// id назначается как id последнего элемента + 1 (1 для пустой коллекции),
// присланный клиентом id перезаписывается. Максимум по всем id не ищется:
// если последний элемент имеет меньший id, чем один из предыдущих,
// новый id может совпасть с существующим.
func (s *Store) Create(rec model.Record) model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := rec.Clone()
	if stored == nil {
		stored = model.Record{}
	}
	stored.SetID(s.nextID())
	s.items = append(s.items, stored)

	return stored.Clone()
}

// Update сливает поля patch в запись с указанным id и возвращает результат.
// Используется и для замены (PUT), и для частичного обновления (PATCH):
// поля из patch перезаписываются, остальные сохраняются.
// Возвращает nil, если запись не найдена.
func (s *Store) Update(id int, patch model.Record) model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i == notFound {
		return nil
	}

	merged := s.items[i].Clone()
	merged.Merge(patch)
	s.items[i] = merged

	return merged.Clone()
}

// Delete удаляет запись по id, сохраняя порядок остальных.
// Возвращает true, если запись была найдена и удалена.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i == notFound {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Count возвращает количество записей.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// indexOf выполняет линейный поиск первой записи с указанным id.
// Вызывается под блокировкой.
func (s *Store) indexOf(id int) int {
	for i, rec := range s.items {
		if recID, ok := rec.ID(); ok && recID == id {
			return i
		}
	}
	return notFound
}

// nextID вычисляет id для новой записи. Вызывается под блокировкой.
func (s *Store) nextID() int {
	if len(s.items) == 0 {
		return 1
	}
	last, ok := s.items[len(s.items)-1].ID()
	if !ok {
		return 1
	}
	return last + 1
}
