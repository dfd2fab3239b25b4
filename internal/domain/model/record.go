// Пакет model — доменные модели Record Store.
// Record — запись коллекции: произвольный JSON-объект с целочисленным id.
// UploadedFile — описание файла, сохранённого в директории загрузок.
package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// FieldID — имя поля идентификатора записи.
const FieldID = "id"

// Record — одна запись in-memory коллекции.
// Сервис трактует поля как непрозрачные, кроме id.
type Record map[string]any

// ID возвращает целочисленный id записи.
// ok == false, если id отсутствует или не является целым числом:
// такая запись не совпадает ни с одним запрошенным id.
func (r Record) ID() (int, bool) {
	return intValue(r[FieldID])
}

// SetID устанавливает id записи.
func (r Record) SetID(id int) {
	r[FieldID] = id
}

// Clone возвращает поверхностную копию записи.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	copied := make(Record, len(r))
	for k, v := range r {
		copied[k] = v
	}
	return copied
}

// Merge копирует поля patch поверх записи: присланные поля
// перезаписываются (включая id), отсутствующие сохраняются.
func (r Record) Merge(patch Record) {
	for k, v := range patch {
		r[k] = v
	}
}

// intValue приводит значение поля к int.
// Поддерживаются int-типы, целые float64 (encoding/json) и json.Number.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := strconv.Atoi(n.String()); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return intValue(f)
	default:
		return 0, false
	}
}

// ParseID разбирает id из сегмента пути нестрого:
// пробелы в начале, необязательный знак, затем максимальная
// последовательность десятичных цифр ("12abc" → 12).
// ok == false, если цифр нет или число не помещается в int.
func ParseID(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, false
	}
	id, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, false
	}
	return id, true
}
