// Пакет preset — доменные пресеты Record Store.
// Сервис один и тот же для всех доменов; пресет задаёт префикс маршрутов,
// сегмент получения записи по id, учётные данные и начальные записи.
package preset

import (
	"sort"

	"github.com/bigkaa/goartstore/record-store/internal/domain/model"
)

// Имена встроенных пресетов.
const (
	Jogadores = "jogadores"
	Cervejas  = "cervejas"
)

// Preset — параметры одного экземпляра сервиса.
type Preset struct {
	// Name — имя пресета (значение RS_DOMAIN)
	Name string
	// Prefix — префикс маршрутов записей, например "/jogadores"
	Prefix string
	// GetSegment — сегмент пути получения записи по id
	GetSegment string
	// Username, Password — учётные данные по умолчанию
	Username string
	Password string
	// seed возвращает новые начальные записи при каждом вызове
	seed func() []model.Record
}

// Seed возвращает начальные записи. Каждый вызов создаёт новые значения,
// так что изменения коллекции не затрагивают пресет.
func (p *Preset) Seed() []model.Record {
	if p.seed == nil {
		return nil
	}
	return p.seed()
}

var presets = map[string]*Preset{
	Jogadores: {
		Name:       Jogadores,
		Prefix:     "/jogadores",
		GetSegment: "listarjogadores",
		Username:   "admin",
		Password:   "jogador123",
		seed: func() []model.Record {
			return []model.Record{
				{"id": 1, "nome": "Cristiano Ronaldo", "posicao": "Atacante", "idade": "36"},
				{"id": 2, "nome": "Carlos Eduardo Santos", "posicao": "Atacante", "idade": "34"},
				{"id": 3, "nome": "Mariana Oliveira", "posicao": "Atacante", "idade": "29"},
			}
		},
	},
	Cervejas: {
		Name:       Cervejas,
		Prefix:     "/cervejas",
		GetSegment: "listarCervejas",
		Username:   "admin",
		Password:   "senha123",
		seed: func() []model.Record {
			return []model.Record{
				{"id": 1, "cerveja": "Brahma", "preço": "R$ 45,00", "quantidade": "12"},
				{"id": 2, "cerveja": "Budweiser", "preço": "R$ 39,99", "quantidade": "6"},
				{"id": 3, "cerveja": "Corona extra", "preço": "R$ 44,90", "quantidade": "6"},
			}
		},
	},
}

// Lookup возвращает пресет по имени.
func Lookup(name string) (*Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names возвращает отсортированный список имён пресетов.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
