package student

import (
	"sort"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// AGGREGATE: ROSTER
// ══════════════════════════════════════════════════════════════════════════════

// Roster - список учеников центра с защитой от дубликатов имён.
// Порядок добавления сохраняется: новые ученики встают в конец.
type Roster struct {
	students []*Student
	byID     map[string]*Student
	byName   map[string]*Student // ключ - Name.FoldKey()
}

// NewRoster создаёт пустой список учеников.
func NewRoster() *Roster {
	return &Roster{
		students: make([]*Student, 0),
		byID:     make(map[string]*Student),
		byName:   make(map[string]*Student),
	}
}

// Add добавляет ученика в конец списка.
// Возвращает ErrDuplicateName, если имя уже занято (без учёта регистра
// и крайних пробелов), и ErrDuplicateID при совпадении ID.
func (r *Roster) Add(s *Student) error {
	if s == nil || s.ID == "" {
		return ErrEmptyID
	}
	if !s.Name.IsValid() {
		return ErrInvalidName
	}
	if _, ok := r.byID[s.ID]; ok {
		return ErrDuplicateID
	}
	if _, ok := r.byName[s.Name.FoldKey()]; ok {
		return ErrDuplicateName
	}

	r.students = append(r.students, s)
	r.byID[s.ID] = s
	r.byName[s.Name.FoldKey()] = s
	return nil
}

// Get возвращает ученика по ID.
func (r *Roster) Get(id string) (*Student, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Contains проверяет наличие ученика с таким ID.
func (r *Roster) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// HasName проверяет занятость имени (без учёта регистра и пробелов).
func (r *Roster) HasName(name Name) bool {
	_, ok := r.byName[name.FoldKey()]
	return ok
}

// Len возвращает количество учеников.
func (r *Roster) Len() int {
	return len(r.students)
}

// All возвращает копию списка в порядке добавления.
func (r *Roster) All() []*Student {
	out := make([]*Student, len(r.students))
	copy(out, r.students)
	return out
}

// Search возвращает учеников, чьё имя содержит подстроку запроса.
// Пустой запрос возвращает всех.
func (r *Roster) Search(query string) []*Student {
	q := strings.TrimSpace(query)
	if q == "" {
		return r.All()
	}

	out := make([]*Student, 0, len(r.students))
	for _, s := range r.students {
		if s.Matches(q) {
			out = append(out, s)
		}
	}
	return out
}

// SortedByName возвращает копию списка, отсортированную по имени.
// Используется для детерминированного вывода в отчётах.
func (r *Roster) SortedByName() []*Student {
	out := r.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
