// Package student содержит доменную модель ученика центра "Сирадж".
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package student

import (
	"errors"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Name представляет отображаемое имя ученика (обычно на арабском).
type Name string

// IsValid проверяет, что имя непустое после обрезки пробелов.
func (n Name) IsValid() bool {
	s := strings.TrimSpace(string(n))
	return len(s) >= 1 && len(s) <= 120
}

// Normalized возвращает имя без ведущих и хвостовых пробелов.
func (n Name) Normalized() Name {
	return Name(strings.TrimSpace(string(n)))
}

// FoldKey возвращает ключ для сравнения имён без учёта регистра.
// Для арабских имён регистра нет, но латинские имена тоже встречаются.
func (n Name) FoldKey() string {
	return strings.ToLower(strings.TrimSpace(string(n)))
}

// String возвращает строковое представление имени.
func (n Name) String() string {
	return string(n)
}

// Group представляет учебную группу ученика.
// На практике это свободная строка, но интерфейс предлагает закрытый список.
type Group string

// Фиксированные группы центра.
const (
	GroupSecondary    Group = "مجموعة الثانوي"
	GroupIntermediate Group = "مجموعة المتوسط"
	GroupNewStudent   Group = "طالب جديد"
)

// KnownGroups возвращает закрытый список групп для выбора в интерфейсе.
func KnownGroups() []Group {
	return []Group{GroupSecondary, GroupIntermediate, GroupNewStudent}
}

// IsValid проверяет, что группа непустая.
func (g Group) IsValid() bool {
	return strings.TrimSpace(string(g)) != ""
}

// String возвращает строковое представление группы.
func (g Group) String() string {
	return string(g)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidName - невалидное имя ученика.
	ErrInvalidName = errors.New("invalid student name: must be 1-120 chars after trimming")

	// ErrEmptyID - пустой идентификатор ученика.
	ErrEmptyID = errors.New("student id is required")

	// ErrDuplicateName - ученик с таким именем уже зарегистрирован.
	ErrDuplicateName = errors.New("student with this name already registered")

	// ErrDuplicateID - ученик с таким идентификатором уже зарегистрирован.
	ErrDuplicateID = errors.New("student with this id already registered")

	// ErrNotFound - ученик не найден.
	ErrNotFound = errors.New("student not found")
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student - сущность ученика образовательного центра.
// После создания запись не редактируется и не удаляется.
type Student struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// Name - отображаемое имя ученика.
	Name Name

	// Group - учебная группа.
	Group Group

	// JoinedAt - время добавления в список.
	JoinedAt time.Time

	// Notes - произвольные заметки. Ни одна операция их не меняет,
	// поле зарезервировано для будущего использования.
	Notes string
}

// NewStudent создаёт нового ученика с валидацией всех полей.
// Идентификатор генерируется на уровне приложения и передаётся сюда.
func NewStudent(id string, name Name, group Group, joinedAt time.Time) (*Student, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	if !name.IsValid() {
		return nil, ErrInvalidName
	}

	if !group.IsValid() {
		group = GroupNewStudent
	}

	return &Student{
		ID:       id,
		Name:     name.Normalized(),
		Group:    group,
		JoinedAt: joinedAt.UTC(),
	}, nil
}

// Matches проверяет, содержит ли имя ученика поисковую подстроку.
// Пустой запрос совпадает со всеми учениками.
func (s *Student) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(string(s.Name)), q)
}
