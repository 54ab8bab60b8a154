// Package center содержит агрегат центра: список учеников, журнал
// посещаемости и профиль наставника, плюс контракт снимка состояния.
package center

import (
	"errors"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUPERVISOR PROFILE
// ══════════════════════════════════════════════════════════════════════════════

// Title - должность наставника.
type Title string

const (
	// TitleSupervisor - воспитательный наставник.
	TitleSupervisor Title = "مشرف تربوي"
	// TitleDirector - директор центра.
	TitleDirector Title = "مدير المركز"
)

// IsValid проверяет, что должность одна из двух перечисленных.
func (t Title) IsValid() bool {
	return t == TitleSupervisor || t == TitleDirector
}

// String возвращает арабское название должности.
func (t Title) String() string {
	return string(t)
}

// Ошибки профиля.
var (
	ErrIncompleteProfile = errors.New("supervisor name and mosque are required")
	ErrInvalidTitle      = errors.New("invalid supervisor title")
)

// Profile - профиль наставника. Единственная запись без истории,
// перезаписывается целиком при сохранении.
type Profile struct {
	Name   string `json:"name"`
	Title  Title  `json:"title"`
	Mosque string `json:"mosque"`
}

// DefaultProfile возвращает пустой профиль с должностью по умолчанию.
func DefaultProfile() Profile {
	return Profile{Title: TitleSupervisor}
}

// NewProfile создаёт профиль с валидацией полей.
func NewProfile(name string, title Title, mosque string) (Profile, error) {
	name = strings.TrimSpace(name)
	mosque = strings.TrimSpace(mosque)
	if name == "" || mosque == "" {
		return Profile{}, ErrIncompleteProfile
	}
	if !title.IsValid() {
		return Profile{}, ErrInvalidTitle
	}

	return Profile{Name: name, Title: title, Mosque: mosque}, nil
}

// IsComplete возвращает true, если заполнены имя и мечеть.
func (p Profile) IsComplete() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Mosque) != ""
}
