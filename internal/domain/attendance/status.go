package attendance

import "errors"

// ══════════════════════════════════════════════════════════════════════════════
// STATUS
// ══════════════════════════════════════════════════════════════════════════════

// Status представляет статус посещаемости в записи.
type Status string

const (
	// StatusPresent - присутствовал.
	StatusPresent Status = "present"
	// StatusAbsent - отсутствовал.
	StatusAbsent Status = "absent"
	// StatusLate - опоздал.
	StatusLate Status = "late"
	// StatusExcused - отсутствовал по уважительной причине.
	StatusExcused Status = "excused"
)

// statusLabels - человекочитаемые арабские названия статусов.
var statusLabels = map[Status]string{
	StatusPresent: "حاضر",
	StatusAbsent:  "غائب",
	StatusLate:    "متأخر",
	StatusExcused: "مستأذن",
}

// ErrInvalidStatus - неизвестный статус посещаемости.
var ErrInvalidStatus = errors.New("invalid attendance status")

// AllStatuses возвращает все статусы в каноническом порядке.
func AllStatuses() []Status {
	return []Status{StatusPresent, StatusAbsent, StatusLate, StatusExcused}
}

// IsValid проверяет, что статус один из четырёх перечисленных.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label возвращает арабское название статуса.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// String возвращает строковый код статуса.
func (s Status) String() string {
	return string(s)
}
