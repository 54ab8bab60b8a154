package attendance

import (
	"errors"
	"fmt"

	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Key - композитный ключ записи: (ученик, дата, слот).
// Потребители всегда индексируют записи по ключу, а не по позиции.
type Key struct {
	StudentID string
	Date      string // формат YYYY-MM-DD
	Slot      Slot
}

// String возвращает ключ в виде "studentID|date|slot".
func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s", k.StudentID, k.Date, k.Slot)
}

// Record - запись посещаемости для тройки (ученик, дата, слот).
// Не более одной записи на ключ.
type Record struct {
	StudentID string `json:"studentId"`
	Date      string `json:"date"` // формат YYYY-MM-DD
	Slot      Slot   `json:"slot"`
	Status    Status `json:"status"`

	// CheckInTime - время первой отметки в формате HH:MM (часовой пояс
	// центра). Информационное поле, в вычислениях не участвует.
	CheckInTime string `json:"checkInTime,omitempty"`

	// Зарезервированы для будущего использования, ни одна операция
	// их не заполняет.
	CheckOutTime string `json:"checkOutTime,omitempty"`
	Comment      string `json:"comment,omitempty"`
}

// Ошибки валидации записи.
var (
	ErrEmptyStudentID = errors.New("record student id is required")
	ErrBadDate        = errors.New("record date must be in YYYY-MM-DD format")
)

// NewRecord создаёт запись с валидацией полей.
func NewRecord(studentID, date string, slot Slot, status Status, checkIn string) (Record, error) {
	if studentID == "" {
		return Record{}, ErrEmptyStudentID
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return Record{}, ErrBadDate
	}
	if !slot.IsValid() {
		return Record{}, ErrUnknownSlot
	}
	if !status.IsValid() {
		return Record{}, ErrInvalidStatus
	}

	return Record{
		StudentID:   studentID,
		Date:        date,
		Slot:        slot,
		Status:      status,
		CheckInTime: checkIn,
	}, nil
}

// Key возвращает композитный ключ записи.
func (r Record) Key() Key {
	return Key{StudentID: r.StudentID, Date: r.Date, Slot: r.Slot}
}

// InMonth проверяет, попадает ли дата записи в указанный календарный
// месяц. Год не учитывается: сезон живёт в пределах одного года, и все
// выборки режут записи только по номеру месяца.
func (r Record) InMonth(month int) bool {
	d, err := timeutil.ParseDate(r.Date)
	if err != nil {
		return false
	}
	return int(d.Month()) == month
}
