// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
package query

import (
	"context"
	"errors"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SHEET QUERY
// Лист отметки: все ученики (с учётом поискового фильтра) и их записи
// для выбранной пары (дата, слот).
// ══════════════════════════════════════════════════════════════════════════════

// GetSheetQuery содержит параметры листа отметки.
type GetSheetQuery struct {
	// Date - выбранная дата YYYY-MM-DD.
	Date string

	// Slot - выбранный слот.
	Slot attendance.Slot

	// Search - поисковая подстрока имени (пустая = все ученики).
	Search string
}

// Validate проверяет корректность параметров запроса.
func (q *GetSheetQuery) Validate() error {
	if _, err := timeutil.ParseDate(q.Date); err != nil {
		return errors.New("get_sheet: date must be in YYYY-MM-DD format")
	}
	if !q.Slot.IsValid() {
		return errors.New("get_sheet: unknown slot")
	}
	return nil
}

// SheetRowDTO - строка листа отметки.
type SheetRowDTO struct {
	// StudentID - внутренний ID ученика.
	StudentID string `json:"student_id"`

	// Name - отображаемое имя.
	Name string `json:"name"`

	// Group - учебная группа.
	Group string `json:"group"`

	// Marked - true, если запись для пары (дата, слот) существует.
	Marked bool `json:"marked"`

	// Status - статус записи, пустой без записи.
	Status string `json:"status,omitempty"`

	// StatusLabel - арабское название статуса.
	StatusLabel string `json:"status_label,omitempty"`

	// CheckInTime - время первой отметки HH:MM.
	CheckInTime string `json:"check_in_time,omitempty"`
}

// SheetDTO - лист отметки целиком.
type SheetDTO struct {
	Date      string        `json:"date"`
	Slot      string        `json:"slot"`
	SlotLabel string        `json:"slot_label"`
	Rows      []SheetRowDTO `json:"rows"`
}

// GetSheetHandler обрабатывает GetSheetQuery.
type GetSheetHandler struct {
	center *center.Center
}

// NewGetSheetHandler создаёт новый GetSheetHandler.
func NewGetSheetHandler(c *center.Center) *GetSheetHandler {
	return &GetSheetHandler{center: c}
}

// Handle строит лист отметки.
func (h *GetSheetHandler) Handle(ctx context.Context, q GetSheetQuery) (*SheetDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	byStudent := make(map[string]attendance.Record)
	for _, r := range h.center.RecordsForDateSlot(q.Date, q.Slot) {
		byStudent[r.StudentID] = r
	}

	students := h.center.SearchStudents(q.Search)
	rows := make([]SheetRowDTO, 0, len(students))
	for _, s := range students {
		row := SheetRowDTO{
			StudentID: s.ID,
			Name:      s.Name.String(),
			Group:     s.Group.String(),
		}
		if r, ok := byStudent[s.ID]; ok {
			row.Marked = true
			row.Status = r.Status.String()
			row.StatusLabel = r.Status.Label()
			row.CheckInTime = r.CheckInTime
		}
		rows = append(rows, row)
	}

	return &SheetDTO{
		Date:      q.Date,
		Slot:      q.Slot.String(),
		SlotLabel: q.Slot.Label(),
		Rows:      rows,
	}, nil
}
