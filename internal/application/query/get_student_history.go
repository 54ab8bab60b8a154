package query

import (
	"context"
	"errors"

	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/domain/report"
	"github.com/athar-center/siraj-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT HISTORY QUERY
// Карточка одного ученика за месяц: показатели и записи, новые первыми.
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentHistoryQuery содержит параметры карточки.
type GetStudentHistoryQuery struct {
	// StudentID - внутренний ID ученика.
	StudentID string

	// Month - календарный месяц 1-12.
	Month int
}

// Validate проверяет корректность параметров запроса.
func (q *GetStudentHistoryQuery) Validate() error {
	if q.StudentID == "" {
		return errors.New("get_student_history: student_id is required")
	}
	if q.Month < 1 || q.Month > 12 {
		return errors.New("get_student_history: month must be 1-12")
	}
	return nil
}

// GetStudentHistoryHandler обрабатывает GetStudentHistoryQuery.
type GetStudentHistoryHandler struct {
	center *center.Center
}

// NewGetStudentHistoryHandler создаёт новый GetStudentHistoryHandler.
func NewGetStudentHistoryHandler(c *center.Center) *GetStudentHistoryHandler {
	return &GetStudentHistoryHandler{center: c}
}

// Handle строит карточку ученика.
// Возвращает student.ErrNotFound для неизвестного ученика.
func (h *GetStudentHistoryHandler) Handle(ctx context.Context, q GetStudentHistoryQuery) (*report.StudentMonthly, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s, err := h.center.Roster().Get(q.StudentID)
	if err != nil {
		return nil, student.ErrNotFound
	}

	card := report.BuildStudentMonthly(s, h.center.Ledger().ForStudentMonth(s.ID, q.Month))
	return &card, nil
}
