package query

import (
	"context"
	"errors"

	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/domain/report"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET MONTHLY REPORT QUERY
// Помесячный отчёт: рейтинг учеников по суммарному проценту присутствия.
// Пересчитывается заново при каждом вызове.
// ══════════════════════════════════════════════════════════════════════════════

// GetMonthlyReportQuery содержит параметры отчёта.
type GetMonthlyReportQuery struct {
	// Month - календарный месяц 1-12.
	Month int
}

// Validate проверяет корректность параметров запроса.
func (q *GetMonthlyReportQuery) Validate() error {
	if q.Month < 1 || q.Month > 12 {
		return errors.New("get_monthly_report: month must be 1-12")
	}
	return nil
}

// MonthlyReportDTO - отчёт вместе с профилем наставника для подписи.
type MonthlyReportDTO struct {
	Report     report.Monthly `json:"report"`
	Supervisor center.Profile `json:"supervisor"`
}

// GetMonthlyReportHandler обрабатывает GetMonthlyReportQuery.
type GetMonthlyReportHandler struct {
	center *center.Center
}

// NewGetMonthlyReportHandler создаёт новый GetMonthlyReportHandler.
func NewGetMonthlyReportHandler(c *center.Center) *GetMonthlyReportHandler {
	return &GetMonthlyReportHandler{center: c}
}

// Handle строит отчёт за месяц.
func (h *GetMonthlyReportHandler) Handle(ctx context.Context, q GetMonthlyReportQuery) (*MonthlyReportDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return &MonthlyReportDTO{
		Report:     report.BuildMonthly(h.center.Roster(), h.center.Ledger(), q.Month),
		Supervisor: h.center.Profile(),
	}, nil
}
