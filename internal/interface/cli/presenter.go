package cli

import (
	"fmt"
	"strings"

	"github.com/athar-center/siraj-hub/internal/application/query"
	"github.com/athar-center/siraj-hub/internal/domain/access"
	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/domain/report"
)

// ══════════════════════════════════════════════════════════════════════════════
// PRESENTER
// Форматирует доменные данные для терминала. Только отображение,
// никаких изменений состояния.
// ══════════════════════════════════════════════════════════════════════════════

// Presenter форматирует виды терминала.
type Presenter struct{}

// NewPresenter создаёт презентер.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Арабские названия сезонных месяцев (январь-июль).
var seasonMonthNames = map[access.SeasonMonth]string{
	1: "يناير",
	2: "فبراير",
	3: "مارس",
	4: "أبريل",
	5: "مايو",
	6: "يونيو",
	7: "يوليو",
}

// ─────────────────────────────────────────────────────────────────────────────
// HOME VIEW
// ─────────────────────────────────────────────────────────────────────────────

// FormatHome форматирует домашний экран.
func (p *Presenter) FormatHome(profile center.Profile, students int, month access.SeasonMonth) string {
	var sb strings.Builder

	sb.WriteString("مركز أثر التعليمي\n")
	sb.WriteString(strings.Repeat("─", 40))
	sb.WriteString("\n")
	if profile.IsComplete() {
		sb.WriteString(fmt.Sprintf("%s • %s • %s\n", profile.Name, profile.Title, profile.Mosque))
	}
	sb.WriteString(fmt.Sprintf("الطلاب: %d • الشهر: %s\n", students, seasonMonthNames[month]))
	sb.WriteString("\nالأوامر: class | prayer | stats | profile | add | insight | logout | quit\n")

	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// ATTENDANCE SHEET
// ─────────────────────────────────────────────────────────────────────────────

// FormatSheet форматирует лист посещаемости на дату и слот.
func (p *Presenter) FormatSheet(sheet *query.SheetDTO) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s • %s\n", sheet.SlotLabel, sheet.Date))
	sb.WriteString(strings.Repeat("─", 40))
	sb.WriteString("\n")

	if len(sheet.Rows) == 0 {
		sb.WriteString("لا يوجد طلاب\n")
		return sb.String()
	}

	for i, row := range sheet.Rows {
		sb.WriteString(fmt.Sprintf("%2d. %s (%s)", i+1, row.Name, row.Group))
		if row.Marked {
			sb.WriteString(fmt.Sprintf(" — %s", row.StatusLabel))
			if row.CheckInTime != "" {
				sb.WriteString(fmt.Sprintf(" [%s]", row.CheckInTime))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// MONTHLY REPORT
// ─────────────────────────────────────────────────────────────────────────────

// FormatMonthly форматирует месячный отчёт с лидербордом.
func (p *Presenter) FormatMonthly(dto *query.MonthlyReportDTO) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("تقرير %s\n", seasonMonthNames[access.SeasonMonth(dto.Report.Month).Clamp()]))
	sb.WriteString(strings.Repeat("─", 40))
	sb.WriteString("\n")

	for i, entry := range dto.Report.Leaderboard {
		sb.WriteString(fmt.Sprintf("%2d. %-24s %3d%%  دروس %d/%d  صلوات %d/%d\n",
			i+1, entry.Name, entry.TotalRate,
			entry.Lessons.Present, entry.Lessons.Count,
			entry.Prayers.Present, entry.Prayers.Count))
	}

	if dto.Supervisor.IsComplete() {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s — %s\n", dto.Supervisor.Name, dto.Supervisor.Title))
	}

	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// STUDENT HISTORY
// ─────────────────────────────────────────────────────────────────────────────

// FormatHistory форматирует помесячную историю одного студента.
func (p *Presenter) FormatHistory(sm *report.StudentMonthly) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s (%s) — %d%%\n", sm.Name, sm.Group, sm.TotalRate))
	sb.WriteString(strings.Repeat("─", 40))
	sb.WriteString("\n")

	if len(sm.History) == 0 {
		sb.WriteString("لا توجد سجلات لهذا الشهر\n")
		return sb.String()
	}

	for _, rec := range sm.History {
		sb.WriteString(fmt.Sprintf("%s  %-14s %s", rec.Date, rec.Slot.Label(), rec.Status.Label()))
		if rec.CheckInTime != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", rec.CheckInTime))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// PROFILE VIEW
// ─────────────────────────────────────────────────────────────────────────────

// FormatProfile форматирует профиль наставника.
func (p *Presenter) FormatProfile(profile center.Profile) string {
	var sb strings.Builder

	sb.WriteString("الملف الشخصي\n")
	sb.WriteString(strings.Repeat("─", 40))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("الاسم:   %s\n", emptyDash(profile.Name)))
	sb.WriteString(fmt.Sprintf("الصفة:   %s\n", emptyDash(string(profile.Title))))
	sb.WriteString(fmt.Sprintf("المسجد:  %s\n", emptyDash(profile.Mosque)))

	return sb.String()
}

func emptyDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
