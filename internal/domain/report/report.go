// Package report содержит статистический движок: помесячные показатели
// посещаемости и рейтинг учеников. Всё пересчитывается заново при
// каждом чтении, кэша нет - при масштабе одного небольшого центра
// линейный проход по записям дешевле инвалидации.
package report

import (
	"math"
	"sort"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// BUCKETS
// ══════════════════════════════════════════════════════════════════════════════

// StatBucket - показатели по подмножеству слотов за месяц.
type StatBucket struct {
	// Count - количество записей.
	Count int `json:"count"`
	// Present - количество записей со статусом "присутствовал".
	Present int `json:"present"`
	// Rate - округлённый процент присутствия, 0 при отсутствии записей.
	Rate int `json:"rate"`
}

// rate округляет процент по правилу "половина от нуля".
func rate(present, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(count) * 100))
}

func bucket(records []attendance.Record, match func(attendance.Slot) bool) StatBucket {
	b := StatBucket{}
	for _, r := range records {
		if !match(r.Slot) {
			continue
		}
		b.Count++
		if r.Status == attendance.StatusPresent {
			b.Present++
		}
	}
	b.Rate = rate(b.Present, b.Count)
	return b
}

// ══════════════════════════════════════════════════════════════════════════════
// MONTHLY CARD
// ══════════════════════════════════════════════════════════════════════════════

// StudentMonthly - карточка ученика за месяц.
type StudentMonthly struct {
	StudentID string     `json:"studentId"`
	Name      string     `json:"name"`
	Group     string     `json:"group"`
	Lessons   StatBucket `json:"lessonStats"`
	Prayers   StatBucket `json:"prayerStats"`
	TotalRate int        `json:"totalRate"`

	// History - записи ученика за месяц, новые даты первыми.
	History []attendance.Record `json:"history"`
}

// BuildStudentMonthly считает карточку одного ученика по его записям
// за месяц. Ученик без записей получает нулевые показатели, не ошибку.
func BuildStudentMonthly(s *student.Student, records []attendance.Record) StudentMonthly {
	lessons := bucket(records, attendance.Slot.IsSession)
	prayers := bucket(records, attendance.Slot.IsPrayer)

	history := make([]attendance.Record, len(records))
	copy(history, records)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date > history[j].Date
	})

	return StudentMonthly{
		StudentID: s.ID,
		Name:      s.Name.String(),
		Group:     s.Group.String(),
		Lessons:   lessons,
		Prayers:   prayers,
		TotalRate: rate(lessons.Present+prayers.Present, lessons.Count+prayers.Count),
		History:   history,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MONTHLY REPORT
// ══════════════════════════════════════════════════════════════════════════════

// Monthly - отчёт за календарный месяц: рейтинг всех учеников.
type Monthly struct {
	Month int `json:"month"`
	// Leaderboard - карточки, отсортированные по TotalRate по убыванию.
	// Сортировка стабильная: при равенстве сохраняется порядок списка.
	Leaderboard []StudentMonthly `json:"leaderboard"`
}

// BuildMonthly строит отчёт по всем ученикам списка за месяц.
func BuildMonthly(roster *student.Roster, ledger *attendance.Ledger, month int) Monthly {
	cards := make([]StudentMonthly, 0, roster.Len())
	for _, s := range roster.All() {
		cards = append(cards, BuildStudentMonthly(s, ledger.ForStudentMonth(s.ID, month)))
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].TotalRate > cards[j].TotalRate
	})

	return Monthly{Month: month, Leaderboard: cards}
}

// TotalRecords возвращает суммарное число записей в отчёте.
func (m Monthly) TotalRecords() int {
	total := 0
	for _, c := range m.Leaderboard {
		total += c.Lessons.Count + c.Prayers.Count
	}
	return total
}
