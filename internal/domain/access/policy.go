// Package access содержит правила, решающие, разрешено ли изменение
// посещаемости в текущем контексте просмотра. Чистые функции без
// внешних зависимостей.
package access

import (
	"errors"
	"time"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEASON MONTH
// ══════════════════════════════════════════════════════════════════════════════

// SeasonMonth - порядковый номер месяца учебного сезона центра (1-7).
// Сезон идёт с января по июль, номер совпадает с календарным месяцем.
type SeasonMonth int

// Границы сезона.
const (
	SeasonFirstMonth SeasonMonth = 1
	SeasonLastMonth  SeasonMonth = 7
)

// ErrOutOfSeason - месяц вне сезона 1-7.
var ErrOutOfSeason = errors.New("month is outside the 1-7 season range")

// IsValid проверяет попадание в диапазон сезона.
func (m SeasonMonth) IsValid() bool {
	return m >= SeasonFirstMonth && m <= SeasonLastMonth
}

// Clamp прижимает значение к границам сезона.
// Используется навигатором месяцев.
func (m SeasonMonth) Clamp() SeasonMonth {
	if m < SeasonFirstMonth {
		return SeasonFirstMonth
	}
	if m > SeasonLastMonth {
		return SeasonLastMonth
	}
	return m
}

// CurrentMonth возвращает реальный календарный месяц на часах центра.
// Вне сезона значение выходит за диапазон 1-7: тогда каждый сезонный
// месяц меньше текущего и историческая блокировка закрывает весь сезон.
func CurrentMonth(now time.Time) SeasonMonth {
	return SeasonMonth(timeutil.MonthOf(now))
}

// InitialViewMonth возвращает месяц, на котором открывается навигатор:
// реальный месяц внутри сезона, первый месяц вне его.
func InitialViewMonth(now time.Time) SeasonMonth {
	m := CurrentMonth(now)
	if !m.IsValid() {
		return SeasonFirstMonth
	}
	return m
}

// ══════════════════════════════════════════════════════════════════════════════
// DECISION
// ══════════════════════════════════════════════════════════════════════════════

// View - активный экран приложения.
type View string

const (
	ViewHome    View = "home"
	ViewClass   View = "class"   // ввод посещаемости учебных сессий
	ViewPrayer  View = "prayer"  // ввод посещаемости молитв
	ViewStats   View = "stats"   // отчёты, только чтение
	ViewProfile View = "profile" // профиль наставника, только чтение
)

// AllowsMutation возвращает true для экранов ввода посещаемости.
func (v View) AllowsMutation() bool {
	return v == ViewClass || v == ViewPrayer
}

// DenyReason - машинная причина отказа.
type DenyReason string

const (
	DenyNone         DenyReason = ""
	DenyPastMonth    DenyReason = "past_month"
	DenyWrongWeekday DenyReason = "wrong_weekday"
	DenyReadOnlyView DenyReason = "read_only_view"
)

// denyNotices - тексты уведомлений об отказе, показываемые наставнику.
var denyNotices = map[DenyReason]string{
	DenyPastMonth:    "لا يمكن تعديل سجلات الأشهر السابقة",
	DenyWrongWeekday: "هذه الجلسة غير مجدولة في هذا اليوم",
	DenyReadOnlyView: "لا يمكن التعديل من هذه الشاشة",
}

// Request - контекст, в котором запрошено изменение.
type Request struct {
	// CurrentMonth - реальный сезонный месяц на часах центра.
	CurrentMonth SeasonMonth
	// ViewedMonth - месяц, открытый в навигаторе.
	ViewedMonth SeasonMonth
	// View - активный экран.
	View View
	// Slot - выбранный слот.
	Slot attendance.Slot
	// Date - выбранная дата YYYY-MM-DD.
	Date string
	// DayUnlocked - транзитный флаг разблокировки дня.
	DayUnlocked bool
}

// Decision - результат проверки.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Notice возвращает текст уведомления для отказа и пустую строку
// для разрешения.
func (d Decision) Notice() string {
	return denyNotices[d.Reason]
}

func deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide применяет правила в фиксированном порядке.
// Историческая блокировка: прошлые сезонные месяцы только для чтения,
// никакой флаг её не обходит. Затем привязка сессии к дню недели,
// которую может обойти только активная разблокировка дня.
func Decide(req Request) Decision {
	if req.ViewedMonth < req.CurrentMonth {
		return deny(DenyPastMonth)
	}

	if !req.View.AllowsMutation() {
		return deny(DenyReadOnlyView)
	}

	if wd, bound := req.Slot.Weekday(); bound {
		d, err := timeutil.ParseDate(req.Date)
		if err != nil || d.Weekday() != wd {
			if !req.DayUnlocked {
				return deny(DenyWrongWeekday)
			}
		}
	}

	return Decision{Allowed: true}
}
