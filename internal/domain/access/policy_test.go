package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
)

// 2025-03-08 - суббота, 2025-03-05 - среда.
const (
	saturday  = "2025-03-08"
	wednesday = "2025-03-05"
)

func entryRequest() Request {
	return Request{
		CurrentMonth: 3,
		ViewedMonth:  3,
		View:         ViewClass,
		Slot:         attendance.SlotSatDawn,
		Date:         saturday,
	}
}

func TestDecide_Allowed(t *testing.T) {
	d := Decide(entryRequest())
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Notice())
}

func TestDecide_PastMonthDeniedRegardless(t *testing.T) {
	req := entryRequest()
	req.CurrentMonth = 3
	req.ViewedMonth = 2
	req.DayUnlocked = true // разблокировка не обходит историческую блокировку

	d := Decide(req)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyPastMonth, d.Reason)
	assert.NotEmpty(t, d.Notice())
}

func TestDecide_FutureMonthAllowed(t *testing.T) {
	req := entryRequest()
	req.ViewedMonth = 4

	assert.True(t, Decide(req).Allowed)
}

func TestDecide_WeekdayBinding(t *testing.T) {
	req := entryRequest()
	req.Date = wednesday // SAT_DAWN в среду

	d := Decide(req)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyWrongWeekday, d.Reason)

	// Разблокировка дня снимает привязку.
	req.DayUnlocked = true
	assert.True(t, Decide(req).Allowed)

	// WED_MAGHRIB в среду разрешён без разблокировки.
	req = entryRequest()
	req.Slot = attendance.SlotWedMaghrib
	req.Date = wednesday
	assert.True(t, Decide(req).Allowed)
}

func TestDecide_PrayerSlotsUnbound(t *testing.T) {
	for _, slot := range attendance.PrayerSlots() {
		req := entryRequest()
		req.View = ViewPrayer
		req.Slot = slot
		req.Date = wednesday

		assert.True(t, Decide(req).Allowed, "prayer slot %s", slot)
	}
}

func TestDecide_ReadOnlyViews(t *testing.T) {
	for _, view := range []View{ViewHome, ViewStats, ViewProfile} {
		req := entryRequest()
		req.View = view

		d := Decide(req)
		assert.False(t, d.Allowed, "view %s", view)
		assert.Equal(t, DenyReadOnlyView, d.Reason)
	}
}

func TestUnlockState_Transitions(t *testing.T) {
	u := NewUnlockState()
	assert.False(t, u.Active(attendance.SlotSatDawn, wednesday))

	u.Unlock(attendance.SlotSatDawn, wednesday)
	assert.True(t, u.Active(attendance.SlotSatDawn, wednesday))
	assert.False(t, u.Active(attendance.SlotSatAsr, wednesday))

	// Смена даты гасит разблокировку.
	u.DateChanged(saturday)
	assert.False(t, u.Active(attendance.SlotSatDawn, wednesday))

	// Смена слота гасит разблокировку.
	u.Unlock(attendance.SlotSatDawn, wednesday)
	u.SlotChanged(attendance.SlotWedMaghrib)
	assert.False(t, u.Active(attendance.SlotSatDawn, wednesday))

	// Повторный вход на экран ввода гасит разблокировку.
	u.Unlock(attendance.SlotSatDawn, wednesday)
	u.ViewReentered()
	assert.False(t, u.Active(attendance.SlotSatDawn, wednesday))

	// Переходы без фактической смены значения разблокировку не гасят.
	u.Unlock(attendance.SlotSatDawn, wednesday)
	u.SlotChanged(attendance.SlotSatDawn)
	u.DateChanged(wednesday)
	assert.True(t, u.Active(attendance.SlotSatDawn, wednesday))
}

func TestCurrentMonth_Unclamped(t *testing.T) {
	march := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, SeasonMonth(3), CurrentMonth(march))

	// Вне сезона реальный месяц выходит за диапазон 1-7.
	november := time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, SeasonMonth(11), CurrentMonth(november))

	assert.Equal(t, SeasonFirstMonth, SeasonMonth(0).Clamp())
	assert.True(t, SeasonMonth(7).IsValid())
	assert.False(t, SeasonMonth(8).IsValid())
}

func TestInitialViewMonth_OutOfSeasonOpensOnFirst(t *testing.T) {
	march := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, SeasonMonth(3), InitialViewMonth(march))

	november := time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, SeasonFirstMonth, InitialViewMonth(november))
}

func TestDecide_OutOfSeasonLocksEverySeasonMonth(t *testing.T) {
	november := time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)

	for m := SeasonFirstMonth; m <= SeasonLastMonth; m++ {
		req := entryRequest()
		req.CurrentMonth = CurrentMonth(november)
		req.ViewedMonth = m
		req.DayUnlocked = true

		d := Decide(req)
		assert.False(t, d.Allowed, "season month %d", m)
		assert.Equal(t, DenyPastMonth, d.Reason)
	}
}
