// Package attendance содержит доменную модель посещаемости: слоты
// расписания, статусы, записи и журнал с семантикой переключения.
// Здесь нет внешних зависимостей.
package attendance

import (
	"errors"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// SLOT TAXONOMY
// ══════════════════════════════════════════════════════════════════════════════

// Slot представляет слот расписания: учебная сессия или молитва.
type Slot string

const (
	// SlotSatDawn - субботняя утренняя сессия (после фаджра).
	SlotSatDawn Slot = "SAT_DAWN"
	// SlotSatAsr - субботняя послеполуденная сессия.
	SlotSatAsr Slot = "SAT_ASR"
	// SlotWedMaghrib - вечерняя сессия среды (после магриба).
	SlotWedMaghrib Slot = "WED_MAGHRIB"
	// SlotPrayerFajr - молитва фаджр.
	SlotPrayerFajr Slot = "PRAYER_FAJR"
	// SlotPrayerMaghrib - молитва магриб.
	SlotPrayerMaghrib Slot = "PRAYER_MAGHRIB"
	// SlotPrayerIsha - молитва иша.
	SlotPrayerIsha Slot = "PRAYER_ISHA"
)

// slotLabels - человекочитаемые арабские названия слотов.
var slotLabels = map[Slot]string{
	SlotSatDawn:       "صباح السبت (فجر)",
	SlotSatAsr:        "عصر السبت",
	SlotWedMaghrib:    "مساء الأربعاء (مغرب)",
	SlotPrayerFajr:    "صلاة الفجر",
	SlotPrayerMaghrib: "صلاة المغرب",
	SlotPrayerIsha:    "صلاة العشاء",
}

// slotWeekdays - привязка учебных сессий к дню недели.
// Молитвенные слоты не привязаны к дню и в карте отсутствуют.
var slotWeekdays = map[Slot]time.Weekday{
	SlotSatDawn:    time.Saturday,
	SlotSatAsr:     time.Saturday,
	SlotWedMaghrib: time.Wednesday,
}

// ErrUnknownSlot - неизвестный слот расписания.
var ErrUnknownSlot = errors.New("unknown schedule slot")

// SessionSlots возвращает учебные слоты в каноническом порядке.
func SessionSlots() []Slot {
	return []Slot{SlotSatDawn, SlotSatAsr, SlotWedMaghrib}
}

// PrayerSlots возвращает молитвенные слоты в каноническом порядке.
func PrayerSlots() []Slot {
	return []Slot{SlotPrayerFajr, SlotPrayerMaghrib, SlotPrayerIsha}
}

// AllSlots возвращает все слоты: сначала сессии, затем молитвы.
func AllSlots() []Slot {
	return append(SessionSlots(), PrayerSlots()...)
}

// IsValid проверяет, что слот известен расписанию.
func (s Slot) IsValid() bool {
	_, ok := slotLabels[s]
	return ok
}

// IsSession возвращает true для учебных слотов.
func (s Slot) IsSession() bool {
	_, ok := slotWeekdays[s]
	return ok
}

// IsPrayer возвращает true для молитвенных слотов.
func (s Slot) IsPrayer() bool {
	return s.IsValid() && !s.IsSession()
}

// Weekday возвращает день недели, к которому привязана учебная сессия.
// Для молитвенных слотов второй результат равен false.
func (s Slot) Weekday() (time.Weekday, bool) {
	wd, ok := slotWeekdays[s]
	return wd, ok
}

// Label возвращает арабское название слота.
func (s Slot) Label() string {
	if l, ok := slotLabels[s]; ok {
		return l
	}
	return string(s)
}

// String возвращает строковый код слота.
func (s Slot) String() string {
	return string(s)
}
