package access

import (
	"github.com/athar-center/siraj-hub/internal/domain/attendance"
)

// ══════════════════════════════════════════════════════════════════════════════
// DAY-UNLOCK STATE MACHINE
// ══════════════════════════════════════════════════════════════════════════════

// UnlockState - транзитное состояние разблокировки дня.
// Разблокировка привязана к конкретной паре (слот, дата) и гаснет при
// любом из переходов: смена слота, смена даты, повторный вход на экран
// ввода с главного экрана. Она никогда не переживает навигацию и не
// сохраняется в снимке состояния.
type UnlockState struct {
	active bool
	slot   attendance.Slot
	date   string
}

// NewUnlockState создаёт закрытое состояние.
func NewUnlockState() *UnlockState {
	return &UnlockState{}
}

// Active возвращает true, если разблокировка действует для пары (слот, дата).
func (u *UnlockState) Active(slot attendance.Slot, date string) bool {
	return u.active && u.slot == slot && u.date == date
}

// Unlock активирует разблокировку для пары (слот, дата).
// Вызывается только после успешной проверки второго пароля.
func (u *UnlockState) Unlock(slot attendance.Slot, date string) {
	u.active = true
	u.slot = slot
	u.date = date
}

// SlotChanged гасит разблокировку при смене выбранного слота.
func (u *UnlockState) SlotChanged(newSlot attendance.Slot) {
	if u.active && u.slot != newSlot {
		u.reset()
	}
}

// DateChanged гасит разблокировку при смене выбранной даты.
func (u *UnlockState) DateChanged(newDate string) {
	if u.active && u.date != newDate {
		u.reset()
	}
}

// ViewReentered гасит разблокировку при повторном входе на экран ввода.
func (u *UnlockState) ViewReentered() {
	u.reset()
}

func (u *UnlockState) reset() {
	u.active = false
	u.slot = ""
	u.date = ""
}
