// Package cli implements the terminal front end of the Siraj Hub.
// Views, the month navigator and transient notices live here;
// all state changes go through the application command handlers.
package cli

import (
	"github.com/athar-center/siraj-hub/internal/application/command"
	"github.com/athar-center/siraj-hub/internal/domain/access"
	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// NAVIGATOR
// Состояние навигации экрана: активный вид, сезонный месяц, слот, дата и
// поисковый фильтр. Переходы сбрасывают временную разблокировку дня.
// ══════════════════════════════════════════════════════════════════════════════

// Navigator держит текущее положение пользователя в интерфейсе.
type Navigator struct {
	session *command.SessionHandler

	view   access.View
	month  access.SeasonMonth
	slot   attendance.Slot
	date   string
	search string
}

// NewNavigator создаёт навигатор, открытый на домашнем виде текущего
// сезонного месяца.
func NewNavigator(session *command.SessionHandler) *Navigator {
	return &Navigator{
		session: session,
		view:    access.ViewHome,
		month:   access.InitialViewMonth(timeutil.Now()),
		slot:    attendance.SlotSatDawn,
		date:    timeutil.Today(),
	}
}

// View возвращает активный вид.
func (n *Navigator) View() access.View { return n.view }

// Month возвращает просматриваемый сезонный месяц.
func (n *Navigator) Month() access.SeasonMonth { return n.month }

// Slot возвращает активный слот.
func (n *Navigator) Slot() attendance.Slot { return n.slot }

// Date возвращает активную дату в формате ГГГГ-ММ-ДД.
func (n *Navigator) Date() string { return n.date }

// Search возвращает поисковый фильтр (только отображение).
func (n *Navigator) Search() string { return n.search }

// Enter переключает активный вид. Повторный вход в вид ввода
// посещаемости сбрасывает разблокировку дня.
func (n *Navigator) Enter(view access.View) {
	n.view = view
	n.search = ""
	if view.AllowsMutation() {
		n.session.ViewReentered()
		// Each entry view starts on its first slot.
		if view == access.ViewClass {
			n.slot = attendance.SlotSatDawn
		} else {
			n.slot = attendance.SlotPrayerFajr
		}
	}
}

// NextMonth листает месяц вперёд в пределах сезона.
func (n *Navigator) NextMonth() {
	n.month = (n.month + 1).Clamp()
}

// PrevMonth листает месяц назад в пределах сезона.
func (n *Navigator) PrevMonth() {
	n.month = (n.month - 1).Clamp()
}

// SetMonth выставляет месяц с зажимом в границы сезона.
func (n *Navigator) SetMonth(month access.SeasonMonth) {
	n.month = month.Clamp()
}

// SetSlot переключает слот; смена слота сбрасывает разблокировку.
func (n *Navigator) SetSlot(slot attendance.Slot) error {
	if !slot.IsValid() {
		return attendance.ErrUnknownSlot
	}
	if slot != n.slot {
		n.session.SlotChanged(slot)
	}
	n.slot = slot
	return nil
}

// SetDate переключает дату; смена даты сбрасывает разблокировку.
func (n *Navigator) SetDate(date string) error {
	if _, err := timeutil.ParseDate(date); err != nil {
		return err
	}
	if date != n.date {
		n.session.DateChanged(date)
	}
	n.date = date
	return nil
}

// SetSearch выставляет поисковый фильтр списка студентов.
func (n *Navigator) SetSearch(query string) {
	n.search = query
}

// Context собирает контекст представления для командных обработчиков.
func (n *Navigator) Context() command.ViewContext {
	return command.ViewContext{
		CurrentMonth: access.CurrentMonth(timeutil.Now()),
		ViewedMonth:  n.month,
		View:         n.view,
		DayUnlocked:  n.session.DayUnlocked(n.slot, n.date),
	}
}
