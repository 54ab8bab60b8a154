package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athar-center/siraj-hub/internal/application/command"
	"github.com/athar-center/siraj-hub/internal/domain/access"
	"github.com/athar-center/siraj-hub/internal/domain/attendance"
)

func newTestNavigator() (*Navigator, *command.SessionHandler) {
	session := command.NewSessionHandler(command.Secrets{
		LoginPassphrase:  "login",
		UnlockPassphrase: "unlock",
	}, nil, nil)
	return NewNavigator(session), session
}

func TestNavigator_MonthClampsToSeason(t *testing.T) {
	nav, _ := newTestNavigator()

	nav.SetMonth(3)
	nav.PrevMonth()
	nav.PrevMonth()
	assert.Equal(t, access.SeasonMonth(1), nav.Month())

	nav.PrevMonth()
	assert.Equal(t, access.SeasonMonth(1), nav.Month())

	nav.SetMonth(7)
	nav.NextMonth()
	assert.Equal(t, access.SeasonMonth(7), nav.Month())

	nav.SetMonth(12)
	assert.Equal(t, access.SeasonMonth(7), nav.Month())
}

func TestNavigator_SlotChangeResetsUnlock(t *testing.T) {
	nav, session := newTestNavigator()
	require.NoError(t, nav.SetDate("2025-03-05"))

	session.UnlockDay("unlock", nav.Slot(), nav.Date())
	require.True(t, session.DayUnlocked(nav.Slot(), nav.Date()))

	require.NoError(t, nav.SetSlot(attendance.SlotSatAsr))
	assert.False(t, session.DayUnlocked(nav.Slot(), nav.Date()))
}

func TestNavigator_SameSlotKeepsUnlock(t *testing.T) {
	nav, session := newTestNavigator()
	require.NoError(t, nav.SetDate("2025-03-05"))

	session.UnlockDay("unlock", nav.Slot(), nav.Date())
	require.NoError(t, nav.SetSlot(nav.Slot()))
	assert.True(t, session.DayUnlocked(nav.Slot(), nav.Date()))
}

func TestNavigator_DateChangeResetsUnlock(t *testing.T) {
	nav, session := newTestNavigator()
	require.NoError(t, nav.SetDate("2025-03-05"))

	session.UnlockDay("unlock", nav.Slot(), nav.Date())
	require.NoError(t, nav.SetDate("2025-03-06"))
	assert.False(t, session.DayUnlocked(nav.Slot(), nav.Date()))
}

func TestNavigator_EnterEntryViewResetsSearchAndUnlock(t *testing.T) {
	nav, session := newTestNavigator()
	nav.SetSearch("محمد")
	session.UnlockDay("unlock", nav.Slot(), nav.Date())

	nav.Enter(access.ViewClass)
	assert.Empty(t, nav.Search())
	assert.Equal(t, attendance.SlotSatDawn, nav.Slot())
	assert.False(t, session.DayUnlocked(nav.Slot(), nav.Date()))

	nav.Enter(access.ViewPrayer)
	assert.Equal(t, attendance.SlotPrayerFajr, nav.Slot())
}

func TestNavigator_RejectsBadSlotAndDate(t *testing.T) {
	nav, _ := newTestNavigator()

	assert.Error(t, nav.SetSlot("SUN_NOON"))
	assert.Error(t, nav.SetDate("03/05/2025"))
}

func TestNavigator_ContextReflectsUnlock(t *testing.T) {
	nav, session := newTestNavigator()
	nav.Enter(access.ViewClass)
	require.NoError(t, nav.SetDate("2025-03-05"))

	assert.False(t, nav.Context().DayUnlocked)
	session.UnlockDay("unlock", nav.Slot(), nav.Date())
	assert.True(t, nav.Context().DayUnlocked)
	assert.Equal(t, access.ViewClass, nav.Context().View)
}

func TestNoticeSink_ExpiresAfterTTL(t *testing.T) {
	sink := NewNoticeSink(time.Second)
	base := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	now := base
	sink.now = func() time.Time { return now }

	sink.Push("أولى")
	sink.Push("ثانية")
	assert.Equal(t, []string{"أولى", "ثانية"}, sink.Active())

	now = base.Add(2 * time.Second)
	assert.Empty(t, sink.Active())
}

func TestNoticeSink_IgnoresEmpty(t *testing.T) {
	sink := NewNoticeSink(time.Second)
	sink.Push("")
	assert.Empty(t, sink.Active())
}
