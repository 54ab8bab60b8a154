package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_WeekdayBinding(t *testing.T) {
	for _, s := range SessionSlots() {
		_, ok := s.Weekday()
		assert.True(t, ok, "session slot %s must bind a weekday", s)
		assert.True(t, s.IsSession())
		assert.False(t, s.IsPrayer())
	}
	for _, s := range PrayerSlots() {
		_, ok := s.Weekday()
		assert.False(t, ok, "prayer slot %s must not bind a weekday", s)
		assert.True(t, s.IsPrayer())
	}
}

func TestSlot_Labels(t *testing.T) {
	assert.Equal(t, "صباح السبت (فجر)", SlotSatDawn.Label())
	assert.Equal(t, "صلاة العشاء", SlotPrayerIsha.Label())
	assert.Equal(t, "حاضر", StatusPresent.Label())
	assert.Equal(t, "مستأذن", StatusExcused.Label())
}

func TestLedger_SetStatus_Create(t *testing.T) {
	l := NewLedger()

	m, err := l.SetStatus("s1", "2025-03-08", SlotSatDawn, StatusPresent, "05:42")
	require.NoError(t, err)
	assert.Equal(t, MutationCreated, m.Kind)
	assert.Equal(t, 1, l.Len())

	r, ok := l.Get(Key{StudentID: "s1", Date: "2025-03-08", Slot: SlotSatDawn})
	require.True(t, ok)
	assert.Equal(t, StatusPresent, r.Status)
	assert.Equal(t, "05:42", r.CheckInTime)
}

func TestLedger_SetStatus_ToggleDeletes(t *testing.T) {
	l := NewLedger()

	_, err := l.SetStatus("s1", "2025-03-08", SlotSatDawn, StatusPresent, "05:42")
	require.NoError(t, err)

	// Повтор того же статуса снимает отметку.
	m, err := l.SetStatus("s1", "2025-03-08", SlotSatDawn, StatusPresent, "05:50")
	require.NoError(t, err)
	assert.Equal(t, MutationRemoved, m.Kind)
	assert.Equal(t, 0, l.Len())

	_, ok := l.Get(Key{StudentID: "s1", Date: "2025-03-08", Slot: SlotSatDawn})
	assert.False(t, ok)
}

func TestLedger_SetStatus_OverwriteKeepsCheckIn(t *testing.T) {
	l := NewLedger()

	_, err := l.SetStatus("s1", "2025-03-08", SlotSatDawn, StatusPresent, "05:42")
	require.NoError(t, err)

	m, err := l.SetStatus("s1", "2025-03-08", SlotSatDawn, StatusLate, "06:10")
	require.NoError(t, err)
	assert.Equal(t, MutationOverwritten, m.Kind)
	assert.Equal(t, 1, l.Len())

	r, ok := l.Get(Key{StudentID: "s1", Date: "2025-03-08", Slot: SlotSatDawn})
	require.True(t, ok)
	assert.Equal(t, StatusLate, r.Status)
	// Время отметки остаётся временем первой записи.
	assert.Equal(t, "05:42", r.CheckInTime)
}

func TestLedger_SetStatus_Validation(t *testing.T) {
	l := NewLedger()

	_, err := l.SetStatus("", "2025-03-08", SlotSatDawn, StatusPresent, "05:42")
	assert.ErrorIs(t, err, ErrEmptyStudentID)

	_, err = l.SetStatus("s1", "08-03-2025", SlotSatDawn, StatusPresent, "05:42")
	assert.ErrorIs(t, err, ErrBadDate)

	_, err = l.SetStatus("s1", "2025-03-08", Slot("LUNCH"), StatusPresent, "05:42")
	assert.ErrorIs(t, err, ErrUnknownSlot)

	_, err = l.SetStatus("s1", "2025-03-08", SlotSatDawn, Status("skipped"), "05:42")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.Equal(t, 0, l.Len())
}

func TestLedger_MarkAll_ReplacesSlot(t *testing.T) {
	l := NewLedger()

	_, err := l.SetStatus("s1", "2025-03-08", SlotSatDawn, StatusAbsent, "05:40")
	require.NoError(t, err)
	_, err = l.SetStatus("s2", "2025-03-08", SlotSatDawn, StatusLate, "05:45")
	require.NoError(t, err)
	// Запись другого слота не должна пострадать.
	_, err = l.SetStatus("s1", "2025-03-08", SlotPrayerFajr, StatusPresent, "05:10")
	require.NoError(t, err)

	n, err := l.MarkAll("2025-03-08", SlotSatDawn, StatusPresent, []string{"s1", "s2", "s3"}, "05:55")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 4, l.Len())

	for _, id := range []string{"s1", "s2", "s3"} {
		r, ok := l.Get(Key{StudentID: id, Date: "2025-03-08", Slot: SlotSatDawn})
		require.True(t, ok, "record for %s", id)
		assert.Equal(t, StatusPresent, r.Status)
		assert.Equal(t, "05:55", r.CheckInTime)
	}

	r, ok := l.Get(Key{StudentID: "s1", Date: "2025-03-08", Slot: SlotPrayerFajr})
	require.True(t, ok)
	assert.Equal(t, StatusPresent, r.Status)
	assert.Equal(t, "05:10", r.CheckInTime)
}

func TestLedger_MarkAll_DoesNotToggle(t *testing.T) {
	l := NewLedger()
	ids := []string{"s1", "s2"}

	_, err := l.MarkAll("2025-03-08", SlotSatDawn, StatusPresent, ids, "05:50")
	require.NoError(t, err)

	// Повторный вызов с тем же статусом не снимает отметки,
	// а обновляет время второй записи.
	_, err = l.MarkAll("2025-03-08", SlotSatDawn, StatusPresent, ids, "06:00")
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())

	for _, id := range ids {
		r, ok := l.Get(Key{StudentID: id, Date: "2025-03-08", Slot: SlotSatDawn})
		require.True(t, ok)
		assert.Equal(t, StatusPresent, r.Status)
		assert.Equal(t, "06:00", r.CheckInTime)
	}
}

func TestLedger_MonthQueries(t *testing.T) {
	l := NewLedger()

	_, err := l.SetStatus("s1", "2025-03-08", SlotSatDawn, StatusPresent, "05:42")
	require.NoError(t, err)
	_, err = l.SetStatus("s1", "2025-03-15", SlotSatAsr, StatusAbsent, "16:05")
	require.NoError(t, err)
	_, err = l.SetStatus("s2", "2025-04-02", SlotWedMaghrib, StatusPresent, "18:30")
	require.NoError(t, err)
	// Фильтр сравнивает только номер месяца, год даты не участвует.
	_, err = l.SetStatus("s2", "2024-03-12", SlotWedMaghrib, StatusLate, "18:40")
	require.NoError(t, err)

	assert.Len(t, l.ForMonth(3), 3)
	assert.Len(t, l.ForMonth(4), 1)
	assert.Empty(t, l.ForMonth(5))

	assert.Len(t, l.ForStudentMonth("s1", 3), 2)
	assert.Len(t, l.ForStudentMonth("s2", 3), 1)
	assert.Empty(t, l.ForStudentMonth("s2", 5))
}

func TestNewLedgerFromRecords_SkipsCorrupt(t *testing.T) {
	good, err := NewRecord("s1", "2025-03-08", SlotSatDawn, StatusPresent, "05:42")
	require.NoError(t, err)

	l := NewLedgerFromRecords([]Record{
		good,
		{StudentID: "", Date: "2025-03-08", Slot: SlotSatDawn, Status: StatusPresent},
		{StudentID: "s2", Date: "2025-03-08", Slot: Slot("LUNCH"), Status: StatusPresent},
		good, // дубликат ключа
	})

	assert.Equal(t, 1, l.Len())
}
