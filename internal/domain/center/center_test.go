package center

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/student"
)

func addStudent(t *testing.T, c *Center, id, name string) {
	t.Helper()
	s, err := student.NewStudent(id, student.Name(name), student.GroupSecondary, time.Now())
	require.NoError(t, err)
	require.NoError(t, c.AddStudent(s))
}

func TestNewProfile_Validation(t *testing.T) {
	_, err := NewProfile("", TitleSupervisor, "مسجد النور")
	assert.ErrorIs(t, err, ErrIncompleteProfile)

	_, err = NewProfile("عبدالله", TitleSupervisor, "  ")
	assert.ErrorIs(t, err, ErrIncompleteProfile)

	_, err = NewProfile("عبدالله", Title("طالب"), "مسجد النور")
	assert.ErrorIs(t, err, ErrInvalidTitle)

	p, err := NewProfile("  عبدالله  ", TitleDirector, " مسجد النور ")
	require.NoError(t, err)
	assert.Equal(t, "عبدالله", p.Name)
	assert.Equal(t, "مسجد النور", p.Mosque)
	assert.True(t, p.IsComplete())
}

func TestCenter_SetStatus_UnknownStudent(t *testing.T) {
	c := New()

	_, err := c.SetStatus("ghost", "2025-03-08", attendance.SlotSatDawn, attendance.StatusPresent, "05:42")
	assert.ErrorIs(t, err, student.ErrNotFound)
}

func TestCenter_MarkAll_CoversWholeRoster(t *testing.T) {
	c := New()
	addStudent(t, c, "s1", "أحمد")
	addStudent(t, c, "s2", "خالد")
	addStudent(t, c, "s3", "عمر")

	n, err := c.MarkAll("2025-03-08", attendance.SlotSatDawn, attendance.StatusPresent, "05:55")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, c.RecordsForDateSlot("2025-03-08", attendance.SlotSatDawn), 3)
}

func TestCenter_SnapshotRoundTrip(t *testing.T) {
	c := New()
	addStudent(t, c, "s1", "أحمد")
	addStudent(t, c, "s2", "خالد")

	_, err := c.SetStatus("s1", "2025-03-08", attendance.SlotSatDawn, attendance.StatusPresent, "05:42")
	require.NoError(t, err)

	p, err := NewProfile("عبدالله", TitleDirector, "مسجد النور")
	require.NoError(t, err)
	c.SaveProfile(p)

	restored := Restore(c.Snapshot())

	assert.Len(t, restored.Students(), 2)
	assert.Equal(t, p, restored.Profile())

	r, ok := restored.Record(attendance.Key{StudentID: "s1", Date: "2025-03-08", Slot: attendance.SlotSatDawn})
	require.True(t, ok)
	assert.Equal(t, attendance.StatusPresent, r.Status)
	assert.Equal(t, "05:42", r.CheckInTime)
}

func TestRestore_SkipsCorruptStudents(t *testing.T) {
	snap := Snapshot{
		Students: []StudentSnapshot{
			{ID: "s1", Name: "أحمد", Group: "مجموعة الثانوي", JoinedAt: time.Now()},
			{ID: "", Name: "بلا معرف"},
			{ID: "s2", Name: "أحمد"}, // дубликат имени
		},
	}

	c := Restore(snap)
	assert.Len(t, c.Students(), 1)
	// Профиль без валидной должности заменяется профилем по умолчанию.
	assert.Equal(t, TitleSupervisor, c.Profile().Title)
}
