package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/athar-center/siraj-hub/internal/domain/access"
	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/domain/shared"
	"github.com/athar-center/siraj-hub/internal/domain/student"
)

// memoryRepo is a trivial in-memory snapshot repository for tests.
type memoryRepo struct {
	snap  center.Snapshot
	saves int
}

func (m *memoryRepo) Load(ctx context.Context) (center.Snapshot, error) {
	return m.snap, nil
}

func (m *memoryRepo) Save(ctx context.Context, snap center.Snapshot) error {
	m.snap = snap
	m.saves++
	return nil
}

// recordingBus captures published events.
type recordingBus struct {
	events []shared.Event
}

func (b *recordingBus) Publish(event shared.Event) error {
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) types() []shared.EventType {
	out := make([]shared.EventType, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.EventType())
	}
	return out
}

func addRosterStudent(t *testing.T, c *center.Center, id string) {
	t.Helper()
	s, err := student.NewStudent(id, student.Name("student-"+id), student.GroupSecondary, time.Now())
	require.NoError(t, err)
	require.NoError(t, c.AddStudent(s))
}

func entryContext() ViewContext {
	return ViewContext{
		CurrentMonth: 3,
		ViewedMonth:  3,
		View:         access.ViewClass,
	}
}

func TestAddStudent_DuplicateRejected(t *testing.T) {
	c := center.New()
	repo := &memoryRepo{}
	h := NewAddStudentHandler(c, repo, nil, nil)

	res, err := h.Handle(context.Background(), AddStudentCommand{Name: "Omar"})
	require.NoError(t, err)
	assert.False(t, res.Rejected)
	require.NotNil(t, res.Student)
	assert.NotEmpty(t, res.Student.ID)

	// Case-insensitive, whitespace-trimmed duplicate.
	res, err = h.Handle(context.Background(), AddStudentCommand{Name: "omar "})
	require.NoError(t, err)
	assert.True(t, res.Rejected)
	assert.NotEmpty(t, res.Notice)
	assert.Len(t, c.Students(), 1)
	assert.Equal(t, 1, repo.saves)
}

func TestAddStudent_EmptyNameRejected(t *testing.T) {
	c := center.New()
	h := NewAddStudentHandler(c, &memoryRepo{}, nil, nil)

	res, err := h.Handle(context.Background(), AddStudentCommand{Name: "   "})
	require.NoError(t, err)
	assert.True(t, res.Rejected)
	assert.Empty(t, c.Students())
}

func TestSetStatus_PolicyDenialIsNoOp(t *testing.T) {
	c := center.New()
	addRosterStudent(t, c, "s1")
	repo := &memoryRepo{}
	bus := &recordingBus{}
	h := NewSetStatusHandler(c, repo, bus, nil)

	ctxView := entryContext()
	ctxView.ViewedMonth = 2 // historical month

	res, err := h.Handle(context.Background(), SetStatusCommand{
		StudentID: "s1",
		Date:      "2025-02-08",
		Slot:      attendance.SlotSatDawn,
		Status:    attendance.StatusPresent,
		Context:   ctxView,
	})
	require.NoError(t, err)
	assert.True(t, res.Rejected)
	assert.NotEmpty(t, res.Notice)
	assert.Empty(t, c.RecordsForDateSlot("2025-02-08", attendance.SlotSatDawn))
	assert.Zero(t, repo.saves)
	assert.Empty(t, bus.events)
}

func TestSetStatus_ToggleFlow(t *testing.T) {
	c := center.New()
	addRosterStudent(t, c, "s1")
	repo := &memoryRepo{}
	bus := &recordingBus{}
	h := NewSetStatusHandler(c, repo, bus, nil)

	cmd := SetStatusCommand{
		StudentID: "s1",
		Date:      "2025-03-08", // Saturday
		Slot:      attendance.SlotSatDawn,
		Status:    attendance.StatusPresent,
		Context:   entryContext(),
	}

	res, err := h.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, attendance.MutationCreated, res.Mutation.Kind)

	res, err = h.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, attendance.MutationRemoved, res.Mutation.Kind)

	assert.Empty(t, c.RecordsForDateSlot("2025-03-08", attendance.SlotSatDawn))
	assert.Equal(t, 2, repo.saves)
	assert.Contains(t, bus.types(), shared.EventAttendanceMarked)
	assert.Contains(t, bus.types(), shared.EventAttendanceCleared)
}

func TestSetStatus_UnknownStudentRejected(t *testing.T) {
	c := center.New()
	h := NewSetStatusHandler(c, &memoryRepo{}, nil, nil)

	res, err := h.Handle(context.Background(), SetStatusCommand{
		StudentID: "ghost",
		Date:      "2025-03-08",
		Slot:      attendance.SlotSatDawn,
		Status:    attendance.StatusPresent,
		Context:   entryContext(),
	})
	require.NoError(t, err)
	assert.True(t, res.Rejected)
}

func TestMarkAll_PolicyCheckedOnce(t *testing.T) {
	c := center.New()
	addRosterStudent(t, c, "s1")
	addRosterStudent(t, c, "s2")
	repo := &memoryRepo{}
	h := NewMarkAllHandler(c, repo, nil, nil)

	// Denied: wrong weekday without unlock, nothing changes.
	res, err := h.Handle(context.Background(), MarkAllCommand{
		Date:    "2025-03-05", // Wednesday
		Slot:    attendance.SlotSatDawn,
		Status:  attendance.StatusPresent,
		Context: entryContext(),
	})
	require.NoError(t, err)
	assert.True(t, res.Rejected)
	assert.Zero(t, repo.saves)

	// Unlock override permits the same call.
	ctxView := entryContext()
	ctxView.DayUnlocked = true
	res, err = h.Handle(context.Background(), MarkAllCommand{
		Date:    "2025-03-05",
		Slot:    attendance.SlotSatDawn,
		Status:  attendance.StatusPresent,
		Context: ctxView,
	})
	require.NoError(t, err)
	assert.False(t, res.Rejected)
	assert.Equal(t, 2, res.Affected)
	assert.Equal(t, 1, repo.saves)
}

func TestSaveProfile(t *testing.T) {
	c := center.New()
	repo := &memoryRepo{}
	h := NewSaveProfileHandler(c, repo, nil, nil)

	res, err := h.Handle(context.Background(), SaveProfileCommand{
		Name:   "عبدالله",
		Title:  center.TitleDirector,
		Mosque: "مسجد النور",
	})
	require.NoError(t, err)
	assert.False(t, res.Rejected)
	assert.Equal(t, center.TitleDirector, c.Profile().Title)
	assert.Equal(t, 1, repo.saves)

	res, err = h.Handle(context.Background(), SaveProfileCommand{Name: "", Mosque: ""})
	require.NoError(t, err)
	assert.True(t, res.Rejected)
	// Прежний профиль остаётся нетронутым.
	assert.Equal(t, "عبدالله", c.Profile().Name)
}

func TestSessionHandler_LoginAndUnlock(t *testing.T) {
	secrets := Secrets{LoginPassphrase: "09528863", UnlockPassphrase: "0785150356"}
	h := NewSessionHandler(secrets, nil, nil)

	assert.False(t, h.Authenticated())
	assert.False(t, h.Login("wrong").Authenticated)
	assert.True(t, h.Login("09528863").Authenticated)
	assert.True(t, h.Authenticated())

	// Unlock requires the second, distinct passphrase.
	assert.False(t, h.UnlockDay("09528863", attendance.SlotSatDawn, "2025-03-05").Authenticated)
	assert.True(t, h.UnlockDay("0785150356", attendance.SlotSatDawn, "2025-03-05").Authenticated)
	assert.True(t, h.DayUnlocked(attendance.SlotSatDawn, "2025-03-05"))

	// Navigation transitions drop the override.
	h.DateChanged("2025-03-08")
	assert.False(t, h.DayUnlocked(attendance.SlotSatDawn, "2025-03-05"))

	h.Logout()
	assert.False(t, h.Authenticated())
}

func TestVerifyPassphrase_BcryptAndPlain(t *testing.T) {
	assert.True(t, VerifyPassphrase("secret", "secret"))
	assert.False(t, VerifyPassphrase("secret", "other"))
	assert.False(t, VerifyPassphrase("", ""))

	hash, err := bcrypt.GenerateFromPassword([]byte("09528863"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassphrase(string(hash), "09528863"))
	assert.False(t, VerifyPassphrase(string(hash), "12345678"))
}
