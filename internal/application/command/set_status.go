package command

import (
	"context"

	"github.com/athar-center/siraj-hub/internal/domain/access"
	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/domain/shared"
	"github.com/athar-center/siraj-hub/internal/domain/student"
	"github.com/athar-center/siraj-hub/pkg/logger"
	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SET STATUS COMMAND
// The single-record toggle primitive: create, overwrite, or un-mark.
// ══════════════════════════════════════════════════════════════════════════════

// ViewContext carries the navigation state the access policy consumes.
type ViewContext struct {
	CurrentMonth access.SeasonMonth
	ViewedMonth  access.SeasonMonth
	View         access.View
	DayUnlocked  bool
}

// SetStatusCommand contains the data for a single attendance mark.
type SetStatusCommand struct {
	StudentID string
	Date      string // YYYY-MM-DD
	Slot      attendance.Slot
	Status    attendance.Status
	Context   ViewContext
}

// SetStatusResult contains the outcome of the mark.
type SetStatusResult struct {
	// Rejected is true when the access policy or validation refused
	// the command; state is untouched in that case.
	Rejected bool

	// Notice is the human-readable rejection reason, empty on success.
	Notice string

	// Mutation describes what happened to the record on success.
	Mutation attendance.Mutation
}

const noticeUnknownStudent = "الطالب غير موجود"
const noticeBadMark = "تعذر تسجيل الحضور"

// SetStatusHandler handles the SetStatusCommand.
type SetStatusHandler struct {
	center *center.Center
	saver  snapshotSaver
	log    *logger.Logger
}

// NewSetStatusHandler creates a new SetStatusHandler.
func NewSetStatusHandler(c *center.Center, repo center.SnapshotRepository, publisher shared.EventPublisher, log *logger.Logger) *SetStatusHandler {
	return &SetStatusHandler{
		center: c,
		saver:  snapshotSaver{repo: repo, publisher: publisher, log: log},
		log:    log,
	}
}

// Handle applies the toggle primitive. On policy denial the command is
// a no-op and the result carries the denial notice.
func (h *SetStatusHandler) Handle(ctx context.Context, cmd SetStatusCommand) (*SetStatusResult, error) {
	decision := access.Decide(access.Request{
		CurrentMonth: cmd.Context.CurrentMonth,
		ViewedMonth:  cmd.Context.ViewedMonth,
		View:         cmd.Context.View,
		Slot:         cmd.Slot,
		Date:         cmd.Date,
		DayUnlocked:  cmd.Context.DayUnlocked,
	})
	if !decision.Allowed {
		return &SetStatusResult{Rejected: true, Notice: decision.Notice()}, nil
	}

	checkIn := timeutil.CheckInClock(timeutil.Now())
	m, err := h.center.SetStatus(cmd.StudentID, cmd.Date, cmd.Slot, cmd.Status, checkIn)
	if err != nil {
		if err == student.ErrNotFound {
			return &SetStatusResult{Rejected: true, Notice: noticeUnknownStudent}, nil
		}
		return &SetStatusResult{Rejected: true, Notice: noticeBadMark}, nil
	}

	switch m.Kind {
	case attendance.MutationRemoved:
		h.saver.publish(shared.NewAttendanceClearedEvent(cmd.StudentID, cmd.Date, cmd.Slot.String()))
	default:
		h.saver.publish(shared.NewAttendanceMarkedEvent(
			cmd.StudentID, cmd.Date, cmd.Slot.String(), cmd.Status.String(),
			m.Kind == attendance.MutationOverwritten))
	}
	h.saver.save(ctx, h.center)

	if h.log != nil {
		h.log.Info("attendance mark applied",
			logger.StudentID(cmd.StudentID),
			logger.RecordDate(cmd.Date),
			logger.Slot(cmd.Slot.String()),
			logger.Status(cmd.Status.String()),
			logger.String("mutation", string(m.Kind)))
	}

	return &SetStatusResult{Mutation: m}, nil
}
