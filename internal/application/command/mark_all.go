package command

import (
	"context"

	"github.com/athar-center/siraj-hub/internal/domain/access"
	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/domain/shared"
	"github.com/athar-center/siraj-hub/pkg/logger"
	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// MARK ALL COMMAND
// Bulk replace for a (date, slot) pair across the whole roster.
// Unlike the single-record primitive this never toggle-deletes.
// ══════════════════════════════════════════════════════════════════════════════

// MarkAllCommand contains the data for a bulk mark.
type MarkAllCommand struct {
	Date    string // YYYY-MM-DD
	Slot    attendance.Slot
	Status  attendance.Status
	Context ViewContext
}

// MarkAllResult contains the outcome of the bulk mark.
type MarkAllResult struct {
	Rejected bool
	Notice   string

	// Affected is the number of records written on success.
	Affected int
}

// MarkAllHandler handles the MarkAllCommand.
type MarkAllHandler struct {
	center *center.Center
	saver  snapshotSaver
	log    *logger.Logger
}

// NewMarkAllHandler creates a new MarkAllHandler.
func NewMarkAllHandler(c *center.Center, repo center.SnapshotRepository, publisher shared.EventPublisher, log *logger.Logger) *MarkAllHandler {
	return &MarkAllHandler{
		center: c,
		saver:  snapshotSaver{repo: repo, publisher: publisher, log: log},
		log:    log,
	}
}

// Handle replaces every record of the (date, slot) pair with a fresh
// record per student at the uniform status. The policy is consulted
// once; on denial nothing changes for any student.
func (h *MarkAllHandler) Handle(ctx context.Context, cmd MarkAllCommand) (*MarkAllResult, error) {
	decision := access.Decide(access.Request{
		CurrentMonth: cmd.Context.CurrentMonth,
		ViewedMonth:  cmd.Context.ViewedMonth,
		View:         cmd.Context.View,
		Slot:         cmd.Slot,
		Date:         cmd.Date,
		DayUnlocked:  cmd.Context.DayUnlocked,
	})
	if !decision.Allowed {
		return &MarkAllResult{Rejected: true, Notice: decision.Notice()}, nil
	}

	checkIn := timeutil.CheckInClock(timeutil.Now())
	n, err := h.center.MarkAll(cmd.Date, cmd.Slot, cmd.Status, checkIn)
	if err != nil {
		return &MarkAllResult{Rejected: true, Notice: noticeBadMark}, nil
	}

	h.saver.publish(shared.NewAttendanceBulkMarkedEvent(cmd.Date, cmd.Slot.String(), cmd.Status.String(), n))
	h.saver.save(ctx, h.center)

	if h.log != nil {
		h.log.Info("bulk attendance mark applied",
			logger.RecordDate(cmd.Date),
			logger.Slot(cmd.Slot.String()),
			logger.Status(cmd.Status.String()),
			logger.StudentCount(n))
	}

	return &MarkAllResult{Affected: n}, nil
}
