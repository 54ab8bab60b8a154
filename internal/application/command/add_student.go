package command

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/domain/shared"
	"github.com/athar-center/siraj-hub/internal/domain/student"
	"github.com/athar-center/siraj-hub/pkg/logger"
	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand contains the data to register a new student.
type AddStudentCommand struct {
	// Name is the student display name, trimmed before use.
	Name string

	// Group is the study group label; empty falls back to the default group.
	Group string
}

// AddStudentResult contains the outcome of the registration.
type AddStudentResult struct {
	// Rejected is true when validation refused the command.
	Rejected bool

	// Notice is the human-readable rejection reason, empty on success.
	Notice string

	// Student is the created entity, nil when rejected.
	Student *student.Student
}

// Rejection notices shown to the supervisor.
const (
	noticeEmptyName     = "اسم الطالب مطلوب"
	noticeDuplicateName = "هذا الطالب مسجل بالفعل"
)

// AddStudentHandler handles the AddStudentCommand.
type AddStudentHandler struct {
	center *center.Center
	saver  snapshotSaver
	log    *logger.Logger
}

// NewAddStudentHandler creates a new AddStudentHandler.
func NewAddStudentHandler(c *center.Center, repo center.SnapshotRepository, publisher shared.EventPublisher, log *logger.Logger) *AddStudentHandler {
	return &AddStudentHandler{
		center: c,
		saver:  snapshotSaver{repo: repo, publisher: publisher, log: log},
		log:    log,
	}
}

// Handle registers the student. Validation failures surface as a
// rejected result with a notice, never as an error; errors are
// reserved for unexpected internal failures.
func (h *AddStudentHandler) Handle(ctx context.Context, cmd AddStudentCommand) (*AddStudentResult, error) {
	name := student.Name(strings.TrimSpace(cmd.Name))
	if !name.IsValid() {
		return &AddStudentResult{Rejected: true, Notice: noticeEmptyName}, nil
	}

	s, err := student.NewStudent(uuid.NewString(), name, student.Group(cmd.Group), timeutil.Now())
	if err != nil {
		return &AddStudentResult{Rejected: true, Notice: noticeEmptyName}, nil
	}

	if err := h.center.AddStudent(s); err != nil {
		return &AddStudentResult{Rejected: true, Notice: noticeDuplicateName}, nil
	}

	h.saver.publish(shared.NewStudentAddedEvent(s.ID, s.Name.String()))
	h.saver.save(ctx, h.center)

	if h.log != nil {
		h.log.Info("student added",
			logger.StudentID(s.ID),
			logger.StudentName(s.Name.String()))
	}

	return &AddStudentResult{Student: s}, nil
}
