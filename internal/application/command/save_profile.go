package command

import (
	"context"

	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/domain/shared"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SAVE PROFILE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// SaveProfileCommand contains the supervisor profile fields.
type SaveProfileCommand struct {
	Name   string
	Title  center.Title
	Mosque string
}

// SaveProfileResult contains the outcome of the save.
type SaveProfileResult struct {
	Rejected bool
	Notice   string
	Profile  center.Profile
}

const (
	noticeIncompleteProfile = "يرجى إكمال جميع الحقول"
	noticeProfileSaved      = "تم حفظ الملف الشخصي بنجاح"
)

// SaveProfileHandler handles the SaveProfileCommand.
type SaveProfileHandler struct {
	center *center.Center
	saver  snapshotSaver
	log    *logger.Logger
}

// NewSaveProfileHandler creates a new SaveProfileHandler.
func NewSaveProfileHandler(c *center.Center, repo center.SnapshotRepository, publisher shared.EventPublisher, log *logger.Logger) *SaveProfileHandler {
	return &SaveProfileHandler{
		center: c,
		saver:  snapshotSaver{repo: repo, publisher: publisher, log: log},
		log:    log,
	}
}

// Handle overwrites the singleton profile. There is no history.
func (h *SaveProfileHandler) Handle(ctx context.Context, cmd SaveProfileCommand) (*SaveProfileResult, error) {
	p, err := center.NewProfile(cmd.Name, cmd.Title, cmd.Mosque)
	if err != nil {
		return &SaveProfileResult{Rejected: true, Notice: noticeIncompleteProfile}, nil
	}

	h.center.SaveProfile(p)

	h.saver.publish(shared.NewProfileSavedEvent(p.Name, p.Title.String(), p.Mosque))
	h.saver.save(ctx, h.center)

	if h.log != nil {
		h.log.Info("supervisor profile saved", logger.String("title", p.Title.String()))
	}

	return &SaveProfileResult{Profile: p, Notice: noticeProfileSaved}, nil
}
