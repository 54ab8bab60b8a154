// Package command contains write operations (CQRS - Commands).
// Every mutating handler asks the access policy first, applies the
// change to the center aggregate, then rewrites the full snapshot.
package command

import (
	"context"

	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/domain/shared"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

// snapshotSaver persists the full center state after every mutation.
// Persistence failures are logged and swallowed: the in-memory state
// stays authoritative for the rest of the session.
type snapshotSaver struct {
	repo      center.SnapshotRepository
	publisher shared.EventPublisher
	log       *logger.Logger
}

func (s snapshotSaver) save(ctx context.Context, c *center.Center) {
	if s.repo == nil {
		return
	}

	snap := c.Snapshot()
	if err := s.repo.Save(ctx, snap); err != nil {
		if s.log != nil {
			s.log.Error("snapshot save failed", logger.Err(err))
		}
		return
	}

	s.publish(shared.NewSnapshotSavedEvent("snapshot", len(snap.Records)))
}

func (s snapshotSaver) publish(event shared.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil && s.log != nil {
		s.log.Warn("event publish failed",
			logger.String("event_type", string(event.EventType())),
			logger.Err(err))
	}
}
