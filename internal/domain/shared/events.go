package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the domain; the in-memory bus delivers them to subscribers
// such as the audit log and the snapshot writer.
const (
	// Roster events
	EventStudentAdded EventType = "roster.student_added"

	// Attendance events
	EventAttendanceMarked     EventType = "attendance.marked"
	EventAttendanceCleared    EventType = "attendance.cleared"
	EventAttendanceBulkMarked EventType = "attendance.bulk_marked"

	// Profile events
	EventProfileSaved EventType = "profile.saved"

	// Session events
	EventSessionOpened EventType = "session.opened"
	EventSessionClosed EventType = "session.closed"
	EventDayUnlocked   EventType = "session.day_unlocked"

	// System events
	EventSnapshotSaved EventType = "system.snapshot_saved"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// StudentAddedEvent is emitted when a new student joins the roster.
type StudentAddedEvent struct {
	BaseEvent
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}

// Payload implements Event interface.
func (e StudentAddedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"name":       e.Name,
	}
}

// NewStudentAddedEvent creates a new StudentAddedEvent.
func NewStudentAddedEvent(studentID, name string) StudentAddedEvent {
	return StudentAddedEvent{
		BaseEvent: NewBaseEvent(EventStudentAdded, studentID),
		StudentID: studentID,
		Name:      name,
	}
}

// AttendanceMarkedEvent is emitted when a record is created or overwritten.
type AttendanceMarkedEvent struct {
	BaseEvent
	StudentID string `json:"student_id"`
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	Status    string `json:"status"`
	Overwrite bool   `json:"overwrite"`
}

// Payload implements Event interface.
func (e AttendanceMarkedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"date":       e.Date,
		"slot":       e.Slot,
		"status":     e.Status,
		"overwrite":  e.Overwrite,
	}
}

// NewAttendanceMarkedEvent creates a new AttendanceMarkedEvent.
func NewAttendanceMarkedEvent(studentID, date, slot, status string, overwrite bool) AttendanceMarkedEvent {
	return AttendanceMarkedEvent{
		BaseEvent: NewBaseEvent(EventAttendanceMarked, studentID),
		StudentID: studentID,
		Date:      date,
		Slot:      slot,
		Status:    status,
		Overwrite: overwrite,
	}
}

// AttendanceClearedEvent is emitted when toggling removes a record.
type AttendanceClearedEvent struct {
	BaseEvent
	StudentID string `json:"student_id"`
	Date      string `json:"date"`
	Slot      string `json:"slot"`
}

// Payload implements Event interface.
func (e AttendanceClearedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"date":       e.Date,
		"slot":       e.Slot,
	}
}

// NewAttendanceClearedEvent creates a new AttendanceClearedEvent.
func NewAttendanceClearedEvent(studentID, date, slot string) AttendanceClearedEvent {
	return AttendanceClearedEvent{
		BaseEvent: NewBaseEvent(EventAttendanceCleared, studentID),
		StudentID: studentID,
		Date:      date,
		Slot:      slot,
	}
}

// AttendanceBulkMarkedEvent is emitted when a whole day/slot is marked at once.
type AttendanceBulkMarkedEvent struct {
	BaseEvent
	Date     string `json:"date"`
	Slot     string `json:"slot"`
	Status   string `json:"status"`
	Affected int    `json:"affected"`
}

// Payload implements Event interface.
func (e AttendanceBulkMarkedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"date":     e.Date,
		"slot":     e.Slot,
		"status":   e.Status,
		"affected": e.Affected,
	}
}

// NewAttendanceBulkMarkedEvent creates a new AttendanceBulkMarkedEvent.
func NewAttendanceBulkMarkedEvent(date, slot, status string, affected int) AttendanceBulkMarkedEvent {
	return AttendanceBulkMarkedEvent{
		BaseEvent: NewBaseEvent(EventAttendanceBulkMarked, date+"|"+slot),
		Date:      date,
		Slot:      slot,
		Status:    status,
		Affected:  affected,
	}
}

// ProfileSavedEvent is emitted when the supervisor profile is updated.
type ProfileSavedEvent struct {
	BaseEvent
	Name   string `json:"name"`
	Title  string `json:"title"`
	Mosque string `json:"mosque"`
}

// Payload implements Event interface.
func (e ProfileSavedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name":   e.Name,
		"title":  e.Title,
		"mosque": e.Mosque,
	}
}

// NewProfileSavedEvent creates a new ProfileSavedEvent.
func NewProfileSavedEvent(name, title, mosque string) ProfileSavedEvent {
	return ProfileSavedEvent{
		BaseEvent: NewBaseEvent(EventProfileSaved, "profile"),
		Name:      name,
		Title:     title,
		Mosque:    mosque,
	}
}

// SessionEvent is emitted when the supervisor session opens or closes.
type SessionEvent struct {
	BaseEvent
}

// Payload implements Event interface.
func (e SessionEvent) Payload() map[string]interface{} {
	return map[string]interface{}{}
}

// NewSessionEvent creates a new SessionEvent.
func NewSessionEvent(eventType EventType) SessionEvent {
	return SessionEvent{BaseEvent: NewBaseEvent(eventType, "session")}
}

// DayUnlockedEvent is emitted when the supervisor unlocks an off-schedule day.
type DayUnlockedEvent struct {
	BaseEvent
	Date string `json:"date"`
	Slot string `json:"slot"`
}

// Payload implements Event interface.
func (e DayUnlockedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"date": e.Date,
		"slot": e.Slot,
	}
}

// NewDayUnlockedEvent creates a new DayUnlockedEvent.
func NewDayUnlockedEvent(date, slot string) DayUnlockedEvent {
	return DayUnlockedEvent{
		BaseEvent: NewBaseEvent(EventDayUnlocked, date+"|"+slot),
		Date:      date,
		Slot:      slot,
	}
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}

// SnapshotSavedEvent is emitted after the full state is persisted.
type SnapshotSavedEvent struct {
	BaseEvent
	Backend string `json:"backend"`
	Records int    `json:"records"`
}

// Payload implements Event interface.
func (e SnapshotSavedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"backend": e.Backend,
		"records": e.Records,
	}
}

// NewSnapshotSavedEvent creates a new SnapshotSavedEvent.
func NewSnapshotSavedEvent(backend string, records int) SnapshotSavedEvent {
	return SnapshotSavedEvent{
		BaseEvent: NewBaseEvent(EventSnapshotSaved, "snapshot"),
		Backend:   backend,
		Records:   records,
	}
}
