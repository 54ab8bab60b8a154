package command

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/athar-center/siraj-hub/internal/domain/access"
	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/shared"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION COMMANDS
// Login gates overall access; a second, distinct passphrase grants the
// transient day-unlock override. This is a placeholder access gate for
// a single shared device, not a security boundary.
// ══════════════════════════════════════════════════════════════════════════════

// Secrets holds the two configured passphrases. A value with the
// bcrypt "$2" prefix is treated as a hash, anything else is compared
// by exact string equality.
type Secrets struct {
	LoginPassphrase  string
	UnlockPassphrase string
}

// VerifyPassphrase compares an input against a stored passphrase,
// transparently handling bcrypt-hashed values.
func VerifyPassphrase(stored, input string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)) == nil
	}
	return stored == input
}

const noticeWrongPassphrase = "كلمة المرور غير صحيحة"

// LoginResult contains the outcome of a login attempt.
type LoginResult struct {
	Authenticated bool
	Notice        string
}

// SessionHandler handles login, logout, and the day-unlock override.
// It owns the unlock state machine consumed by the access policy.
type SessionHandler struct {
	secrets   Secrets
	unlock    *access.UnlockState
	publisher shared.EventPublisher
	log       *logger.Logger

	authenticated bool
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(secrets Secrets, publisher shared.EventPublisher, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		secrets:   secrets,
		unlock:    access.NewUnlockState(),
		publisher: publisher,
		log:       log,
	}
}

// Login verifies the main passphrase.
func (h *SessionHandler) Login(passphrase string) LoginResult {
	if !VerifyPassphrase(h.secrets.LoginPassphrase, passphrase) {
		if h.log != nil {
			h.log.Warn("login rejected")
		}
		return LoginResult{Notice: noticeWrongPassphrase}
	}

	h.authenticated = true
	h.publish(shared.NewSessionEvent(shared.EventSessionOpened))
	return LoginResult{Authenticated: true}
}

// Logout closes the session and drops any unlock override.
func (h *SessionHandler) Logout() {
	h.authenticated = false
	h.unlock.ViewReentered()
	h.publish(shared.NewSessionEvent(shared.EventSessionClosed))
}

// Authenticated reports whether a session is open.
func (h *SessionHandler) Authenticated() bool {
	return h.authenticated
}

// UnlockDay verifies the second passphrase and, on success, activates
// the transient override for the given (slot, date) pair.
func (h *SessionHandler) UnlockDay(passphrase string, slot attendance.Slot, date string) LoginResult {
	if !VerifyPassphrase(h.secrets.UnlockPassphrase, passphrase) {
		if h.log != nil {
			h.log.Warn("day unlock rejected",
				logger.Slot(slot.String()),
				logger.RecordDate(date))
		}
		return LoginResult{Notice: noticeWrongPassphrase}
	}

	h.unlock.Unlock(slot, date)
	h.publish(shared.NewDayUnlockedEvent(date, slot.String()))

	if h.log != nil {
		h.log.Info("day unlocked",
			logger.Slot(slot.String()),
			logger.RecordDate(date))
	}
	return LoginResult{Authenticated: true}
}

// DayUnlocked reports whether the override is active for the pair.
func (h *SessionHandler) DayUnlocked(slot attendance.Slot, date string) bool {
	return h.unlock.Active(slot, date)
}

// SlotChanged forwards the navigation transition to the state machine.
func (h *SessionHandler) SlotChanged(slot attendance.Slot) {
	h.unlock.SlotChanged(slot)
}

// DateChanged forwards the navigation transition to the state machine.
func (h *SessionHandler) DateChanged(date string) {
	h.unlock.DateChanged(date)
}

// ViewReentered forwards the navigation transition to the state machine.
func (h *SessionHandler) ViewReentered() {
	h.unlock.ViewReentered()
}

func (h *SessionHandler) publish(event shared.Event) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(event); err != nil && h.log != nil {
		h.log.Warn("event publish failed",
			logger.String("event_type", string(event.EventType())),
			logger.Err(err))
	}
}
