package cli

import (
	"sync"
	"time"

	"github.com/athar-center/siraj-hub/internal/domain/shared"
	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// TRANSIENT NOTICES
// Кратковременные уведомления: подтверждения команд и отказы политики.
// Уведомление живёт фиксированное время и исчезает само.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultNoticeTTL is how long a notice stays visible.
const DefaultNoticeTTL = 3 * time.Second

// Подтверждающие тексты по типам событий.
var eventNotices = map[shared.EventType]string{
	shared.EventStudentAdded:         "تمت إضافة الطالب بنجاح",
	shared.EventAttendanceMarked:     "تم تسجيل الحضور",
	shared.EventAttendanceCleared:    "تم مسح التسجيل",
	shared.EventAttendanceBulkMarked: "تم تسجيل الجميع",
	shared.EventProfileSaved:         "تم حفظ الملف الشخصي",
	shared.EventDayUnlocked:          "تم فتح اليوم مؤقتاً",
}

type notice struct {
	text    string
	expires time.Time
}

// NoticeSink накапливает живые уведомления. Подписывается на шину
// событий и принимает прямые отказы от обработчиков команд.
type NoticeSink struct {
	mu      sync.Mutex
	ttl     time.Duration
	notices []notice
	now     func() time.Time
}

// NewNoticeSink создаёт сток уведомлений с заданным временем жизни.
func NewNoticeSink(ttl time.Duration) *NoticeSink {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &NoticeSink{ttl: ttl, now: timeutil.Now}
}

// Attach подписывает сток на все события шины.
func (s *NoticeSink) Attach(bus shared.EventSubscriber) error {
	return bus.SubscribeAll(s.handle)
}

func (s *NoticeSink) handle(event shared.Event) error {
	if text, ok := eventNotices[event.EventType()]; ok {
		s.Push(text)
	}
	return nil
}

// Push добавляет уведомление. Пустой текст игнорируется.
func (s *NoticeSink) Push(text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, notice{text: text, expires: s.now().Add(s.ttl)})
}

// Active возвращает ещё не истёкшие уведомления в порядке появления.
func (s *NoticeSink) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	alive := s.notices[:0]
	texts := make([]string, 0, len(s.notices))
	for _, n := range s.notices {
		if now.Before(n.expires) {
			alive = append(alive, n)
			texts = append(texts, n.text)
		}
	}
	s.notices = alive
	return texts
}
