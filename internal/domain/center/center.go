package center

import (
	"context"
	"sync"
	"time"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT
// ══════════════════════════════════════════════════════════════════════════════

// StudentSnapshot - запись ученика в снимке состояния.
type StudentSnapshot struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Group    string    `json:"group"`
	JoinedAt time.Time `json:"joinedDate"`
	Notes    string    `json:"notes,omitempty"`
}

// Snapshot - полное сериализуемое состояние центра.
// Хранилище перезаписывает снимок целиком при каждом изменении,
// инкрементальных диффов и журнала транзакций нет.
type Snapshot struct {
	Students []StudentSnapshot   `json:"students"`
	Records  []attendance.Record `json:"records"`
	Profile  Profile             `json:"supervisor"`
}

// SnapshotRepository - контракт долговременного хранилища снимков.
// Реализации находятся в infrastructure/persistence.
type SnapshotRepository interface {
	// Load читает последний снимок. Отсутствие снимка - не ошибка:
	// возвращается пустой снимок для первого запуска.
	Load(ctx context.Context) (Snapshot, error)

	// Save перезаписывает снимок целиком.
	Save(ctx context.Context, snap Snapshot) error
}

// ══════════════════════════════════════════════════════════════════════════════
// AGGREGATE: CENTER
// ══════════════════════════════════════════════════════════════════════════════

// Center - корневой агрегат: список учеников, журнал посещаемости и
// профиль наставника. Создаётся один раз при старте процесса из снимка;
// все компоненты получают его по ссылке. Доступ защищён мьютексом:
// единственный пишущий - слой команд, читатели - запросы и отчёты.
type Center struct {
	mu      sync.RWMutex
	roster  *student.Roster
	ledger  *attendance.Ledger
	profile Profile
}

// New создаёт пустой центр.
func New() *Center {
	return &Center{
		roster:  student.NewRoster(),
		ledger:  attendance.NewLedger(),
		profile: DefaultProfile(),
	}
}

// Restore восстанавливает центр из снимка.
// Повреждённые записи снимка молча отбрасываются.
func Restore(snap Snapshot) *Center {
	c := New()

	for _, ss := range snap.Students {
		s, err := student.NewStudent(ss.ID, student.Name(ss.Name), student.Group(ss.Group), ss.JoinedAt)
		if err != nil {
			continue
		}
		s.Notes = ss.Notes
		if err := c.roster.Add(s); err != nil {
			continue
		}
	}

	c.ledger = attendance.NewLedgerFromRecords(snap.Records)

	if snap.Profile.Title.IsValid() {
		c.profile = snap.Profile
	}

	return c
}

// Snapshot возвращает сериализуемый снимок текущего состояния.
func (c *Center) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	students := make([]StudentSnapshot, 0, c.roster.Len())
	for _, s := range c.roster.All() {
		students = append(students, StudentSnapshot{
			ID:       s.ID,
			Name:     s.Name.String(),
			Group:    s.Group.String(),
			JoinedAt: s.JoinedAt,
			Notes:    s.Notes,
		})
	}

	return Snapshot{
		Students: students,
		Records:  c.ledger.All(),
		Profile:  c.profile,
	}
}

// AddStudent добавляет ученика в список.
func (c *Center) AddStudent(s *student.Student) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.Add(s)
}

// HasStudentName проверяет занятость имени.
func (c *Center) HasStudentName(name student.Name) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roster.HasName(name)
}

// Students возвращает копию списка учеников в порядке добавления.
func (c *Center) Students() []*student.Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roster.All()
}

// SearchStudents возвращает учеников по поисковой подстроке имени.
func (c *Center) SearchStudents(query string) []*student.Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roster.Search(query)
}

// StudentIDs возвращает идентификаторы всех учеников в порядке добавления.
func (c *Center) StudentIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, c.roster.Len())
	for _, s := range c.roster.All() {
		ids = append(ids, s.ID)
	}
	return ids
}

// SetStatus выполняет одиночную отметку в журнале.
func (c *Center) SetStatus(studentID, date string, slot attendance.Slot, status attendance.Status, checkIn string) (attendance.Mutation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.roster.Contains(studentID) {
		return attendance.Mutation{}, student.ErrNotFound
	}
	return c.ledger.SetStatus(studentID, date, slot, status, checkIn)
}

// MarkAll отмечает всех учеников списка разом для пары (дата, слот).
// Список учеников берётся целиком, фильтры поиска не учитываются.
func (c *Center) MarkAll(date string, slot attendance.Slot, status attendance.Status, checkIn string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, c.roster.Len())
	for _, s := range c.roster.All() {
		ids = append(ids, s.ID)
	}
	return c.ledger.MarkAll(date, slot, status, ids, checkIn)
}

// Record возвращает запись по ключу.
func (c *Center) Record(key attendance.Key) (attendance.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ledger.Get(key)
}

// RecordsForDateSlot возвращает записи пары (дата, слот).
func (c *Center) RecordsForDateSlot(date string, slot attendance.Slot) []attendance.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ledger.ForDateSlot(date, slot)
}

// RecordsForMonth возвращает записи календарного месяца.
func (c *Center) RecordsForMonth(month int) []attendance.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ledger.ForMonth(month)
}

// Ledger возвращает журнал для построения отчётов.
// Вызывающий не должен изменять журнал в обход агрегата.
func (c *Center) Ledger() *attendance.Ledger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ledger
}

// Roster возвращает список учеников для построения отчётов.
func (c *Center) Roster() *student.Roster {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roster
}

// Profile возвращает профиль наставника.
func (c *Center) Profile() Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile
}

// SaveProfile перезаписывает профиль наставника целиком.
func (c *Center) SaveProfile(p Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = p
}
