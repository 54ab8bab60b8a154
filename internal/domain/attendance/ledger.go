package attendance

import (
	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// AGGREGATE: LEDGER
// ══════════════════════════════════════════════════════════════════════════════

// MutationKind описывает исход одиночной отметки.
type MutationKind string

const (
	// MutationCreated - запись создана впервые.
	MutationCreated MutationKind = "created"
	// MutationOverwritten - статус существующей записи перезаписан.
	MutationOverwritten MutationKind = "overwritten"
	// MutationRemoved - повтор того же статуса снял отметку.
	MutationRemoved MutationKind = "removed"
)

// Mutation - результат одиночной отметки: что произошло и с какой записью.
// Для MutationRemoved поле Record содержит удалённую запись.
type Mutation struct {
	Kind   MutationKind
	Record Record
}

// Ledger - журнал всех записей посещаемости.
// Порядок хранения - порядок вставки, семантической нагрузки он не несёт:
// потребители обязаны индексировать записи по ключу (ученик, дата, слот).
type Ledger struct {
	records []Record
	index   map[Key]int // позиция записи в срезе
}

// NewLedger создаёт пустой журнал.
func NewLedger() *Ledger {
	return &Ledger{
		records: make([]Record, 0),
		index:   make(map[Key]int),
	}
}

// NewLedgerFromRecords восстанавливает журнал из снимка.
// Невалидные записи и дубликаты ключей молча отбрасываются:
// снимок считается доверенным, но повреждение не должно ронять запуск.
func NewLedgerFromRecords(records []Record) *Ledger {
	l := NewLedger()
	for _, r := range records {
		if r.StudentID == "" || !r.Slot.IsValid() || !r.Status.IsValid() {
			continue
		}
		if _, ok := l.index[r.Key()]; ok {
			continue
		}
		l.insert(r)
	}
	return l
}

func (l *Ledger) insert(r Record) {
	l.index[r.Key()] = len(l.records)
	l.records = append(l.records, r)
}

func (l *Ledger) remove(key Key) Record {
	pos := l.index[key]
	removed := l.records[pos]
	l.records = append(l.records[:pos], l.records[pos+1:]...)
	delete(l.index, key)
	for i := pos; i < len(l.records); i++ {
		l.index[l.records[i].Key()] = i
	}
	return removed
}

// SetStatus - примитив одиночной отметки.
// Если записи для ключа нет - создаёт её с текущим временем отметки.
// Если запись есть и статус совпадает - удаляет её (снятие отметки).
// Если запись есть с другим статусом - перезаписывает только статус:
// CheckInTime остаётся временем первой отметки, это намеренно.
func (l *Ledger) SetStatus(studentID, date string, slot Slot, status Status, checkIn string) (Mutation, error) {
	candidate, err := NewRecord(studentID, date, slot, status, checkIn)
	if err != nil {
		return Mutation{}, err
	}

	key := candidate.Key()
	pos, ok := l.index[key]
	if !ok {
		l.insert(candidate)
		return Mutation{Kind: MutationCreated, Record: candidate}, nil
	}

	if l.records[pos].Status == status {
		removed := l.remove(key)
		return Mutation{Kind: MutationRemoved, Record: removed}, nil
	}

	l.records[pos].Status = status
	return Mutation{Kind: MutationOverwritten, Record: l.records[pos]}, nil
}

// MarkAll атомарно заменяет все записи пары (дата, слот) на свежие записи
// с единым статусом и общим временем отметки - по одной на каждого ученика
// из переданного списка. Это не переключение: повторный вызов с тем же
// статусом не снимает отметки, а лишь обновляет время.
func (l *Ledger) MarkAll(date string, slot Slot, status Status, studentIDs []string, checkIn string) (int, error) {
	if !slot.IsValid() {
		return 0, ErrUnknownSlot
	}
	if !status.IsValid() {
		return 0, ErrInvalidStatus
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return 0, ErrBadDate
	}

	for _, r := range l.ForDateSlot(date, slot) {
		l.remove(r.Key())
	}

	affected := 0
	for _, id := range studentIDs {
		if id == "" {
			continue
		}
		r, err := NewRecord(id, date, slot, status, checkIn)
		if err != nil {
			return affected, err
		}
		l.insert(r)
		affected++
	}
	return affected, nil
}

// Get возвращает запись по ключу.
func (l *Ledger) Get(key Key) (Record, bool) {
	pos, ok := l.index[key]
	if !ok {
		return Record{}, false
	}
	return l.records[pos], true
}

// Len возвращает количество записей.
func (l *Ledger) Len() int {
	return len(l.records)
}

// All возвращает копию всех записей в порядке вставки.
func (l *Ledger) All() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// ForDateSlot возвращает записи пары (дата, слот) в порядке вставки.
func (l *Ledger) ForDateSlot(date string, slot Slot) []Record {
	out := make([]Record, 0)
	for _, r := range l.records {
		if r.Date == date && r.Slot == slot {
			out = append(out, r)
		}
	}
	return out
}

// ForMonth возвращает записи указанного календарного месяца.
func (l *Ledger) ForMonth(month int) []Record {
	out := make([]Record, 0)
	for _, r := range l.records {
		if r.InMonth(month) {
			out = append(out, r)
		}
	}
	return out
}

// ForStudentMonth возвращает записи ученика за календарный месяц.
func (l *Ledger) ForStudentMonth(studentID string, month int) []Record {
	out := make([]Record, 0)
	for _, r := range l.records {
		if r.StudentID == studentID && r.InMonth(month) {
			out = append(out, r)
		}
	}
	return out
}
