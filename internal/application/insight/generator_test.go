package insight

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/student"
)

// stubGenerator counts outbound calls and replays a scripted answer.
type stubGenerator struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
	block chan struct{} // when set, the call waits for ctx or the channel
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.calls++
	block := s.block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-block:
		}
	}
	return s.text, s.err
}

func (s *stubGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func seed(t *testing.T) ([]*student.Student, []attendance.Record) {
	t.Helper()
	s, err := student.NewStudent("s1", student.Name("أحمد"), student.GroupSecondary, time.Now())
	require.NoError(t, err)

	r, err := attendance.NewRecord("s1", "2025-03-08", attendance.SlotSatDawn, attendance.StatusPresent, "05:42")
	require.NoError(t, err)
	return []*student.Student{s}, []attendance.Record{r}
}

func TestGenerate_EmptyRecordsShortCircuits(t *testing.T) {
	stub := &stubGenerator{text: "should not be called"}
	g := NewGenerator(stub, nil)

	students, _ := seed(t)
	res := g.Generate(context.Background(), students, nil)

	assert.Equal(t, FallbackNoRecords, res.Text)
	assert.False(t, res.Superseded)
	// Сети не должно быть ни одного обращения.
	assert.Zero(t, stub.callCount())
}

func TestGenerate_Success(t *testing.T) {
	stub := &stubGenerator{text: "تحليل ممتاز"}
	g := NewGenerator(stub, nil)

	students, records := seed(t)
	res := g.Generate(context.Background(), students, records)

	assert.Equal(t, "تحليل ممتاز", res.Text)
	assert.Equal(t, 1, stub.callCount())
}

func TestGenerate_FailureResolvesToFallback(t *testing.T) {
	stub := &stubGenerator{err: errors.New("connection refused")}
	g := NewGenerator(stub, nil)

	students, records := seed(t)
	res := g.Generate(context.Background(), students, records)

	assert.Equal(t, FallbackUnreachable, res.Text)
	assert.False(t, res.Superseded)
}

func TestGenerate_BlankAnswerResolvesToFallback(t *testing.T) {
	stub := &stubGenerator{text: "   "}
	g := NewGenerator(stub, nil)

	students, records := seed(t)
	res := g.Generate(context.Background(), students, records)

	assert.Equal(t, FallbackEmptyAnswer, res.Text)
}

func TestGenerate_NewRequestSupersedesOutstanding(t *testing.T) {
	stub := &stubGenerator{text: "ok", block: make(chan struct{})}
	g := NewGenerator(stub, nil)

	students, records := seed(t)

	first := make(chan Result, 1)
	go func() {
		first <- g.Generate(context.Background(), students, records)
	}()

	// Дождаться, пока первый запрос повиснет на сети.
	require.Eventually(t, func() bool {
		return stub.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	// Второй запрос должен отменить первый.
	stub.mu.Lock()
	stub.block = nil
	stub.mu.Unlock()
	res := g.Generate(context.Background(), students, records)
	assert.Equal(t, "ok", res.Text)
	assert.False(t, res.Superseded)

	select {
	case r := <-first:
		assert.True(t, r.Superseded)
	case <-time.After(time.Second):
		t.Fatal("first request did not finish")
	}
}

func TestBuildPrompt(t *testing.T) {
	students, records := seed(t)
	prompt := BuildPrompt(students, records)

	assert.Contains(t, prompt, "أحمد (مجموعة الثانوي): 1 حاضر، 0 متأخر، 0 غائب، 0 مستأذن (من أصل 1)")
	assert.Contains(t, prompt, "فرسان الأسبوع")
}
