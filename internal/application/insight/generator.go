// Package insight turns a monthly attendance snapshot into advisory
// prose via an external text-generation service. Failures never reach
// the caller: every outcome resolves to a displayable Arabic string,
// so the attendance core stays usable when the service is down.
package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/student"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

// TextGenerator is the outbound contract, implemented by the gemini client.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Fixed fallback strings shown instead of errors.
const (
	FallbackNoRecords   = "لا توجد سجلات كافية للتحليل. ابدأ بتسجيل حضور الطلاب للحصول على تقارير ذكية وتوصيات تربوية."
	FallbackEmptyAnswer = "عذراً، فشلت عملية استخراج البيانات الذكية."
	FallbackUnreachable = "عذراً، تعذر الاتصال بالذكاء الاصطناعي حالياً. يرجى التأكد من اتصال الإنترنت أو مفتاح API."
)

// Result is the outcome of a generation request.
type Result struct {
	// Text is the insight prose or a fallback string, never empty.
	Text string

	// Superseded is true when a newer request cancelled this one;
	// the caller should discard the text.
	Superseded bool
}

// Generator builds prompts and forwards them to the text service.
// A new request supersedes any outstanding one: the prior context is
// cancelled so two computations never race to set the displayed text.
type Generator struct {
	client TextGenerator
	log    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    int
}

// NewGenerator creates a new Generator.
func NewGenerator(client TextGenerator, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Default().With(logger.Component("insight"))
	}
	return &Generator{client: client, log: log}
}

// Generate produces the insight text for the snapshot.
// With no records it short-circuits to the fixed insufficient-data
// message without touching the network.
func (g *Generator) Generate(ctx context.Context, students []*student.Student, records []attendance.Record) Result {
	if len(records) == 0 {
		return Result{Text: FallbackNoRecords}
	}

	ctx, seq := g.supersede(ctx)
	defer g.finish(seq)

	prompt := BuildPrompt(students, records)

	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result{Text: FallbackUnreachable, Superseded: true}
		}
		g.log.Warn("insight generation failed",
			logger.RecordCount(len(records)),
			logger.Err(err))
		return Result{Text: FallbackUnreachable}
	}

	if strings.TrimSpace(text) == "" {
		return Result{Text: FallbackEmptyAnswer}
	}
	return Result{Text: text}
}

// supersede cancels any outstanding request and registers this one.
func (g *Generator) supersede(parent context.Context) (context.Context, int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	g.cancel = cancel
	g.seq++
	return ctx, g.seq
}

// finish releases the cancel slot if no newer request took it over.
func (g *Generator) finish(seq int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seq == seq && g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// BuildPrompt assembles the Arabic advisory prompt from per-student
// accumulated status counts.
func BuildPrompt(students []*student.Student, records []attendance.Record) string {
	lines := make([]string, 0, len(students))
	for _, s := range students {
		var present, late, absent, excused, total int
		for _, r := range records {
			if r.StudentID != s.ID {
				continue
			}
			total++
			switch r.Status {
			case attendance.StatusPresent:
				present++
			case attendance.StatusLate:
				late++
			case attendance.StatusAbsent:
				absent++
			case attendance.StatusExcused:
				excused++
			}
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %d حاضر، %d متأخر، %d غائب، %d مستأذن (من أصل %d)",
			s.Name, s.Group, present, late, absent, excused, total))
	}

	return fmt.Sprintf(`أنت خبير تربوي ومستشار في إدارة المراكز التعليمية الإسلامية (الحلقات).
حلل التقرير التالي لحضور الطلاب وقدم توصيات استراتيجية ومحفزة:

سجل الحضور المتراكم:
%s

المطلوب منك في الرد:
1. تحليل سريع لمستوى الانضباط العام في المركز (تحديد الاتجاهات).
2. ترشيح "فرسان الأسبوع": أفضل 3 طلاب التزاماً وحرصاً.
3. تحديد الطلاب الذين يحتاجون إلى جلسة إرشادية خاصة أو تواصل مع أولياء أمورهم بسبب تكرار الغياب أو التأخر.
4. نصيحة عملية للمشرف لجعل جلسة "فجر السبت" أكثر جاذبية للطلاب بناءً على الروح التربوية.

اجعل الرد باللغة العربية بأسلوب راقٍ، مشجع، ومقسم لنقاط واضحة ومختصرة.`, strings.Join(lines, "\n"))
}
