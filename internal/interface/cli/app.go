package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/athar-center/siraj-hub/internal/application/command"
	"github.com/athar-center/siraj-hub/internal/application/insight"
	"github.com/athar-center/siraj-hub/internal/application/query"
	"github.com/athar-center/siraj-hub/internal/domain/access"
	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// TERMINAL APPLICATION
// Вход защищён паролем; после входа цикл команд переключает виды и
// вызывает командные и запросные обработчики приложения.
// ══════════════════════════════════════════════════════════════════════════════

// Handlers собирает обработчики приложения, которыми управляет терминал.
type Handlers struct {
	Session     *command.SessionHandler
	AddStudent  *command.AddStudentHandler
	SetStatus   *command.SetStatusHandler
	MarkAll     *command.MarkAllHandler
	SaveProfile *command.SaveProfileHandler

	Sheet   *query.GetSheetHandler
	Monthly *query.GetMonthlyReportHandler
	History *query.GetStudentHistoryHandler

	Insight *insight.Generator
}

// App - интерактивное терминальное приложение.
type App struct {
	center    *center.Center
	handlers  Handlers
	navigator *Navigator
	presenter *Presenter
	notices   *NoticeSink
	log       *logger.Logger

	in  *bufio.Scanner
	out io.Writer

	// lastRows keeps the rows of the last rendered sheet so marks can
	// reference students by row number.
	lastRows []query.SheetRowDTO
}

// NewApp создаёт терминальное приложение.
func NewApp(c *center.Center, handlers Handlers, notices *NoticeSink, in io.Reader, out io.Writer, log *logger.Logger) *App {
	if log == nil {
		log = logger.Default().With(logger.Component("cli"))
	}
	return &App{
		center:    c,
		handlers:  handlers,
		navigator: NewNavigator(handlers.Session),
		presenter: NewPresenter(),
		notices:   notices,
		log:       log,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run запускает цикл: ворота входа, затем диспетчер команд до quit
// или конца ввода.
func (a *App) Run(ctx context.Context) error {
	if !a.login(ctx) {
		return nil
	}

	a.render(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(a.out, "> ")
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			a.render(ctx)
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		a.dispatch(ctx, line)
		a.render(ctx)
	}
}

// login блокирует приложение до верного пароля.
func (a *App) login(ctx context.Context) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		fmt.Fprint(a.out, "كلمة المرور: ")
		if !a.in.Scan() {
			return false
		}
		input := strings.TrimSpace(a.in.Text())
		if input == "quit" || input == "exit" {
			return false
		}

		result := a.handlers.Session.Login(input)
		if result.Authenticated {
			return true
		}
		fmt.Fprintln(a.out, result.Notice)
	}
}

// dispatch разбирает одну команду и выполняет её.
func (a *App) dispatch(ctx context.Context, line string) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "home":
		a.navigator.Enter(access.ViewHome)
	case "class":
		a.navigator.Enter(access.ViewClass)
	case "prayer":
		a.navigator.Enter(access.ViewPrayer)
	case "stats":
		a.navigator.Enter(access.ViewStats)
	case "profile":
		a.navigator.Enter(access.ViewProfile)

	case "month":
		a.handleMonth(rest)
	case "slot":
		if err := a.navigator.SetSlot(attendance.Slot(rest)); err != nil {
			a.notices.Push("وقت غير معروف")
		}
	case "date":
		if err := a.navigator.SetDate(rest); err != nil {
			a.notices.Push("تاريخ غير صالح")
		}
	case "search":
		a.navigator.SetSearch(rest)

	case "add":
		a.handleAdd(ctx, rest)
	case "mark":
		a.handleMark(ctx, rest)
	case "all":
		a.handleMarkAll(ctx, rest)
	case "save":
		a.handleSaveProfile(ctx, rest)
	case "history":
		a.handleHistory(ctx, rest)
	case "unlock":
		result := a.handlers.Session.UnlockDay(rest, a.navigator.Slot(), a.navigator.Date())
		if !result.Authenticated {
			a.notices.Push(result.Notice)
		}
	case "insight":
		a.handleInsight(ctx)
	case "logout":
		a.handlers.Session.Logout()
		a.login(ctx)
		a.navigator.Enter(access.ViewHome)

	default:
		a.notices.Push("أمر غير معروف")
	}
}

func (a *App) handleMonth(arg string) {
	switch arg {
	case "next":
		a.navigator.NextMonth()
	case "prev":
		a.navigator.PrevMonth()
	default:
		n, err := strconv.Atoi(arg)
		if err != nil {
			a.notices.Push("شهر غير صالح")
			return
		}
		a.navigator.SetMonth(access.SeasonMonth(n))
	}
}

func (a *App) handleAdd(ctx context.Context, rest string) {
	name, group, _ := strings.Cut(rest, "|")
	result, err := a.handlers.AddStudent.Handle(ctx, command.AddStudentCommand{
		Name:  strings.TrimSpace(name),
		Group: strings.TrimSpace(group),
	})
	if err != nil {
		a.log.Error("add student failed", logger.Err(err))
		return
	}
	if result.Rejected {
		a.notices.Push(result.Notice)
	}
}

func (a *App) handleMark(ctx context.Context, rest string) {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		a.notices.Push("الاستخدام: mark <رقم> <حالة>")
		return
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil || row < 1 || row > len(a.lastRows) {
		a.notices.Push("رقم الطالب غير صالح")
		return
	}
	status := attendance.Status(strings.ToLower(fields[1]))
	if !status.IsValid() {
		a.notices.Push("حالة غير معروفة")
		return
	}

	result, err := a.handlers.SetStatus.Handle(ctx, command.SetStatusCommand{
		StudentID: a.lastRows[row-1].StudentID,
		Date:      a.navigator.Date(),
		Slot:      a.navigator.Slot(),
		Status:    status,
		Context:   a.navigator.Context(),
	})
	if err != nil {
		a.log.Error("mark failed", logger.Err(err))
		return
	}
	if result.Rejected {
		a.notices.Push(result.Notice)
	}
}

func (a *App) handleMarkAll(ctx context.Context, rest string) {
	status := attendance.Status(strings.ToLower(strings.TrimSpace(rest)))
	if !status.IsValid() {
		a.notices.Push("حالة غير معروفة")
		return
	}

	result, err := a.handlers.MarkAll.Handle(ctx, command.MarkAllCommand{
		Date:    a.navigator.Date(),
		Slot:    a.navigator.Slot(),
		Status:  status,
		Context: a.navigator.Context(),
	})
	if err != nil {
		a.log.Error("mark all failed", logger.Err(err))
		return
	}
	if result.Rejected {
		a.notices.Push(result.Notice)
	}
}

func (a *App) handleSaveProfile(ctx context.Context, rest string) {
	parts := strings.Split(rest, "|")
	if len(parts) != 3 {
		a.notices.Push("الاستخدام: save <الاسم> | <الصفة> | <المسجد>")
		return
	}

	result, err := a.handlers.SaveProfile.Handle(ctx, command.SaveProfileCommand{
		Name:   strings.TrimSpace(parts[0]),
		Title:  parseTitle(strings.TrimSpace(parts[1])),
		Mosque: strings.TrimSpace(parts[2]),
	})
	if err != nil {
		a.log.Error("save profile failed", logger.Err(err))
		return
	}
	if result.Rejected {
		a.notices.Push(result.Notice)
	}
}

func (a *App) handleHistory(ctx context.Context, rest string) {
	row, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || row < 1 || row > len(a.lastRows) {
		a.notices.Push("رقم الطالب غير صالح")
		return
	}

	sm, err := a.handlers.History.Handle(ctx, query.GetStudentHistoryQuery{
		StudentID: a.lastRows[row-1].StudentID,
		Month:     int(a.navigator.Month()),
	})
	if err != nil {
		a.notices.Push("الطالب غير موجود")
		return
	}
	fmt.Fprint(a.out, a.presenter.FormatHistory(sm))
}

func (a *App) handleInsight(ctx context.Context) {
	records := a.center.RecordsForMonth(int(a.navigator.Month()))

	fmt.Fprintln(a.out, "جارٍ التحليل...")
	result := a.handlers.Insight.Generate(ctx, a.center.Students(), records)
	if result.Superseded {
		return
	}
	fmt.Fprintln(a.out, result.Text)
}

// render рисует активный вид и живые уведомления.
func (a *App) render(ctx context.Context) {
	for _, text := range a.notices.Active() {
		fmt.Fprintf(a.out, "! %s\n", text)
	}

	switch a.navigator.View() {
	case access.ViewClass, access.ViewPrayer:
		a.renderSheet(ctx)
	case access.ViewStats:
		a.renderStats(ctx)
	case access.ViewProfile:
		fmt.Fprint(a.out, a.presenter.FormatProfile(a.center.Profile()))
	default:
		fmt.Fprint(a.out, a.presenter.FormatHome(a.center.Profile(), len(a.center.Students()), a.navigator.Month()))
	}
}

func (a *App) renderSheet(ctx context.Context) {
	sheet, err := a.handlers.Sheet.Handle(ctx, query.GetSheetQuery{
		Date:   a.navigator.Date(),
		Slot:   a.navigator.Slot(),
		Search: a.navigator.Search(),
	})
	if err != nil {
		a.log.Error("sheet query failed", logger.Err(err))
		return
	}
	a.lastRows = sheet.Rows
	fmt.Fprint(a.out, a.presenter.FormatSheet(sheet))
}

func (a *App) renderStats(ctx context.Context) {
	dto, err := a.handlers.Monthly.Handle(ctx, query.GetMonthlyReportQuery{
		Month: int(a.navigator.Month()),
	})
	if err != nil {
		a.log.Error("report query failed", logger.Err(err))
		return
	}
	fmt.Fprint(a.out, a.presenter.FormatMonthly(dto))
}

// parseTitle принимает латинские и арабские варианты должности.
func parseTitle(s string) center.Title {
	switch s {
	case "director", string(center.TitleDirector):
		return center.TitleDirector
	case "supervisor", string(center.TitleSupervisor):
		return center.TitleSupervisor
	default:
		return center.Title(s)
	}
}
