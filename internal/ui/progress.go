package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// progressImpl implements the Progress interface. Interactive runs use
// bubbletea programs; headless runs write plain log lines.
type progressImpl struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewProgress creates a Progress backed by the given theme and headless
// manager. Output goes to os.Stdout.
func NewProgress(theme *Theme, hm *HeadlessManager) Progress {
	return &progressImpl{theme: theme, headless: hm, writer: os.Stdout}
}

// NewProgressTo creates a Progress whose headless output goes to w
// instead of os.Stdout. Commands pass their cobra output stream here so
// progress lines land on the same writer as the rest of their output.
func NewProgressTo(theme *Theme, hm *HeadlessManager, w io.Writer) Progress {
	return &progressImpl{theme: theme, headless: hm, writer: w}
}

func (p *progressImpl) Start(title string, total int) ProgressBar {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return &plainBar{title: title, total: total, writer: p.writer}
	}
	return newTeaBar(p.theme, title, total)
}

func (p *progressImpl) Spinner(title string) Spinner {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newPlainSpinner(title, p.writer)
	}
	return newTeaSpinner(p.theme, title)
}

// --- animated spinner ---

type spinnerTitleMsg string

type spinnerStopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// teaSpinner runs the spinner model in a background goroutine whose
// lifetime is bound to the tea program.
type teaSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newTeaSpinner(theme *Theme, title string) *teaSpinner {
	p := tea.NewProgram(newSpinnerModel(theme, title))
	s := &teaSpinner{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return s
}

func (s *teaSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

func (s *teaSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}

// --- animated progress bar ---

type barIncrMsg int

type barTitleMsg string

type barDoneMsg struct{}

type barModel struct {
	bar     progress.Model
	title   string
	current int
	total   int
	done    bool
}

func newBarModel(theme *Theme, title string, total int) barModel {
	bar := progress.New(
		progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary),
		progress.WithWidth(40),
	)
	return barModel{bar: bar, title: title, total: total}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case barIncrMsg:
		m.current = min(m.current+int(msg), m.total)
		return m, nil
	case barTitleMsg:
		m.title = string(msg)
		return m, nil
	case barDoneMsg:
		m.current = m.total
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m barModel) View() string {
	if m.done {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}
	return m.bar.ViewAs(pct) + fmt.Sprintf(" [%d/%d] %s\n", m.current, m.total, m.title)
}

type teaBar struct {
	program *tea.Program
	once    sync.Once
}

func newTeaBar(theme *Theme, title string, total int) *teaBar {
	p := tea.NewProgram(newBarModel(theme, title, total))
	b := &teaBar{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return b
}

func (b *teaBar) Increment(n int) {
	b.program.Send(barIncrMsg(n))
}

func (b *teaBar) SetTitle(title string) {
	b.program.Send(barTitleMsg(title))
}

func (b *teaBar) Done() {
	b.once.Do(func() {
		b.program.Send(barDoneMsg{})
		b.program.Wait()
	})
}

// --- headless fallbacks ---

// plainBar writes one log line per increment.
type plainBar struct {
	title   string
	total   int
	current int
	writer  io.Writer
	once    sync.Once
}

func (b *plainBar) Increment(n int) {
	b.current = min(b.current+n, b.total)
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}

func (b *plainBar) SetTitle(title string) {
	b.title = title
}

func (b *plainBar) Done() {
	b.once.Do(func() {
		b.current = b.total
		_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
	})
}

// plainSpinner prints the title whenever it changes.
type plainSpinner struct {
	title  string
	writer io.Writer
}

func newPlainSpinner(title string, w io.Writer) *plainSpinner {
	_, _ = fmt.Fprintln(w, title)
	return &plainSpinner{title: title, writer: w}
}

func (s *plainSpinner) SetTitle(title string) {
	s.title = title
	_, _ = fmt.Fprintln(s.writer, title)
}

func (s *plainSpinner) Stop() {}
