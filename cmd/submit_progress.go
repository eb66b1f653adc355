package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// outcomeMsg carries one finished account from the runner into the program.
type outcomeMsg domain.Outcome

type runFinishedMsg struct {
	report domain.RunReport
	err    error
}

// progressModel shows a spinner with the account count and the latest
// outcome while a run is in flight. It renders nothing once the run ends so
// the report can take its place.
type progressModel struct {
	spinner  spinner.Model
	start    tea.Cmd
	total    int
	done     int
	failed   int
	last     domain.Outcome
	finished *runFinishedMsg
	okStyle  lipgloss.Style
	errStyle lipgloss.Style
}

func newProgressModel(total int, start tea.Cmd) progressModel {
	return progressModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		start:    start,
		total:    total,
		okStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		m.done++
		m.last = domain.Outcome(msg)
		if m.last.Err != nil {
			m.failed++
		}
		return m, nil
	case runFinishedMsg:
		m.finished = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished != nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/%d accounts", m.spinner.View(), m.done, m.total)
	if m.failed > 0 {
		b.WriteString(m.errStyle.Render(fmt.Sprintf(" (%d failed)", m.failed)))
	}
	if m.done > 0 {
		b.WriteString(", last: ")
		b.WriteString(m.lastLabel())
	}
	return b.String()
}

func (m progressModel) lastLabel() string {
	masked := m.last.Masked()
	switch m.last.Status() {
	case domain.OutcomeSubmitted:
		return masked + " " + m.okStyle.Render(fmt.Sprintf("submitted %d", m.last.Steps))
	case domain.OutcomeLoginFailed:
		return masked + " " + m.errStyle.Render("login failed")
	default:
		return masked + " " + m.errStyle.Render("failed")
	}
}

// runWithProgress drives run under a progress program on output. run gets a
// callback that forwards each outcome to the program.
func runWithProgress(ctx context.Context, output io.Writer, total int, run func(context.Context, func(domain.Outcome)) (domain.RunReport, error)) (domain.RunReport, error) {
	var p *tea.Program
	start := func() tea.Msg {
		report, err := run(ctx, func(outcome domain.Outcome) {
			p.Send(outcomeMsg(outcome))
		})
		return runFinishedMsg{report: report, err: err}
	}

	p = tea.NewProgram(
		newProgressModel(total, start),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.RunReport{}, err
	}

	final, ok := finalModel.(progressModel)
	if !ok || final.finished == nil {
		return domain.RunReport{}, fmt.Errorf("unexpected final progress model %T", finalModel)
	}

	return final.finished.report, final.finished.err
}
