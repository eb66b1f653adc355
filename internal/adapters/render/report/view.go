package report

import (
	"fmt"
	"time"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const timestampLayout = "2006-01-02 15:04:05"

// SuppressedLine is printed instead of account lines when the range is empty.
const SuppressedLine = "step range is empty, nothing submitted"

type RenderOptions struct {
	// Location for timestamps; defaults to the reference zone.
	Location *time.Location
	// Summary appends the step range and a submitted/total count.
	Summary bool
}

func renderView(report domain.RunReport, opts RenderOptions, s styles) string {
	if report.Suppressed {
		return s.empty.Render(SuppressedLine)
	}

	loc := opts.Location
	if loc == nil {
		loc = domain.ReferenceZone
	}

	lines := make([]string, 0, len(report.Outcomes)+1)
	for _, outcome := range report.Outcomes {
		lines = append(lines, renderOutcome(outcome, loc, s))
	}

	if opts.Summary {
		lines = append(lines, s.summary.Render(fmt.Sprintf(
			"range %d-%d, submitted %d/%d",
			report.Range.Low, report.Range.High,
			len(report.Outcomes)-report.Failed(), len(report.Outcomes),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderOutcome(outcome domain.Outcome, loc *time.Location, s styles) string {
	masked := s.account.Render(outcome.Masked())

	switch outcome.Status() {
	case domain.OutcomeLoginFailed:
		return lipgloss.JoinHorizontal(lipgloss.Top, masked, " ", s.failure.Render("login failed"))
	case domain.OutcomeFailed:
		return lipgloss.JoinHorizontal(lipgloss.Top, masked, " ", s.failure.Render("failed: "+outcome.Err.Error()))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.timestamp.Render("["+outcome.At.In(loc).Format(timestampLayout)+"]"),
		" account: ",
		masked,
		" steps: ",
		s.steps.Render(fmt.Sprintf("%d", outcome.Steps)),
		" result: ",
		s.message.Render(outcome.Message),
	)
}
