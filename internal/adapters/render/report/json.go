package report

import (
	"time"

	"github.com/bnema/mifit-steps-cli/internal/domain"
)

// JSONReport is the machine-readable shape of a run. Identifiers stay masked.
type JSONReport struct {
	Range      JSONRange     `json:"range"`
	Suppressed bool          `json:"suppressed"`
	Outcomes   []JSONOutcome `json:"outcomes"`
}

type JSONRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

type JSONOutcome struct {
	Account string    `json:"account"`
	Status  string    `json:"status"`
	Steps   int       `json:"steps,omitempty"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}

func ToJSON(report domain.RunReport) JSONReport {
	out := JSONReport{
		Range:      JSONRange{Low: report.Range.Low, High: report.Range.High},
		Suppressed: report.Suppressed,
		Outcomes:   make([]JSONOutcome, 0, len(report.Outcomes)),
	}

	for _, outcome := range report.Outcomes {
		entry := JSONOutcome{
			Account: outcome.Masked(),
			Status:  string(outcome.Status()),
			Steps:   outcome.Steps,
			Message: outcome.Message,
			At:      outcome.At,
		}
		if outcome.Err != nil {
			entry.Error = outcome.Err.Error()
		}
		out.Outcomes = append(out.Outcomes, entry)
	}

	return out
}
