package domain

import (
	"errors"
	"time"
)

type OutcomeStatus string

const (
	OutcomeSubmitted   OutcomeStatus = "submitted"
	OutcomeLoginFailed OutcomeStatus = "login_failed"
	OutcomeFailed      OutcomeStatus = "failed"
)

// Outcome is what happened to one account during a run.
type Outcome struct {
	Identifier string
	Steps      int
	Message    string
	Err        error
	At         time.Time
}

func (o Outcome) Status() OutcomeStatus {
	switch {
	case o.Err == nil:
		return OutcomeSubmitted
	case errors.Is(o.Err, ErrAuthFailed):
		return OutcomeLoginFailed
	default:
		return OutcomeFailed
	}
}

func (o Outcome) Masked() string {
	return MaskIdentifier(o.Identifier)
}

type RunReport struct {
	Range      StepRange
	Suppressed bool
	Outcomes   []Outcome
}

func (r RunReport) Failed() int {
	failed := 0
	for _, outcome := range r.Outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	return failed
}
