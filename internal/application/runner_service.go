package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/bnema/mifit-steps-cli/internal/ports"
	"golang.org/x/sync/errgroup"
)

type RunnerOptions struct {
	Steps domain.StepConfig
	// Parallel bounds how many accounts run at once; values below 2 run sequentially.
	Parallel int
	// OnOutcome, when set, receives each account's outcome as soon as it is
	// known. It is called from several goroutines when Parallel > 1.
	OnOutcome func(domain.Outcome)
}

// RunnerService logs in and submits for every account of a run.
type RunnerService struct {
	auth      ports.Authenticator
	submitter *SubmissionService
	picker    ports.StepPicker
	clock     ports.Clock
	opts      RunnerOptions
	logger    *slog.Logger
}

func NewRunnerService(auth ports.Authenticator, submitter *SubmissionService, picker ports.StepPicker, clock ports.Clock, opts RunnerOptions, logger *slog.Logger) *RunnerService {
	if picker == nil {
		picker = UniformStepPicker{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RunnerService{
		auth:      auth,
		submitter: submitter,
		picker:    picker,
		clock:     clock,
		opts:      opts,
		logger:    logger,
	}
}

// Range computes the step range for the current minute.
func (s *RunnerService) Range() domain.StepRange {
	return domain.GenerateStepRange(s.clock.Now(), s.opts.Steps)
}

// Run processes every pair once. A failing account is recorded in its Outcome
// and never stops the others; the error is only non-nil when ctx ends the run.
func (s *RunnerService) Run(ctx context.Context, pairs []domain.Pair) (domain.RunReport, error) {
	report := domain.RunReport{Range: s.Range()}
	if report.Range.IsEmpty() {
		s.logger.InfoContext(ctx, "step range is empty, skipping submission")
		report.Suppressed = true
		return report, nil
	}

	report.Outcomes = make([]domain.Outcome, len(pairs))

	if s.opts.Parallel < 2 {
		for i, pair := range pairs {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.Outcomes[i] = s.record(s.runAccount(ctx, pair, report.Range))
		}
		return report, nil
	}

	var g errgroup.Group
	g.SetLimit(s.opts.Parallel)
	for i, pair := range pairs {
		g.Go(func() error {
			report.Outcomes[i] = s.record(s.runAccount(ctx, pair, report.Range))
			return nil
		})
	}
	_ = g.Wait()

	return report, ctx.Err()
}

func (s *RunnerService) record(outcome domain.Outcome) domain.Outcome {
	if s.opts.OnOutcome != nil {
		s.opts.OnOutcome(outcome)
	}
	return outcome
}

func (s *RunnerService) runAccount(ctx context.Context, pair domain.Pair, stepRange domain.StepRange) domain.Outcome {
	outcome := domain.Outcome{Identifier: pair.Identifier}
	log := s.logger.With("account", pair.Masked())

	credential, err := s.auth.Login(ctx, pair.Identifier, pair.Password)
	if err == nil && !credential.Valid() {
		err = &domain.AuthError{Stage: domain.AuthStageLoginToken, Reason: "incomplete credential"}
	}
	if err != nil {
		outcome.Err = fmt.Errorf("login: %w", err)
		outcome.At = s.clock.Now()
		log.WarnContext(ctx, "login failed", "error", err)
		return outcome
	}

	outcome.Steps = s.picker.Pick(stepRange)
	outcome.Message, outcome.Err = s.submitter.Submit(ctx, credential, outcome.Steps)
	outcome.At = s.clock.Now()

	if outcome.Err != nil {
		log.WarnContext(ctx, "submission failed", "steps", outcome.Steps, "error", outcome.Err)
	} else {
		log.InfoContext(ctx, "steps submitted", "steps", outcome.Steps, "message", outcome.Message)
	}

	return outcome
}
