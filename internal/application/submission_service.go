package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/bnema/mifit-steps-cli/internal/ports"
)

// SubmissionService performs one account's submission once a credential exists.
type SubmissionService struct {
	tokens    ports.AppTokenIssuer
	uploader  ports.BandDataUploader
	templates ports.TemplateSource
	clock     ports.Clock
	logger    *slog.Logger
}

func NewSubmissionService(tokens ports.AppTokenIssuer, uploader ports.BandDataUploader, templates ports.TemplateSource, clock ports.Clock, logger *slog.Logger) *SubmissionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SubmissionService{
		tokens:    tokens,
		uploader:  uploader,
		templates: templates,
		clock:     clock,
		logger:    logger,
	}
}

// Submit derives a fresh app token, renders the template for today and uploads
// it. The returned message is the service's free text, not a success flag.
func (s *SubmissionService) Submit(ctx context.Context, credential domain.Credential, steps int) (string, error) {
	if !credential.Valid() {
		return "", fmt.Errorf("submit steps: %w", domain.ErrAuthFailed)
	}

	appToken, err := s.tokens.AppToken(ctx, credential.LoginToken)
	if err != nil {
		return "", fmt.Errorf("derive app token: %w", err)
	}

	template, err := s.templates.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load payload template: %w", err)
	}

	dataJSON, err := domain.RenderPayload(template, domain.FormatReferenceDate(s.clock.Now()), steps)
	if err != nil {
		return "", fmt.Errorf("render payload: %w", err)
	}

	s.logger.DebugContext(ctx, "submitting steps", "user_id", credential.UserID, "steps", steps)

	message, err := s.uploader.Upload(ctx, credential.UserID, appToken, dataJSON)
	if err != nil {
		return "", fmt.Errorf("upload steps: %w", err)
	}

	return message, nil
}
