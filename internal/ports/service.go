package ports

import (
	"context"

	"github.com/bnema/mifit-steps-cli/internal/domain"
)

// Authenticator turns an identifier/password pair into a login credential.
type Authenticator interface {
	Login(ctx context.Context, identifier string, password string) (domain.Credential, error)
}

// AppTokenIssuer derives the per-submission app token from a login token.
type AppTokenIssuer interface {
	AppToken(ctx context.Context, loginToken string) (string, error)
}

// BandDataUploader posts a rendered data_json payload and returns the service message.
type BandDataUploader interface {
	Upload(ctx context.Context, userID string, appToken string, dataJSON string) (string, error)
}

type TemplateSource interface {
	Load(ctx context.Context) (string, error)
}

// StepPicker draws a step count from a closed range.
type StepPicker interface {
	Pick(r domain.StepRange) int
}
