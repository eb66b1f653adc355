package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/mifit-steps-cli/internal/adapters/huami"
	reportadapter "github.com/bnema/mifit-steps-cli/internal/adapters/render/report"
	tomlrepo "github.com/bnema/mifit-steps-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/mifit-steps-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/mifit-steps-cli/internal/adapters/secrets/file"
	templatefile "github.com/bnema/mifit-steps-cli/internal/adapters/template/file"
	"github.com/bnema/mifit-steps-cli/internal/application"
	"github.com/bnema/mifit-steps-cli/internal/config"
	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/spf13/viper"
)

// Replaced in tests.
var (
	newRESTClient = huami.NewRESTClient
	nowFunc       = time.Now
)

type app struct {
	viper    *viper.Viper
	cfg      config.Config
	logger   *slog.Logger
	accounts *application.AccountService
	render   func(domain.RunReport, reportadapter.RenderOptions) (string, error)
	now      func() time.Time
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time {
	return f()
}

func wireApp(v *viper.Viper) (*app, error) {
	if err := config.ReadFile(v); err != nil {
		return nil, err
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}

	secretsRoot, err := filestore.DefaultRoot()
	if err != nil {
		return nil, err
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(secretsRoot)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		viper:    v,
		logger:   slog.Default(),
		accounts: application.NewAccountService(repo, secretStore),
		render:   reportadapter.Render,
		now:      nowFunc,
	}, nil
}

// runner assembles a runner for the loaded configuration. Every call gets a
// fresh HTTP client so no connection state is shared between runs.
func (a *app) runner(logger *slog.Logger, onOutcome func(domain.Outcome)) *application.RunnerService {
	clock := clockFunc(a.now)
	adapter := &huami.Adapter{
		Endpoints:  a.cfg.Endpoints,
		HTTPClient: newRESTClient(a.cfg.RequestTimeout),
		Logger:     logger,
		Now:        a.now,
	}

	submitter := application.NewSubmissionService(
		adapter,
		adapter,
		templatefile.NewSource(a.cfg.TemplatePath),
		clock,
		logger,
	)

	return application.NewRunnerService(
		adapter,
		submitter,
		application.UniformStepPicker{},
		clock,
		application.RunnerOptions{Steps: a.cfg.Steps, Parallel: a.cfg.Parallel, OnOutcome: onOutcome},
		logger,
	)
}
