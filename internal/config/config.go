// Package config resolves runtime settings from the optional config file,
// the environment and bound command-line flags, in viper's precedence order.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/mifit-steps-cli/internal/adapters/huami"
	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	EnvMaxDailySteps  = "MAX_DAILY_STEPS"
	EnvVariationRatio = "VARIATION_RATIO"
	EnvTemplate       = "MFS_TEMPLATE"
	EnvLogLevel       = "MFS_LOG_LEVEL"

	KeyMaxDailySteps        = "steps.max_daily"
	KeyVariationRatio       = "steps.variation_ratio"
	KeyTemplatePath         = "template.path"
	KeyLogLevel             = "log.level"
	KeyParallel             = "submit.parallel"
	KeyRequestTimeout       = "http.timeout"
	KeyEndpointBase         = "endpoints.base"
	KeyEndpointRegistration = "endpoints.registration"
	KeyEndpointAccount      = "endpoints.account"
	KeyEndpointAppToken     = "endpoints.app_token"
	KeyEndpointData         = "endpoints.data"

	DefaultLogLevel = "warn"

	configName = "config"
	configType = "toml"
	configDir  = ".mfs"
)

type Config struct {
	Steps          domain.StepConfig
	TemplatePath   string
	LogLevel       string
	Parallel       int
	RequestTimeout time.Duration
	Endpoints      huami.Endpoints
}

// New returns a viper instance with every environment binding in place.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)

	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	_ = v.BindEnv(KeyMaxDailySteps, EnvMaxDailySteps)
	_ = v.BindEnv(KeyVariationRatio, EnvVariationRatio)
	_ = v.BindEnv(KeyTemplatePath, EnvTemplate)
	_ = v.BindEnv(KeyLogLevel, EnvLogLevel)

	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyParallel, 1)
	v.SetDefault(KeyRequestTimeout, huami.DefaultRequestTimeout)

	return v
}

// ReadFile loads ~/.mfs/config.toml when it exists. A missing file is not an error.
func ReadFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("read config file: %w", err)
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Steps: domain.StepConfig{
			MaxDailySteps:  intOrDefault(v.Get(KeyMaxDailySteps), domain.DefaultMaxDailySteps),
			VariationRatio: floatOrDefault(v.Get(KeyVariationRatio), domain.DefaultVariationRatio),
		},
		TemplatePath:   strings.TrimSpace(v.GetString(KeyTemplatePath)),
		LogLevel:       strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		Parallel:       intOrDefault(v.Get(KeyParallel), 1),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
	}

	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = huami.DefaultRequestTimeout
	}

	cfg.Endpoints = huami.DefaultEndpoints()
	if base := strings.TrimSpace(v.GetString(KeyEndpointBase)); base != "" {
		cfg.Endpoints = huami.SingleHost(base)
	}
	overrideString(&cfg.Endpoints.RegistrationBaseURL, v.GetString(KeyEndpointRegistration))
	overrideString(&cfg.Endpoints.AccountBaseURL, v.GetString(KeyEndpointAccount))
	overrideString(&cfg.Endpoints.AppTokenBaseURL, v.GetString(KeyEndpointAppToken))
	overrideString(&cfg.Endpoints.DataBaseURL, v.GetString(KeyEndpointData))

	if err := cfg.Endpoints.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid endpoints: %w", err)
	}

	return cfg, nil
}

// intOrDefault accepts any non-negative integer. Strings (environment values)
// must be plain decimal; typed values from the config file go through cast.
// Anything else yields fallback.
func intOrDefault(raw any, fallback int) int {
	var (
		n   int
		err error
	)
	switch v := raw.(type) {
	case nil:
		return fallback
	case string:
		n, err = strconv.Atoi(strings.TrimSpace(v))
	default:
		n, err = cast.ToIntE(v)
	}
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// floatOrDefault accepts any finite non-negative number. Strings must be
// decimal or exponent notation; hex floats are rejected. Anything else yields
// fallback.
func floatOrDefault(raw any, fallback float64) float64 {
	var (
		f   float64
		err error
	)
	switch v := raw.(type) {
	case nil:
		return fallback
	case string:
		f, err = parseDecimalFloat(strings.TrimSpace(v))
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return fallback
	}
	return f
}

func parseDecimalFloat(s string) (float64, error) {
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") || strings.Contains(s, "_") {
		return 0, fmt.Errorf("not a decimal number: %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

func overrideString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
