package huami

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/go-resty/resty/v2"
)

const (
	UserAgent = "MiFit/5.3.0 (iPhone; iOS 14.7.1; Scale/3.00)"

	DefaultRequestTimeout = 30 * time.Second

	registrationPath = "/registrations/{identity}/tokens"
	loginPath        = "/v2/client/login"
	appTokenPath     = "/v1/client/app_tokens"
	bandDataPath     = "/v1/data/band_data.json"
)

// Endpoints holds the base URL of each host the exchange talks to.
type Endpoints struct {
	RegistrationBaseURL string
	AccountBaseURL      string
	AppTokenBaseURL     string
	DataBaseURL         string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		RegistrationBaseURL: "https://api-user.huami.com",
		AccountBaseURL:      "https://account.huami.com",
		AppTokenBaseURL:     "https://account-cn.huami.com",
		DataBaseURL:         "https://api-mifit-cn.huami.com",
	}
}

// SingleHost points every endpoint at one base URL.
func SingleHost(baseURL string) Endpoints {
	return Endpoints{
		RegistrationBaseURL: baseURL,
		AccountBaseURL:      baseURL,
		AppTokenBaseURL:     baseURL,
		DataBaseURL:         baseURL,
	}
}

func (e Endpoints) Validate() error {
	for name, raw := range map[string]string{
		"registration": e.RegistrationBaseURL,
		"account":      e.AccountBaseURL,
		"app token":    e.AppTokenBaseURL,
		"data":         e.DataBaseURL,
	} {
		if err := validateBaseURL(raw); err != nil {
			return fmt.Errorf("%s endpoint: %w", name, err)
		}
	}
	return nil
}

// Adapter speaks the four-endpoint protocol of the fitness service.
type Adapter struct {
	Endpoints  Endpoints
	HTTPClient *resty.Client
	Logger     *slog.Logger
	Now        func() time.Time
}

// NewRESTClient returns a resty client with the mobile user agent and a
// redirect policy that hands 3xx responses back instead of following them.
func NewRESTClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", UserAgent).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
}

func (a Adapter) client() *resty.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return NewRESTClient(DefaultRequestTimeout)
}

func (a Adapter) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a Adapter) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// flexibleString accepts both JSON strings and numbers.
type flexibleString string

func (s *flexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = flexibleString(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*s = flexibleString(number.String())
	return nil
}

func decodeJSON(op string, body []byte, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("base url must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("base url host is required")
	}

	return nil
}

func joinURL(baseURL string, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}
