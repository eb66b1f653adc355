package huami

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAccessCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location string
		want     string
		ok       bool
	}{
		{name: "delimited code", location: "https://x/y?foo=1&access=ABC123&bar=2", want: "ABC123", ok: true},
		{name: "first param", location: "https://x/y?access=XYZ&region=cn", want: "XYZ", ok: true},
		{name: "missing marker", location: "https://x/y?foo=1&bar=2", ok: false},
		{name: "no trailing ampersand", location: "https://x/y?access=ABC123", ok: false},
		{name: "empty code", location: "https://x/y?access=&bar=2", ok: false},
		{name: "empty location", location: "", ok: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractAccessCode(tc.location)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoginPhoneIdentity(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/registrations/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/registrations/+8613800000000/tokens", r.URL.Path)
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "HuaMi", r.Form.Get("client_id"))
		assert.Equal(t, "secret", r.Form.Get("password"))
		assert.Equal(t, "access", r.Form.Get("token"))
		assert.Equal(t, redirectURI, r.Form.Get("redirect_uri"))

		w.Header().Set("Location", redirectURI+"?region=cn&access=CODE-1&country_code=CN")
		w.WriteHeader(http.StatusSeeOther)
	})
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "CODE-1", r.Form.Get("code"))
		assert.Equal(t, "huami_phone", r.Form.Get("third_name"))
		assert.Equal(t, "access_token", r.Form.Get("grant_type"))
		assert.Equal(t, deviceID, r.Form.Get("device_id"))
		assert.Equal(t, "6.3.5", r.Form.Get("app_version"))
		for _, field := range []string{"allow_registration", "dn", "lang", "os_version", "source"} {
			_, present := r.Form[field]
			assert.False(t, present, "phone login must not send %s", field)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_info":{"login_token":"login-abc","user_id":"1000001"}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	adapter := newTestAdapter(server)
	credential, err := adapter.Login(context.Background(), "13800000000", "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.Credential{LoginToken: "login-abc", UserID: "1000001"}, credential)
}

func TestLoginEmailIdentitySendsExtraFields(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/registrations/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/registrations/user@example.com/tokens", r.URL.Path)
		w.Header().Set("Location", "https://x/y?access=CODE-2&foo=bar")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "email", r.Form.Get("third_name"))
		assert.Equal(t, "false", r.Form.Get("allow_registration"))
		assert.Equal(t, "api-user.huami.com%2Capi-mifit.huami.com%2Capp-analytics.huami.com", r.Form.Get("dn"))
		assert.Equal(t, "zh_CN", r.Form.Get("lang"))
		assert.Equal(t, "1.5.0", r.Form.Get("os_version"))
		assert.Equal(t, appName, r.Form.Get("source"))

		_, _ = w.Write([]byte(`{"token_info":{"login_token":"login-email","user_id":42}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	credential, err := newTestAdapter(server).Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "login-email", credential.LoginToken)
	assert.Equal(t, "42", credential.UserID)
}

func TestLoginFailsWithoutAccessCode(t *testing.T) {
	t.Parallel()

	var loginCalled bool
	mux := http.NewServeMux()
	mux.HandleFunc("/registrations/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://x/y?error=0106&foo=bar")
		w.WriteHeader(http.StatusSeeOther)
	})
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		loginCalled = true
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	credential, err := newTestAdapter(server).Login(context.Background(), "13800000000", "bad")
	require.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Equal(t, domain.Credential{}, credential)
	assert.False(t, loginCalled)

	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.AuthStageAccessCode, authErr.Stage)
}

func TestLoginFailsWhenTokenInfoIncomplete(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/registrations/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://x/y?access=CODE&foo=bar")
		w.WriteHeader(http.StatusSeeOther)
	})
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token_info":{"login_token":"only-token"}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	credential, err := newTestAdapter(server).Login(context.Background(), "13800000000", "secret")
	require.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Equal(t, domain.Credential{}, credential)
}

func TestLoginReportsTransportFailureOnGarbageJSON(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/registrations/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://x/y?access=CODE&foo=bar")
		w.WriteHeader(http.StatusSeeOther)
	})
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	_, err := newTestAdapter(server).Login(context.Background(), "13800000000", "secret")
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.NotErrorIs(t, err, domain.ErrAuthFailed)
}

func TestAppToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, appTokenPath, r.URL.Path)
		assert.Equal(t, "login-abc", r.URL.Query().Get("login_token"))
		assert.Equal(t, appName, r.URL.Query().Get("app_name"))
		assert.Equal(t, domainNames, r.URL.Query().Get("dn"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`{"token_info":{"app_token":"app-xyz"}}`))
	}))
	t.Cleanup(server.Close)

	token, err := newTestAdapter(server).AppToken(context.Background(), "login-abc")
	require.NoError(t, err)
	assert.Equal(t, "app-xyz", token)
}

func TestAppTokenMissingIsDistinctFromLoginFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"invalid token"}`))
	}))
	t.Cleanup(server.Close)

	_, err := newTestAdapter(server).AppToken(context.Background(), "expired")
	require.ErrorIs(t, err, domain.ErrAppTokenUnavailable)
	assert.NotErrorIs(t, err, domain.ErrAuthFailed)
}

func TestRequestTimesOut(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"token_info":{"app_token":"late"}}`))
	}))
	t.Cleanup(server.Close)

	adapter := Adapter{
		Endpoints:  SingleHost(server.URL),
		HTTPClient: NewRESTClient(20 * time.Millisecond),
	}

	_, err := adapter.AppToken(context.Background(), "login-abc")
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorContains(t, err, "request app token")
}

func TestEndpointsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultEndpoints().Validate())

	endpoints := DefaultEndpoints()
	endpoints.DataBaseURL = "ftp://example.com"
	assert.ErrorContains(t, endpoints.Validate(), "data endpoint: base url must use http or https")

	endpoints = DefaultEndpoints()
	endpoints.AccountBaseURL = ""
	assert.ErrorContains(t, endpoints.Validate(), "account endpoint: base url is required")
}

func newTestAdapter(server *httptest.Server) Adapter {
	return Adapter{
		Endpoints:  SingleHost(server.URL),
		HTTPClient: NewRESTClient(time.Second),
	}
}
