package huami

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/bnema/mifit-steps-cli/internal/ports"
)

const (
	clientID     = "HuaMi"
	redirectURI  = "https://s3-us-west-2.amazonaws.com/hm-registration/successsignin.html"
	appName      = "com.xiaomi.hm.health"
	appVersion   = "6.3.5"
	countryCode  = "CN"
	deviceID     = "2C8B4939-0CCD-4E94-8CBA-CB8EA6E613A1"
	deviceModel  = "phone"
	domainNames  = "api-user.huami.com,api-mifit.huami.com,app-analytics.huami.com"
	emailLang    = "zh_CN"
	emailOS      = "1.5.0"
	grantType    = "access_token"
	accessMarker = "access"
)

var accessCodePattern = regexp.MustCompile(`access=(.*?)&`)

var (
	_ ports.Authenticator  = Adapter{}
	_ ports.AppTokenIssuer = Adapter{}
)

type tokenInfoResponse struct {
	TokenInfo *struct {
		LoginToken flexibleString `json:"login_token"`
		UserID     flexibleString `json:"user_id"`
		AppToken   flexibleString `json:"app_token"`
	} `json:"token_info"`
}

// ExtractAccessCode returns the value between "access=" and the next "&" of a redirect location.
func ExtractAccessCode(location string) (string, bool) {
	match := accessCodePattern.FindStringSubmatch(location)
	if match == nil || match[1] == "" {
		return "", false
	}
	return match[1], true
}

// Login runs the access-code and login-token hops. Either hop missing its field
// fails the whole login; a partial credential is never returned.
func (a Adapter) Login(ctx context.Context, identifier string, password string) (domain.Credential, error) {
	identity := domain.ClassifyIdentity(identifier)

	code, err := a.requestAccessCode(ctx, identity, password)
	if err != nil {
		return domain.Credential{}, err
	}

	return a.exchangeAccessCode(ctx, identity, code)
}

func (a Adapter) requestAccessCode(ctx context.Context, identity domain.Identity, password string) (string, error) {
	resp, err := a.client().R().
		SetContext(ctx).
		SetPathParam("identity", identity.Normalized).
		SetFormData(map[string]string{
			"client_id":    clientID,
			"password":     password,
			"redirect_uri": redirectURI,
			"token":        accessMarker,
		}).
		Post(joinURL(a.Endpoints.RegistrationBaseURL, registrationPath))
	if err != nil {
		return "", &domain.TransportError{Op: "request access code", Err: err}
	}

	code, ok := ExtractAccessCode(resp.Header().Get("Location"))
	if !ok {
		return "", &domain.AuthError{
			Stage:  domain.AuthStageAccessCode,
			Reason: fmt.Sprintf("no access code in redirect (status %d)", resp.StatusCode()),
		}
	}

	return code, nil
}

func (a Adapter) exchangeAccessCode(ctx context.Context, identity domain.Identity, code string) (domain.Credential, error) {
	form := map[string]string{
		"app_name":     appName,
		"app_version":  appVersion,
		"code":         code,
		"country_code": countryCode,
		"device_id":    deviceID,
		"device_model": deviceModel,
		"grant_type":   grantType,
		"third_name":   identity.ThirdName(),
	}
	// Email logins are rejected by the service unless these are present.
	if !identity.IsPhone() {
		form["allow_registration"] = "false"
		form["dn"] = url.QueryEscape(domainNames)
		form["lang"] = emailLang
		form["os_version"] = emailOS
		form["source"] = appName
	}

	resp, err := a.client().R().
		SetContext(ctx).
		SetFormData(form).
		Post(joinURL(a.Endpoints.AccountBaseURL, loginPath))
	if err != nil {
		return domain.Credential{}, &domain.TransportError{Op: "exchange access code", Err: err}
	}

	var payload tokenInfoResponse
	if err := decodeJSON("exchange access code", resp.Body(), &payload); err != nil {
		return domain.Credential{}, err
	}
	if payload.TokenInfo == nil {
		return domain.Credential{}, &domain.AuthError{Stage: domain.AuthStageLoginToken, Reason: "response missing token_info"}
	}

	credential := domain.Credential{
		LoginToken: string(payload.TokenInfo.LoginToken),
		UserID:     string(payload.TokenInfo.UserID),
	}
	if !credential.Valid() {
		return domain.Credential{}, &domain.AuthError{Stage: domain.AuthStageLoginToken, Reason: "response missing login_token or user_id"}
	}

	return credential, nil
}

// AppToken derives a fresh app token. It is called once per submission and never cached.
func (a Adapter) AppToken(ctx context.Context, loginToken string) (string, error) {
	if loginToken == "" {
		return "", &domain.AuthError{Stage: domain.AuthStageAppToken, Reason: "login token is empty"}
	}

	resp, err := a.client().R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"app_name":    appName,
			"dn":          domainNames,
			"login_token": loginToken,
		}).
		Get(joinURL(a.Endpoints.AppTokenBaseURL, appTokenPath))
	if err != nil {
		return "", &domain.TransportError{Op: "request app token", Err: err}
	}

	var payload tokenInfoResponse
	if err := decodeJSON("request app token", resp.Body(), &payload); err != nil {
		return "", err
	}
	if payload.TokenInfo == nil || payload.TokenInfo.AppToken == "" {
		return "", &domain.AuthError{Stage: domain.AuthStageAppToken, Reason: "response missing app_token"}
	}

	return string(payload.TokenInfo.AppToken), nil
}
