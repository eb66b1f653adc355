package domain

// Credential is the result of a successful login. It is never persisted.
type Credential struct {
	LoginToken string
	UserID     string
}

// Valid reports whether both halves are present; a partial credential is unusable.
func (c Credential) Valid() bool {
	return c.LoginToken != "" && c.UserID != ""
}

type AuthStage string

const (
	AuthStageAccessCode AuthStage = "access_code"
	AuthStageLoginToken AuthStage = "login_token"
	AuthStageAppToken   AuthStage = "app_token"
)
