package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrSecretNotFound       = errors.New("secret not found")
	ErrAccountCountMismatch = errors.New("identifier and password counts differ")
	ErrAuthFailed           = errors.New("login failed")
	ErrAppTokenUnavailable  = errors.New("app token unavailable")
	ErrTemplate             = errors.New("payload template error")
	ErrTransport            = errors.New("transport failure")
)

// AuthError records which hop of the credential exchange came back without the expected field.
type AuthError struct {
	Stage  AuthStage
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
}

// Is maps the app token hop to ErrAppTokenUnavailable and the login hops to ErrAuthFailed.
func (e *AuthError) Is(target error) bool {
	if e.Stage == AuthStageAppToken {
		return target == ErrAppTokenUnavailable
	}
	return target == ErrAuthFailed
}

type TemplateError struct {
	Field   string
	Matches int
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("payload template: %s marker matched %d times, want exactly 1", e.Field, e.Matches)
}

func (e *TemplateError) Is(target error) bool {
	return target == ErrTemplate
}

// TransportError wraps a network or decoding failure of one HTTP call.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
