package domain

import (
	"fmt"
	"strings"
)

const DefaultPairSeparator = "#"

type AccountID string

// Account is a stored account. The password lives in the secret store behind PasswordRef.
type Account struct {
	ID          AccountID
	Identifier  string
	Name        string
	PasswordRef string
}

// Pair is one identifier/password pair ready to be logged in.
type Pair struct {
	Identifier string
	Password   string
}

func (p Pair) Masked() string {
	return MaskIdentifier(p.Identifier)
}

// ParsePairs zips two separator-delimited lists positionally.
func ParsePairs(users, passwords, sep string) ([]Pair, error) {
	if sep == "" {
		sep = DefaultPairSeparator
	}

	identifiers := strings.Split(users, sep)
	secrets := strings.Split(passwords, sep)
	if len(identifiers) != len(secrets) {
		return nil, fmt.Errorf("%w: %d identifiers, %d passwords", ErrAccountCountMismatch, len(identifiers), len(secrets))
	}

	pairs := make([]Pair, 0, len(identifiers))
	for i := range identifiers {
		pairs = append(pairs, Pair{Identifier: identifiers[i], Password: secrets[i]})
	}

	return pairs, nil
}

func PasswordSecretKey(id AccountID) string {
	return fmt.Sprintf("mifit/%s/password", id)
}
