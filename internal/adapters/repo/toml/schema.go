package toml

import (
	"fmt"

	"github.com/bnema/mifit-steps-cli/internal/domain"
)

const currentSchemaVersion = 1

// fileSchema is the on-disk layout of accounts.toml. Passwords are never part
// of it, only the secret store key they live under.
type fileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	return nil
}

func (s fileSchema) indexOf(id domain.AccountID) int {
	for i, entry := range s.Accounts {
		if entry.ID == string(id) {
			return i
		}
	}
	return -1
}

type accountSchema struct {
	ID          string `toml:"id"`
	Identifier  string `toml:"identifier"`
	Name        string `toml:"name,omitempty"`
	PasswordRef string `toml:"password_ref"`
}

func accountFromDomain(account domain.Account) accountSchema {
	return accountSchema{
		ID:          string(account.ID),
		Identifier:  account.Identifier,
		Name:        account.Name,
		PasswordRef: account.PasswordRef,
	}
}

func (s accountSchema) toDomain() domain.Account {
	return domain.Account{
		ID:          domain.AccountID(s.ID),
		Identifier:  s.Identifier,
		Name:        s.Name,
		PasswordRef: s.PasswordRef,
	}
}
