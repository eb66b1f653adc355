package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/bnema/mifit-steps-cli/internal/ports"
)

var ErrIdentifierRequired = errors.New("account identifier is required")

// AccountService manages stored accounts. Passwords go to the secret store and
// only their reference is kept in the repository.
type AccountService struct {
	repo  ports.AccountRepository
	store ports.SecretStore
}

func NewAccountService(repo ports.AccountRepository, store ports.SecretStore) *AccountService {
	return &AccountService{
		repo:  repo,
		store: store,
	}
}

// Add stores a new account, or rotates the password of the account that
// already uses identifier.
func (s *AccountService) Add(ctx context.Context, identifier, password, name string) (domain.Account, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return domain.Account{}, ErrIdentifierRequired
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("list accounts: %w", err)
	}

	account, found := findByIdentifier(accounts, identifier)
	if !found {
		account = domain.Account{ID: nextAvailableAccountID(accounts), Identifier: identifier}
	}
	if name != "" {
		account.Name = name
	}
	if account.Name == "" {
		account.Name = domain.MaskIdentifier(identifier)
	}

	secretKey := domain.PasswordSecretKey(account.ID)
	previousRef := account.PasswordRef

	if err := s.store.Put(ctx, secretKey, password); err != nil {
		return domain.Account{}, fmt.Errorf("store account password: %w", err)
	}

	account.PasswordRef = secretKey
	if err := s.repo.Save(ctx, account); err != nil {
		if previousRef == secretKey {
			return domain.Account{}, fmt.Errorf("save account: %w", err)
		}
		if rollbackErr := s.store.Delete(ctx, secretKey); rollbackErr != nil {
			return domain.Account{}, fmt.Errorf("save account and rollback stored password: %w", errors.Join(err, rollbackErr))
		}
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	if previousRef != "" && previousRef != secretKey {
		if err := s.store.Delete(ctx, previousRef); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
			return account, fmt.Errorf("delete previous account password: %w", err)
		}
	}

	return account, nil
}

// Remove deletes the account and its password. When the password cannot be
// deleted the account entry is restored.
func (s *AccountService) Remove(ctx context.Context, id domain.AccountID) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if account.PasswordRef == "" {
		return nil
	}

	if err := s.store.Delete(ctx, account.PasswordRef); err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return nil
		}
		if restoreErr := s.repo.Save(ctx, account); restoreErr != nil {
			return fmt.Errorf("delete account password and restore account: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete account password: %w", err)
	}

	return nil
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

// Pairs resolves every stored account into a login pair, in repository order.
func (s *AccountService) Pairs(ctx context.Context) ([]domain.Pair, error) {
	accounts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	pairs := make([]domain.Pair, 0, len(accounts))
	for _, account := range accounts {
		if account.PasswordRef == "" {
			return nil, fmt.Errorf("account %s: %w", account.ID, domain.ErrSecretNotFound)
		}
		password, err := s.store.Get(ctx, account.PasswordRef)
		if err != nil {
			return nil, fmt.Errorf("account %s: load password: %w", account.ID, err)
		}
		pairs = append(pairs, domain.Pair{Identifier: account.Identifier, Password: password})
	}

	return pairs, nil
}

func findByIdentifier(accounts []domain.Account, identifier string) (domain.Account, bool) {
	for _, account := range accounts {
		if account.Identifier == identifier {
			return account, true
		}
	}
	return domain.Account{}, false
}

func nextAvailableAccountID(accounts []domain.Account) domain.AccountID {
	used := make(map[int]struct{}, len(accounts))
	for _, account := range accounts {
		n, err := strconv.Atoi(string(account.ID))
		if err != nil || n <= 0 {
			continue
		}
		used[n] = struct{}{}
	}

	for i := 1; ; i++ {
		if _, ok := used[i]; !ok {
			return domain.AccountID(strconv.Itoa(i))
		}
	}
}
