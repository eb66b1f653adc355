package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/bnema/mifit-steps-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	AccountsPathKey = "accounts.path"

	defaultDir  = ".mfs"
	defaultFile = "accounts.toml"
)

// Repository keeps the stored accounts in one TOML file. Every instance
// pointing at the same path shares one lock.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.AccountRepository = (*Repository)(nil)

var (
	locksMu sync.Mutex
	locks   = map[string]*sync.RWMutex{}
)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(AccountsPathKey)
	if !cfg.IsSet(AccountsPathKey) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, defaultDir, defaultFile)
	}
	if path == "" {
		return nil, errors.New("accounts path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve accounts path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{path: absPath, mu: sharedLock(absPath)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	var found *accountSchema
	err := r.view(ctx, func(file fileSchema) {
		if i := file.indexOf(id); i >= 0 {
			found = &file.Accounts[i]
		}
	})
	if err != nil {
		return domain.Account{}, err
	}
	if found == nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return found.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.view(ctx, func(file fileSchema) {
		accounts = make([]domain.Account, 0, len(file.Accounts))
		for _, entry := range file.Accounts {
			accounts = append(accounts, entry.toDomain())
		}
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Save replaces the entry with the same ID or appends a new one.
func (r *Repository) Save(ctx context.Context, account domain.Account) error {
	return r.update(ctx, func(file *fileSchema) error {
		entry := accountFromDomain(account)
		if i := file.indexOf(account.ID); i >= 0 {
			file.Accounts[i] = entry
		} else {
			file.Accounts = append(file.Accounts, entry)
		}
		return nil
	})
}

func (r *Repository) Delete(ctx context.Context, id domain.AccountID) error {
	return r.update(ctx, func(file *fileSchema) error {
		i := file.indexOf(id)
		if i < 0 {
			return domain.ErrAccountNotFound
		}
		file.Accounts = slices.Delete(file.Accounts, i, i+1)
		return nil
	})
}

func (r *Repository) view(ctx context.Context, fn func(fileSchema)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.load()
	if err != nil {
		return err
	}
	fn(file)

	return nil
}

// update runs fn under the write lock and persists the result unless fn
// fails or ctx ends first.
func (r *Repository) update(ctx context.Context, fn func(*fileSchema) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return err
	}
	if err := fn(&file); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	file.applyDefaults()
	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode accounts file: %w", err)
	}

	return writeFileAtomic(r.path, data)
}

func (r *Repository) load() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return fileSchema{Version: currentSchemaVersion}, nil
	}
	if err != nil {
		return fileSchema{}, fmt.Errorf("read accounts file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode accounts file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func sharedLock(path string) *sync.RWMutex {
	locksMu.Lock()
	defer locksMu.Unlock()

	mu, ok := locks[path]
	if !ok {
		mu = &sync.RWMutex{}
		locks[path] = mu
	}
	return mu
}
