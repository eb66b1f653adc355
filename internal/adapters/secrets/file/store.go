package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/bnema/mifit-steps-cli/internal/ports"
)

const (
	storeDirMode  = 0o700
	secretFileMod = 0o600
)

// Store keeps one secret per file below root. Keys are slash-separated
// relative paths such as mifit/1/password; access goes through os.Root so a
// key can never resolve outside the store.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// DefaultRoot is ~/.mfs/secrets.
func DefaultRoot() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".mfs", "secrets"), nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	name, err := validateKey(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, storeDirMode); err != nil {
		return fmt.Errorf("create file secret directory: %w", err)
	}

	return s.withRoot(func(root *os.Root) error {
		if err := root.MkdirAll(filepath.Dir(name), storeDirMode); err != nil {
			return fmt.Errorf("create file secret directory: %w", err)
		}
		if err := root.WriteFile(name, []byte(value), secretFileMod); err != nil {
			return fmt.Errorf("write file secret %q: %w", key, err)
		}
		// WriteFile keeps the mode of an existing file.
		if err := root.Chmod(name, secretFileMod); err != nil {
			return fmt.Errorf("chmod file secret %q: %w", key, err)
		}
		return nil
	})
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	name, err := validateKey(ctx, key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err = s.withRoot(func(root *os.Root) error {
		data, err := root.ReadFile(name)
		if err != nil {
			return err
		}
		value = string(data)
		return nil
	})
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("file secret %q: %w", key, domain.ErrSecretNotFound)
	case err != nil:
		return "", fmt.Errorf("read file secret %q: %w", key, err)
	}

	return value, nil
}

// Delete succeeds when the secret is already gone.
func (s *Store) Delete(ctx context.Context, key string) error {
	name, err := validateKey(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.withRoot(func(root *os.Root) error {
		return root.Remove(name)
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete file secret %q: %w", key, err)
	}

	return nil
}

func (s *Store) withRoot(fn func(*os.Root) error) error {
	root, err := os.OpenRoot(s.root)
	if err != nil {
		return err
	}
	defer root.Close()

	return fn(root)
}

func validateKey(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	cleaned := filepath.Clean(filepath.FromSlash(trimmed))
	if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid secret key %q", key)
	}

	return cleaned, nil
}
