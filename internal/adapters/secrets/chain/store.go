package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/mifit-steps-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/mifit-steps-cli/internal/adapters/secrets/pass"
	"github.com/bnema/mifit-steps-cli/internal/ports"
)

// Store reads and writes through the primary backend and only touches the
// fallback when the primary fails. Deletes reach both so no stale copy of a
// password written during a fallback survives.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNilBackend = errors.New("secret store backend is nil")

// NewStore panics on a nil backend.
func NewStore(primary ports.SecretStore, fallback ports.SecretStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}
	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, fmt.Errorf("primary: %w", errNilBackend)
	}
	if fallback == nil {
		return nil, fmt.Errorf("fallback: %w", errNilBackend)
	}
	return &Store{primary: primary, fallback: fallback}, nil
}

// NewPassFirstWithFileFallback prefers pass(1) and falls back to plain files under fileRoot.
func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	return s.firstOf("put", func(backend ports.SecretStore) error {
		return backend.Put(ctx, key, value)
	})
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.firstOf("get", func(backend ports.SecretStore) error {
		v, err := backend.Get(ctx, key)
		if err == nil {
			value = v
		}
		return err
	})
	return value, err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if isContextError(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err == nil || fallbackErr == nil {
		return nil
	}
	return combine("delete", err, fallbackErr)
}

// firstOf runs op on the primary, then on the fallback unless the primary
// succeeded or the context ended.
func (s *Store) firstOf(name string, op func(ports.SecretStore) error) error {
	err := op(s.primary)
	if err == nil || isContextError(err) {
		return err
	}

	fallbackErr := op(s.fallback)
	if fallbackErr == nil {
		return nil
	}
	return combine(name, err, fallbackErr)
}

func combine(op string, primaryErr error, fallbackErr error) error {
	return fmt.Errorf("primary backend %s failed: %w; fallback backend %s failed: %w", op, primaryErr, op, fallbackErr)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
