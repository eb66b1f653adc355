package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/bnema/mifit-steps-cli/internal/domain"
	"github.com/bnema/mifit-steps-cli/internal/ports"
)

// DefaultPrefix namespaces every entry inside the password store.
const DefaultPrefix = "mfs"

const missingEntryMarker = "is not in the password store"

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store shells out to pass(1). Entries live at <prefix>/<key>.
type Store struct {
	prefix string
	run    runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{prefix: DefaultPrefix, run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	_, err := s.invoke(ctx, "put", key, value+"\n", "insert", "-m", "-f")
	return err
}

// Get strips the single trailing newline pass appends on show.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	stdout, err := s.invoke(ctx, "get", key, "", "show")
	if err != nil {
		return "", err
	}

	stdout = strings.TrimSuffix(stdout, "\n")
	return strings.TrimSuffix(stdout, "\r"), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.invoke(ctx, "delete", key, "", "rm", "-f")
	return err
}

// invoke runs one pass subcommand against the entry for key, appended as the
// last argument.
func (s *Store) invoke(ctx context.Context, op string, key string, input string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, input, append(args, s.entry(key))...)
	if err == nil {
		return stdout, nil
	}
	if strings.Contains(stderr, missingEntryMarker) {
		return "", fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
	}
	if stderr == "" {
		return "", fmt.Errorf("pass %s %q: %w", op, key, err)
	}
	return "", fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
}

func (s *Store) entry(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	bin, err := exec.LookPath("pass")
	if errors.Is(err, exec.ErrNotFound) {
		return "", "", ErrUnavailable
	}
	if err != nil {
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
