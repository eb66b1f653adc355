package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/mifit-steps-cli/internal/ports"
)

const DefaultPath = "upload_json.txt"

// Source reads the captured request body from disk on every Load.
type Source struct {
	path string
}

var _ ports.TemplateSource = (*Source)(nil)

func NewSource(path string) *Source {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &Source{path: filepath.Clean(path)}
}

func (s *Source) Path() string {
	return s.path
}

func (s *Source) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("payload template %q not found: %w", s.path, err)
		}
		return "", fmt.Errorf("read payload template %q: %w", s.path, err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}
