package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTemplate = `%5B%7B%22data_hr%22%3A%22%5C%2F%5C%2F%5C%2F%22%2C%22date%22%3A%222021-08-07%22%2C%22data%22%3A%5B%7B%22start%22%3A0%7D%5D%2C%22summary%22%3A%22%7B%5C%22stp%5C%22%3A%7B%5C%22ttl%5C%22%3A18272%2C%5C%22dis%5C%22%3A10627%7D%7D%22%7D%5D`

func TestRenderPayloadReplacesDateAndSteps(t *testing.T) {
	t.Parallel()

	rendered, err := RenderPayload(sampleTemplate, "2026-02-14", 30123)
	require.NoError(t, err)

	assert.Contains(t, rendered, `date%22%3A%222026-02-14%22%2C%22data`)
	assert.Contains(t, rendered, `ttl%5C%22%3A30123%2C%5C%22dis`)
	assert.NotContains(t, rendered, "2021-08-07")
	assert.NotContains(t, rendered, "18272")
	assert.Contains(t, rendered, "10627")
	assert.Len(t, rendered, len(sampleTemplate)+len("30123")-len("18272"))
}

func TestRenderPayloadIsIdempotent(t *testing.T) {
	t.Parallel()

	first, err := RenderPayload(sampleTemplate, "2026-02-14", 30123)
	require.NoError(t, err)
	second, err := RenderPayload(sampleTemplate, "2026-02-14", 30123)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := RenderPayload(first, "2026-02-14", 30123)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestRenderPayloadRejectsAmbiguousMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		field    string
		matches  int
	}{
		{name: "missing date", template: "ttl%5C%22%3A1%2C%5C%22dis", field: "date", matches: 0},
		{name: "duplicate date", template: sampleTemplate + sampleTemplate, field: "date", matches: 2},
		{name: "missing steps", template: "date%22%3A%222021-08-07%22%2C%22data", field: "ttl", matches: 0},
		{name: "empty", template: "", field: "date", matches: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := RenderPayload(tc.template, "2026-02-14", 1)
			require.ErrorIs(t, err, ErrTemplate)

			var templateErr *TemplateError
			require.True(t, errors.As(err, &templateErr))
			assert.Equal(t, tc.field, templateErr.Field)
			assert.Equal(t, tc.matches, templateErr.Matches)
		})
	}
}

func TestFormatReferenceDateUsesUTCPlusEight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2026-02-15", FormatReferenceDate(time.Date(2026, 2, 14, 16, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2026-02-14", FormatReferenceDate(time.Date(2026, 2, 14, 15, 59, 0, 0, time.UTC)))
}
