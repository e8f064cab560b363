package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedExtensions(t *testing.T) {
	normaliser := New()
	exts := normaliser.SupportedExtensions()

	require.NotEmpty(t, exts)
	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".text")
	assert.Contains(t, exts, ".log")
}

func TestNormalise_Success(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	raw := &domain.RawEntry{
		ID:    "notes/camping_trip.txt",
		Path:  "/journal/notes/camping_trip.txt",
		Title: "camping_trip",
		Text:  "  We hiked all day and slept under the stars.\n",
	}

	result, err := normaliser.Normalise(ctx, raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "camping trip", result.Title)
	assert.Equal(t, "We hiked all day and slept under the stars.", result.Text)
}

func TestNormalise_NilEntry(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	result, err := normaliser.Normalise(ctx, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_EmptyText(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	raw := &domain.RawEntry{
		ID:    "blank.txt",
		Path:  "/journal/blank.txt",
		Title: "blank",
		Text:  "   \n\t\n",
	}

	result, err := normaliser.Normalise(ctx, raw)
	require.NoError(t, err)
	assert.Empty(t, result.Text)
}

func TestNormalise_Titles(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		path          string
		expectedTitle string
	}{
		{
			name:          "underscores become spaces",
			title:         "morning_pages",
			path:          "/journal/morning_pages.txt",
			expectedTitle: "morning pages",
		},
		{
			name:          "dashes become spaces",
			title:         "evening-walk",
			path:          "/journal/evening-walk.txt",
			expectedTitle: "evening walk",
		},
		{
			name:          "date names kept verbatim",
			title:         "2025-08-11",
			path:          "/journal/2025-08-11.txt",
			expectedTitle: "2025-08-11",
		},
		{
			name:          "empty title falls back to path",
			title:         "",
			path:          "/journal/quiet-sunday.txt",
			expectedTitle: "quiet sunday",
		},
	}

	normaliser := New()
	ctx := context.Background()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := &domain.RawEntry{
				ID:    tc.path,
				Path:  tc.path,
				Title: tc.title,
				Text:  "content",
			}

			result, err := normaliser.Normalise(ctx, raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedTitle, result.Title)
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
