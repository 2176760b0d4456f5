package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrLoad,
		ErrValidation,
		ErrUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
		expectedID  string
	}{
		{
			name:        "generic entity and ID",
			err:         NewNotFoundError("quote", "42"),
			expectedMsg: `quote with id "42" not found`,
			expectedID:  "42",
		},
		{
			name:        "entity only",
			err:         NewNotFoundError("favorite", ""),
			expectedMsg: "favorite not found",
		},
		{
			name:        "quote lookup miss",
			err:         NewQuoteNotFoundError(7),
			expectedMsg: `quote with id "7" not found`,
			expectedID:  "7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMsg, tt.err.Error())
			require.ErrorIs(t, tt.err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, tt.err, &notFound)
			assert.Equal(t, tt.expectedID, notFound.ID)
		})
	}
}

func TestLoadError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := NewLoadError("quotes.json", "decoding document", cause)

		assert.Equal(t, "loading quotes from quotes.json: decoding document: unexpected EOF", err.Error())
		require.ErrorIs(t, err, ErrLoad)
		require.ErrorIs(t, err, cause)

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "quotes.json", loadErr.Source)
	})

	t.Run("without cause", func(t *testing.T) {
		err := NewLoadError("https://example.test/quotes.json", "HTTP 500", nil)

		assert.Equal(t, "loading quotes from https://example.test/quotes.json: HTTP 500", err.Error())
		assert.True(t, IsLoad(err))
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "language",
			message:     "must be one of: de en",
			expectedMsg: "validation failed for language: must be one of: de en",
		},
		{
			name:        "without field",
			message:     "unknown action",
			expectedMsg: "validation failed: unknown action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrValidation)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailableError("preferences", "database is locked")

	assert.Equal(t, `service "preferences" unavailable: database is locked`, err.Error())
	assert.True(t, IsUnavailable(err))
	assert.Equal(t, `service "cache" unavailable`, NewUnavailableError("cache", "").Error())
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isFunc   func(error) bool
		expected bool
	}{
		{"IsNotFound with NotFoundError", NewQuoteNotFoundError(1), IsNotFound, true},
		{"IsNotFound with wrapped", fmt.Errorf("wrapped: %w", ErrNotFound), IsNotFound, true},
		{"IsNotFound with other error", ErrLoad, IsNotFound, false},
		{"IsNotFound with nil", nil, IsNotFound, false},

		{"IsLoad with LoadError", NewLoadError("file", "missing", nil), IsLoad, true},
		{"IsLoad with wrapped", fmt.Errorf("startup: %w", NewLoadError("file", "missing", nil)), IsLoad, true},
		{"IsLoad with other error", ErrNotFound, IsLoad, false},

		{"IsValidation with ValidationError", NewValidationError("id", "invalid"), IsValidation, true},
		{"IsValidation with nil", nil, IsValidation, false},

		{"IsUnavailable with UnavailableError", NewUnavailableError("db", "timeout"), IsUnavailable, true},
		{"IsUnavailable with other error", ErrValidation, IsUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.isFunc(tt.err))
		})
	}
}
