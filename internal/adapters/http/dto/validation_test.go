package dto

import (
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidator tests validator singleton.
func TestValidator(t *testing.T) {
	assert.Same(t, Validator(), Validator())
}

// TestValidate_RequestBodies tests the validation tags of the API bodies.
func TestValidate_RequestBodies(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr bool
	}{
		{name: "german", input: &LanguageRequest{Language: "de"}},
		{name: "english upper case", input: &LanguageRequest{Language: "EN"}},
		{name: "missing language", input: &LanguageRequest{}, wantErr: true},
		{name: "unsupported language", input: &LanguageRequest{Language: "fr"}, wantErr: true},
		{name: "empty filter", input: &FilterRequest{}},
		{name: "theme filter", input: &FilterRequest{Theme: "imagination"}},
		{name: "close button", input: &OverlayCloseRequest{Trigger: "close-button"}},
		{name: "missing trigger", input: &OverlayCloseRequest{}, wantErr: true},
		{name: "unknown trigger", input: &OverlayCloseRequest{Trigger: "swipe"}, wantErr: true},
		{name: "empty action form", input: &ActionForm{}},
		{name: "negative quote id", input: &ActionForm{ID: -1}, wantErr: true},
		{name: "form trigger", input: &ActionForm{Trigger: "outside-click"}},
		{name: "bad form trigger", input: &ActionForm{Trigger: "double-click"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrValidation)
				assert.True(t, IsValidationError(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestBindQueryAndValidate tests query binding and validation.
func TestBindQueryAndValidate(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/api/v1/quotes?theme=love", "")

	var query QuoteListQuery
	require.NoError(t, BindQueryAndValidate(c, &query))
	assert.Equal(t, "love", query.Theme)
}

// TestBindFormAndValidate tests form binding of the page actions.
func TestBindFormAndValidate(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/actions/share", "")
	c.Request.PostForm = map[string][]string{"id": {"3"}, "value": {"love"}}
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var form ActionForm
	require.NoError(t, BindFormAndValidate(c, &form))
	assert.Equal(t, 3, form.ID)
	assert.Equal(t, "love", form.Value)

	bad, _ := newTestContext(http.MethodPost, "/actions/share", "")
	bad.Request.PostForm = map[string][]string{"id": {"three"}}
	bad.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	require.ErrorIs(t, BindFormAndValidate(bad, &ActionForm{}), ErrBinding)
}

// TestValidationErrors tests extracting field errors.
func TestValidationErrors(t *testing.T) {
	err := Validate(&OverlayCloseRequest{Trigger: "swipe"})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"trigger": "must be one of: close-button outside-click cancel-key",
	}, ValidationErrors(err))

	assert.Empty(t, ValidationErrors(errors.New("some error")))
	assert.False(t, IsValidationError(nil))
}

// TestValidationMessage tests validation message generation.
func TestValidationMessage(t *testing.T) {
	type testStruct struct {
		Language string `json:"language" validate:"language"`
		Count    int    `json:"count" validate:"min=1,max=10"`
		Trigger  string `json:"trigger" validate:"oneof=close-button cancel-key"`
		Text     string `json:"text" validate:"min=5,max=100"`
		ID       int    `json:"id" validate:"gte=0,lte=120"`
		Score    int    `json:"score" validate:"gt=0,lt=100"`
		URL      string `json:"url" validate:"url"`
		Theme    string `json:"theme" validate:"notempty"`
		Author   string `json:"author" validate:"required"`
	}

	err := Validator().Struct(&testStruct{
		Language: "fr",
		Count:    20,
		Trigger:  "swipe",
		Text:     "abc",
		ID:       150,
		Score:    150,
		URL:      "not-a-url",
		Theme:    "  ",
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	expected := map[string]string{
		"language": "must be one of: de en",
		"count":    "must be at most 10",
		"trigger":  "must be one of: close-button cancel-key",
		"text":     "must be at least 5 characters",
		"id":       "must be less than or equal to 120",
		"score":    "must be less than 100",
		"url":      "must be a valid URL",
		"theme":    "must not be empty",
		"author":   "this field is required",
	}

	assert.Len(t, validationErrs, len(expected))

	for _, fe := range validationErrs {
		assert.Equal(t, expected[fe.Field()], validationMessage(fe), "field: %s", fe.Field())
	}
}

// TestMinMaxMessage tests min/max message generation.
func TestMinMaxMessage(t *testing.T) {
	assert.Equal(t, "must be at least 5 characters", minMaxMessage("min", "5", reflect.String))
	assert.Equal(t, "must be at most 64 characters", minMaxMessage("max", "64", reflect.String))
	assert.Equal(t, "must be at least 1", minMaxMessage("min", "1", reflect.Int))
	assert.Equal(t, "must be at most 10", minMaxMessage("max", "10", reflect.Int))
}

// validatableFilter rejects a reserved theme name that tags cannot express.
type validatableFilter struct {
	Theme string `json:"theme" validate:"required"`
}

func (v *validatableFilter) Validate() error {
	if v.Theme == "none" {
		return errors.New("theme none is reserved")
	}

	return nil
}

// TestValidateAll tests combined struct and custom validation.
func TestValidateAll(t *testing.T) {
	var _ Validatable = (*validatableFilter)(nil)

	require.NoError(t, ValidateAll(&validatableFilter{Theme: "love"}))
	require.ErrorIs(t, ValidateAll(&validatableFilter{}), ErrValidation)
	require.ErrorIs(t, ValidateAll(&validatableFilter{Theme: "none"}), ErrValidation)
	require.NoError(t, ValidateAll(&FilterRequest{Theme: "life"}))
}

// TestValidationMessageUnknownTag tests fallback message for unknown tags.
func TestValidationMessageUnknownTag(t *testing.T) {
	type testStruct struct {
		Field string `validate:"customtag"`
	}

	v := Validator()
	_ = v.RegisterValidation("customtag", func(validator.FieldLevel) bool {
		return false
	})

	err := v.Struct(&testStruct{Field: "value"})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	for _, fe := range validationErrs {
		assert.Equal(t, "failed validation: customtag", validationMessage(fe))
	}
}
