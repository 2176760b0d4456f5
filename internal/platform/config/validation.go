package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateQuotes, QuotesConfig{})

	return v
}

// Validate validates the configuration and returns an error if invalid.
// The service does not start with invalid config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	return nil
}

// IsRemoteSource reports whether the quote source is fetched over HTTP.
func (q QuotesConfig) IsRemoteSource() bool {
	return strings.HasPrefix(q.Source, "http://") || strings.HasPrefix(q.Source, "https://")
}

// IsEmbeddedSource reports whether the compiled-in data set is used.
func (q QuotesConfig) IsEmbeddedSource() bool {
	return q.Source == DefaultQuotesSource
}

// validateQuotes rejects remote sources that do not parse as absolute URLs.
func validateQuotes(sl validator.StructLevel) {
	q, ok := sl.Current().Interface().(QuotesConfig)
	if !ok || !q.IsRemoteSource() {
		return
	}

	u, err := url.Parse(q.Source)
	if err != nil || u.Host == "" {
		sl.ReportError(q.Source, "Source", "Source", "quotesource", "")
	}
}

// formatValidationErrors converts validator errors to a readable format.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, formatFieldError(e))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := formatFieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "quotesource":
		return fmt.Sprintf("%s must be %q, a file path, or an absolute http(s) URL", field, DefaultQuotesSource)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// formatFieldPath converts "Config.Server.Port" to "server.port".
func formatFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	return strings.Join(parts, ".")
}
