// Package quotesource loads the static quote resource. It is the only
// place that knows the resource's JSON field names; everything past Decode
// deals in domain.Quote.
package quotesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/logging"
)

// document is the resource layout: {"quotes":[...]}.
type document struct {
	Quotes []record `json:"quotes" validate:"required,unique=ID,dive"`
}

// record is one quote as it appears in the resource.
type record struct {
	ID     int      `json:"id"     validate:"gt=0"`
	TextDE string   `json:"textDE" validate:"required"`
	TextEN string   `json:"textEN" validate:"required"`
	Author string   `json:"author" validate:"required"`
	Themes []string `json:"themes" validate:"dive,required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, e.g. quotes[3].author.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Decode reads a quote document from r. source names the resource in the
// returned *domain.LoadError.
func Decode(ctx context.Context, source string, r io.Reader) ([]domain.Quote, error) {
	var doc document

	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, domain.NewLoadError(source, "decoding document", err)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, domain.NewLoadError(source, describe(err), nil)
	}

	logger := logging.FromContext(ctx)
	quotes := make([]domain.Quote, 0, len(doc.Quotes))

	for i := range doc.Quotes {
		q := toDomain(&doc.Quotes[i])
		logger.Log(ctx, logging.LevelTrace, "decoded quote record",
			slog.Int("quote_id", q.ID),
			slog.Int("themes", len(q.Themes)),
		)
		quotes = append(quotes, q)
	}

	return quotes, nil
}

// toDomain translates a resource record into the domain type.
func toDomain(r *record) domain.Quote {
	themes := r.Themes
	if themes == nil {
		themes = []string{}
	}

	return domain.Quote{
		ID:            r.ID,
		TextPrimary:   r.TextDE,
		TextSecondary: r.TextEN,
		Author:        r.Author,
		Themes:        themes,
	}
}

// describe turns the first validation failure into a load reason.
func describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	e := errs[0]
	field := strings.TrimPrefix(e.Namespace(), "document.")

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "unique":
		return field + " contains duplicate ids"
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}
