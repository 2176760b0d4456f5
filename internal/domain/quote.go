package domain

import (
	"slices"
	"strings"
)

// FilterAll is the theme filter value that matches every quote.
const FilterAll = "all"

// Language selects which text of a bilingual quote is shown.
type Language string

const (
	// LanguagePrimary is German, the default display language.
	LanguagePrimary Language = "de"

	// LanguageSecondary is English.
	LanguageSecondary Language = "en"
)

// ParseLanguage accepts "de" or "en" in any case.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguagePrimary:
		return LanguagePrimary, nil
	case LanguageSecondary:
		return LanguageSecondary, nil
	default:
		return "", NewValidationErrorWithValue("language", "must be one of: de en", s)
	}
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == LanguageSecondary {
		return LanguagePrimary
	}

	return LanguageSecondary
}

// Quote is a bilingual quotation. Quotes are immutable once loaded.
type Quote struct {
	// ID is unique and stable across sessions.
	ID int

	// TextPrimary is the German text.
	TextPrimary string

	// TextSecondary is the English text.
	TextSecondary string

	Author string

	// Themes are free-text tags used by the gallery filter.
	Themes []string
}

// Text returns the quote text in the given language.
func (q *Quote) Text(lang Language) string {
	if lang == LanguageSecondary {
		return q.TextSecondary
	}

	return q.TextPrimary
}

// HasTheme reports whether the quote passes the given filter.
// FilterAll matches every quote; unknown tags match nothing.
func (q *Quote) HasTheme(tag string) bool {
	if tag == FilterAll {
		return true
	}

	return slices.Contains(q.Themes, tag)
}

// ShareText formats the quote as `"<text>" — <author>`.
func (q *Quote) ShareText(lang Language) string {
	return `"` + q.Text(lang) + `" — ` + q.Author
}
