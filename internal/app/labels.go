package app

import "github.com/jsamuelsen/wisdom-quotes/internal/domain"

// TextKey identifies a localized UI string.
type TextKey string

// UI text keys.
const (
	TextTitle             TextKey = "title"
	TextQuoteOfTheDay     TextKey = "quote_of_the_day"
	TextGallery           TextKey = "gallery"
	TextFavorites         TextKey = "favorites"
	TextNoFavorites       TextKey = "no_favorites"
	TextNoQuotes          TextKey = "no_quotes"
	TextRandomQuote       TextKey = "random_quote"
	TextShare             TextKey = "share"
	TextAddFavorite       TextKey = "add_favorite"
	TextRemoveFavorite    TextKey = "remove_favorite"
	TextClose             TextKey = "close"
	TextAllThemes         TextKey = "all_themes"
	TextFilterBy          TextKey = "filter_by"
	TextCopiedToClipboard TextKey = "copied_to_clipboard"
	TextShareTitle        TextKey = "share_title"
)

var texts = map[domain.Language]map[TextKey]string{
	domain.LanguagePrimary: {
		TextTitle:             "Einsteins Weisheiten",
		TextQuoteOfTheDay:     "Zitat des Tages",
		TextGallery:           "Alle Zitate",
		TextFavorites:         "Meine Favoriten",
		TextNoFavorites:       "Keine Favoriten gespeichert",
		TextNoQuotes:          "Keine Zitate verfügbar",
		TextRandomQuote:       "Zufälliges Zitat",
		TextShare:             "Teilen",
		TextAddFavorite:       "Zu Favoriten hinzufügen",
		TextRemoveFavorite:    "Aus Favoriten entfernen",
		TextClose:             "Schließen",
		TextAllThemes:         "Alle Themen",
		TextFilterBy:          "Thema",
		TextCopiedToClipboard: "Zitat in Zwischenablage kopiert!",
		TextShareTitle:        "Weisheit von Einstein",
	},
	domain.LanguageSecondary: {
		TextTitle:             "Einstein's Wisdom",
		TextQuoteOfTheDay:     "Quote of the Day",
		TextGallery:           "All Quotes",
		TextFavorites:         "My Favorites",
		TextNoFavorites:       "No favorites saved",
		TextNoQuotes:          "No quotes available",
		TextRandomQuote:       "Random Quote",
		TextShare:             "Share",
		TextAddFavorite:       "Add to favorites",
		TextRemoveFavorite:    "Remove from favorites",
		TextClose:             "Close",
		TextAllThemes:         "All themes",
		TextFilterBy:          "Theme",
		TextCopiedToClipboard: "Quote copied to clipboard!",
		TextShareTitle:        "Wisdom of Einstein",
	},
}

var themeNames = map[domain.Language]map[string]string{
	domain.LanguagePrimary: {
		"wisdom":      "Weisheit",
		"imagination": "Vorstellungskraft",
		"life":        "Leben",
		"science":     "Wissenschaft",
		"learning":    "Lernen",
		"peace":       "Frieden",
		"love":        "Liebe",
	},
	domain.LanguageSecondary: {
		"wisdom":      "Wisdom",
		"imagination": "Imagination",
		"life":        "Life",
		"science":     "Science",
		"learning":    "Learning",
		"peace":       "Peace",
		"love":        "Love",
	},
}

// Localize returns the text for key in lang, falling back to the primary
// language and finally to the key itself.
func Localize(lang domain.Language, key TextKey) string {
	if s, ok := texts[lang][key]; ok {
		return s
	}

	if s, ok := texts[domain.LanguagePrimary][key]; ok {
		return s
	}

	return string(key)
}

// ThemeName returns the display name of a theme tag. Unknown tags are
// shown as-is.
func ThemeName(lang domain.Language, tag string) string {
	if s, ok := themeNames[lang][tag]; ok {
		return s
	}

	return tag
}
