package app

import (
	"math/rand/v2"
	"strings"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

// Shuffler permutes n elements through swap. *rand.Rand from math/rand/v2
// satisfies it; tests inject a deterministic one.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// QuoteCard is a quote prepared for display in one language.
type QuoteCard struct {
	ID        int
	Text      string
	Author    string
	Themes    []string
	Favorite  bool
	ShareText string
}

// FavoritesPanel lists the favorites in insertion order. Placeholder is set
// when there is nothing to show.
type FavoritesPanel struct {
	Cards       []QuoteCard
	Placeholder string
}

// Empty reports whether the placeholder is shown.
func (p FavoritesPanel) Empty() bool {
	return len(p.Cards) == 0
}

// FilterOption is one entry of the theme selector.
type FilterOption struct {
	Value    string
	Label    string
	Selected bool
}

// OverlayView is the random-quote overlay as rendered.
type OverlayView struct {
	Open bool
	Card QuoteCard
}

// Labels are the localized static texts of the page.
type Labels struct {
	Title          string
	QuoteOfTheDay  string
	Gallery        string
	Favorites      string
	NoQuotes       string
	RandomQuote    string
	Share          string
	AddFavorite    string
	RemoveFavorite string
	Close          string
	FilterBy       string
	// NextLanguage is the label of the language toggle: the language a
	// click switches to.
	NextLanguage string
}

// Page is the full document model.
type Page struct {
	Language  domain.Language
	Labels    Labels
	Daily     *QuoteCard
	Gallery   []QuoteCard
	Favorites FavoritesPanel
	Filters   []FilterOption
	Overlay   OverlayView
	Notices   []Notice
}

// Renderer turns the quote store and a preference state into view models.
// It holds no state of its own besides the shuffle source.
type Renderer struct {
	store    *QuoteStore
	shuffler Shuffler
}

// NewRenderer creates a renderer. A nil shuffler uses the global random
// source.
func NewRenderer(store *QuoteStore, shuffler Shuffler) *Renderer {
	if shuffler == nil {
		shuffler = globalShuffler{}
	}

	return &Renderer{store: store, shuffler: shuffler}
}

// Card builds the display card of q for prefs.
func (r *Renderer) Card(q *domain.Quote, prefs *domain.Preferences) QuoteCard {
	return QuoteCard{
		ID:        q.ID,
		Text:      q.Text(prefs.Language),
		Author:    q.Author,
		Themes:    q.Themes,
		Favorite:  prefs.IsFavorite(q.ID),
		ShareText: q.ShareText(prefs.Language),
	}
}

// DailyPanel returns the quote of the day. It reports false when no pick
// exists or the pick no longer names a loaded quote.
func (r *Renderer) DailyPanel(prefs *domain.Preferences) (QuoteCard, bool) {
	if prefs.QuoteOfTheDay == nil {
		return QuoteCard{}, false
	}

	q, err := r.store.FindByID(prefs.QuoteOfTheDay.ID)
	if err != nil {
		return QuoteCard{}, false
	}

	return r.Card(&q, prefs), true
}

// Gallery returns the quotes passing the active filter, without the quote
// of the day, in a fresh random order.
func (r *Renderer) Gallery(prefs *domain.Preferences) []QuoteCard {
	dailyID, hasDaily := 0, prefs.QuoteOfTheDay != nil
	if hasDaily {
		dailyID = prefs.QuoteOfTheDay.ID
	}

	cards := []QuoteCard{}

	for q := range r.store.FilterByTheme(prefs.ActiveFilter) {
		if hasDaily && q.ID == dailyID {
			continue
		}

		cards = append(cards, r.Card(&q, prefs))
	}

	r.shuffler.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return cards
}

// Favorites returns the favorite quotes in insertion order, skipping ids
// that no longer resolve.
func (r *Renderer) Favorites(prefs *domain.Preferences) FavoritesPanel {
	panel := FavoritesPanel{Cards: []QuoteCard{}}

	for _, id := range prefs.FavoriteIDs {
		q, err := r.store.FindByID(id)
		if err != nil {
			continue
		}

		panel.Cards = append(panel.Cards, r.Card(&q, prefs))
	}

	if panel.Empty() {
		panel.Placeholder = Localize(prefs.Language, TextNoFavorites)
	}

	return panel
}

// Filters returns the theme selector options with the active one marked.
func (r *Renderer) Filters(prefs *domain.Preferences) []FilterOption {
	themes := r.store.Themes()
	options := make([]FilterOption, 0, len(themes)+1)

	options = append(options, FilterOption{
		Value:    domain.FilterAll,
		Label:    Localize(prefs.Language, TextAllThemes),
		Selected: prefs.ActiveFilter == domain.FilterAll,
	})

	for _, t := range themes {
		options = append(options, FilterOption{
			Value:    t,
			Label:    ThemeName(prefs.Language, t),
			Selected: prefs.ActiveFilter == t,
		})
	}

	return options
}

// Page assembles the full document. overlay is the current overlay state
// and notices the unexpired transient messages.
func (r *Renderer) Page(prefs *domain.Preferences, overlay OverlaySnapshot, notices []Notice) Page {
	lang := prefs.Language

	page := Page{
		Language: lang,
		Labels: Labels{
			Title:          Localize(lang, TextTitle),
			QuoteOfTheDay:  Localize(lang, TextQuoteOfTheDay),
			Gallery:        Localize(lang, TextGallery),
			Favorites:      Localize(lang, TextFavorites),
			NoQuotes:       Localize(lang, TextNoQuotes),
			RandomQuote:    Localize(lang, TextRandomQuote),
			Share:          Localize(lang, TextShare),
			AddFavorite:    Localize(lang, TextAddFavorite),
			RemoveFavorite: Localize(lang, TextRemoveFavorite),
			Close:          Localize(lang, TextClose),
			FilterBy:       Localize(lang, TextFilterBy),
			NextLanguage:   strings.ToUpper(string(lang.Toggle())),
		},
		Gallery:   r.Gallery(prefs),
		Favorites: r.Favorites(prefs),
		Filters:   r.Filters(prefs),
		Notices:   notices,
	}

	if card, ok := r.DailyPanel(prefs); ok {
		page.Daily = &card
	}

	if overlay.State == OverlayOpen {
		if q, err := r.store.FindByID(overlay.QuoteID); err == nil {
			page.Overlay = OverlayView{Open: true, Card: r.Card(&q, prefs)}
		}
	}

	return page
}
