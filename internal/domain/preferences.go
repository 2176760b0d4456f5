package domain

import (
	"slices"
	"time"
)

// DateLayout is the local calendar date format used for the daily pick.
const DateLayout = "2006-01-02"

// DailyPick is the quote of the day together with the date it was drawn for.
type DailyPick struct {
	ID   int
	Date string
}

// Preferences is the user's view state. Only favorites and the daily pick
// are persisted; language and filter live for the session.
type Preferences struct {
	Language      Language
	ActiveFilter  string
	FavoriteIDs   []int
	QuoteOfTheDay *DailyPick
}

// DefaultPreferences returns primary language, filter "all", no favorites
// and no cached daily pick.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Language:     LanguagePrimary,
		ActiveFilter: FilterAll,
		FavoriteIDs:  []int{},
	}
}

// IsFavorite reports whether id is in the favorites list.
func (p *Preferences) IsFavorite(id int) bool {
	return slices.Contains(p.FavoriteIDs, id)
}

// ToggleFavorite removes id if present, otherwise appends it.
// Returns true when id is a favorite afterwards.
func (p *Preferences) ToggleFavorite(id int) bool {
	if i := slices.Index(p.FavoriteIDs, id); i >= 0 {
		p.FavoriteIDs = slices.Delete(p.FavoriteIDs, i, i+1)
		return false
	}

	p.FavoriteIDs = append(p.FavoriteIDs, id)

	return true
}

// DailyID returns the cached quote of the day if it was drawn for today.
func (p *Preferences) DailyID(today time.Time) (int, bool) {
	if p.QuoteOfTheDay == nil || p.QuoteOfTheDay.Date != today.Format(DateLayout) {
		return 0, false
	}

	return p.QuoteOfTheDay.ID, true
}

// Clone returns a deep copy so views can be built outside the session lock.
func (p *Preferences) Clone() *Preferences {
	c := *p
	c.FavoriteIDs = slices.Clone(p.FavoriteIDs)

	if p.QuoteOfTheDay != nil {
		pick := *p.QuoteOfTheDay
		c.QuoteOfTheDay = &pick
	}

	return &c
}
