package quotesource

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

//go:embed data/quotes.json
var embeddedQuotes []byte

// EmbeddedName is the source name reported for the built-in data set.
const EmbeddedName = "embedded:quotes.json"

// Embedded serves the data set compiled into the binary.
type Embedded struct{}

// NewEmbedded creates the built-in quote source.
func NewEmbedded() *Embedded {
	return &Embedded{}
}

// Name returns EmbeddedName.
func (*Embedded) Name() string {
	return EmbeddedName
}

// Load decodes the embedded document.
func (*Embedded) Load(ctx context.Context) ([]domain.Quote, error) {
	return Decode(ctx, EmbeddedName, bytes.NewReader(embeddedQuotes))
}
