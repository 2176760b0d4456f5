package quotesource

import (
	"context"
	"os"

	"github.com/jsamuelsen/wisdom-quotes/internal/domain"
)

// File reads the quote resource from a local path.
type File struct {
	path string
}

// NewFile creates a file-backed quote source.
func NewFile(path string) *File {
	return &File{path: path}
}

// Name returns the file path.
func (f *File) Name() string {
	return f.path
}

// Load reads and decodes the file.
func (f *File) Load(ctx context.Context) ([]domain.Quote, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, domain.NewLoadError(f.path, "opening file", err)
	}
	defer func() { _ = fh.Close() }()

	return Decode(ctx, f.path, fh)
}
