package report

import (
	"fmt"
	"io"

	"github.com/starford/keyscan/internal/models"
)

// Text writes one human-readable line per event.
type Text struct {
	w io.Writer
}

// NewText creates a Text reporter.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) Match(m models.Match) error {
	_, err := fmt.Fprintf(t.w, "Keyword '%s' found in %s on line %d: %s\n", m.Keyword, m.Path, m.Line, m.Text)
	return err
}

func (t *Text) FileError(e models.FileError) error {
	_, err := fmt.Fprintf(t.w, "Could not read %s: %s\n", e.Path, e.Message())
	return err
}

func (t *Text) Close() error { return nil }
