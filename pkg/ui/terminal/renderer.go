// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"io"

	"github.com/xnat/convertdemo/pkg/ui/output/styles"
	"github.com/xnat/convertdemo/pkg/ui/text"
)

// Renderer lays results out like the text renderer and colours them with
// the style registry.
type Renderer struct {
	*text.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	inner, err := text.NewWithPainter(w, paint)
	if err != nil {
		return nil, err
	}
	return &Renderer{Renderer: inner}, nil
}

func paint(style, s string) string {
	return styles.GetStyle(style).Render(s)
}
