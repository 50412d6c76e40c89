// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/xnat/convertdemo/pkg/types"
)

// Painter decorates s with a named style. The text renderer uses the
// identity painter; the terminal renderer supplies a styled one.
type Painter func(style, s string) string

func plain(_ string, s string) string { return s }

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	paint  Painter
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return NewWithPainter(output, nil)
}

// NewWithPainter creates a text renderer whose labels go through paint.
func NewWithPainter(output io.Writer, paint Painter) (*Renderer, error) {
	if paint == nil {
		paint = plain
	}
	return &Renderer{output: output, paint: paint}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder

	switch v := result.(type) {
	case *types.ConvertResult:
		r.convert(&b, v)
	case *types.PlanResult:
		r.plan(&b, v)
	case *types.GenConfigResult:
		r.genConfig(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) convert(b *strings.Builder, res *types.ConvertResult) {
	fmt.Fprintf(b, "%s %s (%d lines)\n", r.paint("Header", "Source:"), r.paint("FilePath", res.Source), res.SourceLines)

	for _, t := range res.Targets {
		fmt.Fprintf(b, "%s %s\n", r.paint("Bold", string(t.Target)), r.paint("Muted", fmt.Sprintf("(%d lines)", t.Lines)))

		if res.DryRun {
			for _, dest := range t.Destinations {
				fmt.Fprintf(b, "  - %s\n", r.paint("FilePath", dest))
			}
			continue
		}
		for _, w := range t.Writes {
			line := fmt.Sprintf("  %s %s", r.paint("Success", "✓"), r.paint("FilePath", w.Path))
			switch {
			case w.Created:
				line += r.paint("Muted", " (created)")
			case w.BackupPath != "":
				line += r.paint("Muted", " (backup: "+w.BackupPath+")")
			}
			b.WriteString(line + "\n")
		}
	}

	if res.DryRun {
		b.WriteString(r.paint("Warning", "\nDRY RUN MODE - No files were written") + "\n")
	}
}

func (r *Renderer) plan(b *strings.Builder, res *types.PlanResult) {
	fmt.Fprintf(b, "%s\n  %s\n", r.paint("Header", "Source:"), r.paint("FilePath", res.Source))
	r.list(b, "Template destinations:", res.TemplateTargets)
	r.list(b, "Popup destinations:", res.PopupTargets)
}

func (r *Renderer) list(b *strings.Builder, title string, paths []string) {
	b.WriteString(r.paint("Header", title) + "\n")
	if len(paths) == 0 {
		b.WriteString("  " + r.paint("Muted", "(none)") + "\n")
		return
	}
	for _, p := range paths {
		b.WriteString("  " + r.paint("FilePath", p) + "\n")
	}
}

// genConfig prints the document itself unless it was written to disk.
func (r *Renderer) genConfig(b *strings.Builder, res *types.GenConfigResult) {
	if len(res.FilesWritten) == 0 {
		b.WriteString(res.ConfigContent)
		return
	}
	for _, path := range res.FilesWritten {
		fmt.Fprintf(b, "%s %s\n", r.paint("Success", "Written config file:"), r.paint("FilePath", path))
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.paint("Error", fmt.Sprintf("Error: %v", err)))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.paint("Info", msg))
	return err
}
