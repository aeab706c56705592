package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"corec/internal/source"
)

// Renderer prints diagnostics as caret-underlined source excerpts. This is
// the driver's job per the core/driver split: the core only produces
// Diagnostic values with spans, never formatted text.
type Renderer struct {
	Files   *source.FileSet
	NoColor bool
}

// Render writes a single diagnostic to w in the form:
//
//	error: message
//	  --> file:line:col
//	   | source line
//	   |      ^^^
func (r *Renderer) Render(w io.Writer, d *Diagnostic) {
	sevColor := severityColor(d.Severity, r.NoColor)
	f, ok := r.Files.File(d.Primary.File)
	if !ok {
		fmt.Fprintf(w, "%s: %s\n", sevColor(d.Severity.String()), d.Message)
		return
	}
	pos := r.Files.Position(d.Primary.File, d.Primary.Start)
	fmt.Fprintf(w, "%s: %s\n", sevColor(d.Severity.String()), d.Message)
	fmt.Fprintf(w, "  --> %s:%d:%d\n", f.Path, pos.Line, pos.Col)
	r.renderSnippet(w, d.Primary)
	for _, n := range d.Notes {
		np := r.Files.Position(n.Span.File, n.Span.Start)
		fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n", n.Msg, f.Path, np.Line, np.Col)
	}
}

// RenderAll renders every diagnostic in the bag, in bag order.
func (r *Renderer) RenderAll(w io.Writer, b *Bag) {
	for _, d := range b.Items() {
		r.Render(w, d)
	}
}

func (r *Renderer) renderSnippet(w io.Writer, span source.Span) {
	pos := r.Files.Position(span.File, span.Start)
	line := r.Files.LineText(span.File, pos.Line)
	if line == "" && span.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "   | %s\n", line)

	// Caret column: visual width of the line up to the error, accounting
	// for wide runes so the caret lands under the right character.
	prefix := line
	if int(pos.Col)-1 <= len(line) {
		prefix = line[:pos.Col-1]
	}
	width := runewidth.StringWidth(prefix)
	caretLen := int(span.Len())
	if caretLen < 1 {
		caretLen = 1
	}
	fmt.Fprintf(w, "   | %s%s\n", strings.Repeat(" ", width), strings.Repeat("^", caretLen))
}

func severityColor(sev Severity, noColor bool) func(a ...any) string {
	if noColor {
		return func(a ...any) string { return fmt.Sprint(a...) }
	}
	switch sev {
	case SevError:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case SevWarning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgCyan).SprintFunc()
	}
}
