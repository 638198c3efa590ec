package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jselect/internal/domain"
	"jselect/internal/ui/viewmodels"
)

const ellipsis = "…"

// OptionRenderer handles rendering of option rows
type OptionRenderer struct {
	styles *Styles
}

// NewOptionRenderer creates a new option renderer
func NewOptionRenderer(styles *Styles) *OptionRenderer {
	return &OptionRenderer{styles: styles}
}

// RenderOption renders one option row, truncated to width cells
func (r *OptionRenderer) RenderOption(row viewmodels.Row, width int) string {
	base := lipgloss.NewStyle()
	if row.Active {
		base = base.Inherit(r.styles.SelectionBg)
	}

	var prefix strings.Builder
	if row.Grouped {
		prefix.WriteString("  ")
	}
	switch {
	case row.Active:
		prefix.WriteString("› ")
	default:
		prefix.WriteString("  ")
	}

	marker := "  "
	if row.Selected {
		marker = "✓ "
	}

	avail := width - runewidth.StringWidth(prefix.String()) - runewidth.StringWidth(marker)
	label, span := Truncate(row.Label, row.Highlight, avail)

	var b strings.Builder
	b.WriteString(base.Render(prefix.String()))
	if row.Selected {
		b.WriteString(base.Inherit(r.styles.Selected).Render(marker))
	} else {
		b.WriteString(base.Render(marker))
	}

	text := base
	if row.Disabled {
		text = text.Inherit(r.styles.Disabled)
	}
	b.WriteString(highlightSpan(label, span, text, text.Inherit(r.styles.Highlight)))

	line := b.String()
	if row.Active && width > 0 {
		if pad := width - lipgloss.Width(line); pad > 0 {
			line += base.Render(strings.Repeat(" ", pad))
		}
	}
	return line
}

// Truncate shortens label to width terminal cells and clamps span to the
// remaining runes. A width <= 0 disables truncation.
func Truncate(label string, span domain.Span, width int) (string, domain.Span) {
	truncated := false
	if width > 0 && runewidth.StringWidth(label) > width {
		label = runewidth.Truncate(label, width, ellipsis)
		truncated = true
	}
	n := len([]rune(label))
	if truncated {
		n-- // never highlight the ellipsis
	}
	if span.Start > n {
		span.Start = n
	}
	if span.End > n {
		span.End = n
	}
	return label, span
}

// highlightSpan renders runes [span.Start, span.End) of text with hl
func highlightSpan(text string, span domain.Span, normal, hl lipgloss.Style) string {
	if span.Empty() {
		return normal.Render(text)
	}
	runes := []rune(text)
	var parts []string
	if span.Start > 0 {
		parts = append(parts, normal.Render(string(runes[:span.Start])))
	}
	parts = append(parts, hl.Render(string(runes[span.Start:span.End])))
	if span.End < len(runes) {
		parts = append(parts, normal.Render(string(runes[span.End:])))
	}
	return strings.Join(parts, "")
}
