package views

import (
	"github.com/mattn/go-runewidth"

	"jselect/internal/ui/viewmodels"
)

// GroupRenderer handles rendering of group headers
type GroupRenderer struct {
	styles *Styles
}

// NewGroupRenderer creates a new group renderer
func NewGroupRenderer(styles *Styles) *GroupRenderer {
	return &GroupRenderer{
		styles: styles,
	}
}

// RenderGroupHeader renders a group header. Headers are never active.
func (g *GroupRenderer) RenderGroupHeader(row viewmodels.Row, width int) string {
	label := row.Label
	if label == "" {
		label = "(unnamed)"
	}
	if width > 0 {
		label = runewidth.Truncate(label, width, ellipsis)
	}
	return g.styles.Group.Render(label)
}
