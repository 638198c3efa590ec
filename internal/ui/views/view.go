package views

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"jselect/internal/domain"
	"jselect/internal/ui/viewmodels"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width    int
	Title    string
	Input    string // rendered text input
	Snapshot viewmodels.Snapshot
	ShowHelp bool
	Help     string // rendered short help
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	optionRend  *OptionRenderer
	groupRender *GroupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		optionRend:  NewOptionRenderer(styles),
		groupRender: NewGroupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	snap := state.Snapshot
	width := state.Width
	if width <= 0 {
		width = 80 // Default terminal width
	}
	inner := width - 2 // Main padding

	var lines []string
	lines = append(lines, r.renderTitle(state, inner))
	lines = append(lines, r.renderSelection(snap))
	if !snap.NoSearch {
		lines = append(lines, r.styles.Input.Width(max(inner-4, 10)).Render(state.Input))
	}
	if snap.Open {
		if list := r.renderOptionList(snap, inner); list != "" {
			lines = append(lines, list)
		}
	}
	if msg := r.renderMessage(snap); msg != "" {
		lines = append(lines, msg)
	}
	if state.ShowHelp && state.Help != "" {
		lines = append(lines, "", r.styles.Help.Render(state.Help))
	}

	out := r.styles.Main.Render(strings.Join(lines, "\n"))
	if snap.Disabled {
		return desaturateANSI(out)
	}
	return out
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	title := state.Title
	if title == "" {
		title = "jselect"
	}
	logo := r.styles.Title.Render(title)
	if !state.Snapshot.Loading {
		return logo
	}

	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := int(time.Now().UnixMilli()/80) % len(spinner)
	right := r.styles.Dim.Render(fmt.Sprintf("%s Searching", spinner[frame]))

	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// renderSelection renders the current value: the chosen label in single mode,
// chips in multi mode, the placeholder when empty
func (r *Renderer) renderSelection(snap viewmodels.Snapshot) string {
	if len(snap.Items) == 0 {
		if snap.ShowPlaceholder {
			return r.styles.Placeholder.Render(snap.Placeholder)
		}
		return r.styles.Dim.Render("(nothing selected)")
	}

	if snap.Mode == domain.ModeSingle {
		line := snap.Items[0].Label
		if snap.Clearable {
			line += " " + r.styles.Clear.Render("×")
		}
		return line
	}

	chips := make([]string, 0, len(snap.Items))
	for _, c := range snap.Items {
		text := c.Label
		if c.Removable {
			text += " " + r.styles.ChipRemove.Render("×")
		}
		chips = append(chips, r.styles.Chip.Render(text))
	}
	return strings.Join(chips, " ")
}

func (r *Renderer) renderOptionList(snap viewmodels.Snapshot, width int) string {
	visible := snap.VisibleRows()
	if len(visible) == 0 {
		return ""
	}

	var lines []string
	if snap.ViewportOffset > 0 && len(snap.Rows) > snap.ViewportHeight {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", snap.ViewportOffset)))
	}
	for _, row := range visible {
		if row.Kind == viewmodels.RowGroup {
			lines = append(lines, r.groupRender.RenderGroupHeader(row, width))
			continue
		}
		lines = append(lines, r.optionRend.RenderOption(row, width))
	}
	if below := len(snap.Rows) - snap.ViewportOffset - len(visible); below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderMessage(snap viewmodels.Snapshot) string {
	if snap.Loading && snap.MessageKind == viewmodels.MessageNone {
		return r.styles.MessageLoading.Render("Searching…")
	}
	switch snap.MessageKind {
	case viewmodels.MessageTooShort:
		return r.styles.MessageWarning.Render(snap.Message)
	case viewmodels.MessageNoMatch:
		return r.styles.Dim.Render(snap.Message)
	case viewmodels.MessageError:
		return r.styles.MessageError.Render("Search failed: " + snap.Message)
	case viewmodels.MessageRequired:
		return r.styles.MessageRequired.Render(snap.Message)
	}
	return ""
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansiRE.ReplaceAllString(s, "")
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
}
