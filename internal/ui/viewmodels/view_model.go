package viewmodels

import (
	"jselect/internal/domain"
	"jselect/internal/ui/services/registry"
)

// RowKind distinguishes group headers from options
type RowKind int

const (
	RowOption RowKind = iota
	RowGroup
)

// Row is one rendered line of the dropdown
type Row struct {
	Kind      RowKind
	ID        string
	Value     string
	Label     string
	Grouped   bool // option nested under a group header
	Selected  bool
	Disabled  bool
	Active    bool
	Highlight domain.Span
}

// MessageKind says why a message is shown
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageTooShort
	MessageNoMatch
	MessageError
	MessageRequired
)

// Chip is one selected item shown next to the input
type Chip struct {
	Value     string
	Label     string
	Removable bool
}

// Snapshot is everything a renderer needs, taken after each processed event
type Snapshot struct {
	Revision uint64
	Mode     domain.Mode
	Phase    domain.SearchPhase

	Open     bool
	Loading  bool
	Disabled bool
	NoSearch bool
	Remote   bool

	Query           string
	Placeholder     string
	ShowPlaceholder bool
	Clearable       bool

	Message     string
	MessageKind MessageKind

	Rows      []Row
	ActiveID  string
	ActiveRow int // index into Rows, -1 when nothing is active

	ViewportOffset int
	ViewportHeight int

	Items []Chip
	Form  domain.FormValue
}

// VisibleRows returns the rows inside the viewport
func (s Snapshot) VisibleRows() []Row {
	if s.ViewportHeight <= 0 || len(s.Rows) <= s.ViewportHeight {
		return s.Rows
	}
	start := min(max(s.ViewportOffset, 0), len(s.Rows))
	end := min(start+s.ViewportHeight, len(s.Rows))
	return s.Rows[start:end]
}

// BuildRows lays out the visible options of reg, inserting a header before each group
func BuildRows(reg *registry.Service, activeID string, highlights map[string]domain.Span) ([]Row, int) {
	var rows []Row
	active := -1
	lastGroup := ""
	for _, o := range reg.Visible() {
		if o.Group != lastGroup {
			lastGroup = o.Group
			if g := reg.Group(o.Group); g != nil {
				rows = append(rows, Row{Kind: RowGroup, ID: g.ID, Label: g.Label})
			}
		}
		r := Row{
			Kind:      RowOption,
			ID:        o.ID,
			Value:     o.Value,
			Label:     o.DisplayLabel(),
			Grouped:   o.Group != "",
			Selected:  o.Selected,
			Disabled:  o.Disabled,
			Active:    o.ID == activeID && activeID != "",
			Highlight: highlights[o.ID],
		}
		if r.Active {
			active = len(rows)
		}
		rows = append(rows, r)
	}
	return rows, active
}

// BuildChips turns the selection into chips
func BuildChips(selected []*domain.Option, removable bool) []Chip {
	chips := make([]Chip, 0, len(selected))
	for _, o := range selected {
		chips = append(chips, Chip{Value: o.Value, Label: o.DisplayLabel(), Removable: removable})
	}
	return chips
}
