package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"jselect/internal/domain"
	"jselect/internal/ui/viewmodels"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		span      domain.Span
		width     int
		wantLabel string
		wantSpan  domain.Span
	}{
		{"fits", "apple", domain.Span{Start: 1, End: 3}, 10, "apple", domain.Span{Start: 1, End: 3}},
		{"no limit", "apple", domain.Span{}, 0, "apple", domain.Span{}},
		{"cut", "pineapple", domain.Span{Start: 4, End: 9}, 6, "pinea…", domain.Span{Start: 4, End: 5}},
		{"span past cut", "pineapple", domain.Span{Start: 7, End: 9}, 4, "pin…", domain.Span{Start: 3, End: 3}},
		{"wide runes", "日本語テキスト", domain.Span{Start: 0, End: 2}, 7, "日本語…", domain.Span{Start: 0, End: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, span := Truncate(tt.label, tt.span, tt.width)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantSpan, span)
		})
	}
}

func TestRenderOptionShowsLabelAndMarker(t *testing.T) {
	r := NewOptionRenderer(NewStyles())
	line := r.RenderOption(viewmodels.Row{Label: "naïve café", Selected: true, Highlight: domain.Span{Start: 6, End: 10}}, 40)
	assert.Contains(t, line, "✓")
	assert.Contains(t, line, "café")
}

func TestRenderShowsRowsAndMessage(t *testing.T) {
	snap := viewmodels.Snapshot{
		Open:           true,
		Mode:           domain.ModeMulti,
		Rows:           []viewmodels.Row{{Kind: viewmodels.RowGroup, Label: "Fruit"}, {Label: "Apple", Grouped: true, Active: true}},
		ViewportHeight: 10,
		Items:          []viewmodels.Chip{{Value: "k", Label: "Kiwi", Removable: true}},
		Message:        "Enter at least 3 characters",
		MessageKind:    viewmodels.MessageTooShort,
	}
	out := NewRenderer().Render(ViewState{Width: 60, Title: "fruit", Snapshot: snap})

	assert.Contains(t, out, "fruit")
	assert.Contains(t, out, "Kiwi ×")
	assert.Contains(t, out, "Fruit")
	assert.Contains(t, out, "Apple")
	assert.Contains(t, out, "Enter at least 3 characters")
}

func TestRenderScrollIndicators(t *testing.T) {
	rows := make([]viewmodels.Row, 6)
	for i := range rows {
		rows[i] = viewmodels.Row{Label: strings.Repeat("x", i+1)}
	}
	snap := viewmodels.Snapshot{Open: true, Rows: rows, ViewportOffset: 2, ViewportHeight: 2, NoSearch: true}
	out := NewRenderer().Render(ViewState{Width: 40, Snapshot: snap})

	assert.Contains(t, out, "↑ 2 more above ↑")
	assert.Contains(t, out, "↓ 2 more below ↓")
}

func TestRenderClosedHidesRows(t *testing.T) {
	snap := viewmodels.Snapshot{Rows: []viewmodels.Row{{Label: "Apple"}}, Placeholder: "Pick a fruit", ShowPlaceholder: true}
	out := NewRenderer().Render(ViewState{Width: 40, Snapshot: snap})
	assert.NotContains(t, out, "Apple")
	assert.Contains(t, out, "Pick a fruit")
}
