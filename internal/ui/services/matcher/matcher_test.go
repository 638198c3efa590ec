package matcher

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jselect/internal/domain"
	"jselect/internal/ui/services/registry"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Café", "cafe"},
		{"ÅNGSTRÖM", "angstrom"},
		{"Crème Brûlée", "creme brulee"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func opts(labels ...string) []*domain.Option {
	out := make([]*domain.Option, 0, len(labels))
	for _, l := range labels {
		out = append(out, &domain.Option{ID: l, Value: l, Label: l})
	}
	return out
}

func TestMatchHighlightsInOriginalRunes(t *testing.T) {
	res := Match("CAFE", opts("naïve café", "tea"))

	require.Len(t, res.Decisions, 2)
	assert.True(t, res.Decisions[0].Visible)
	assert.Equal(t, domain.Span{Start: 6, End: 10}, res.Decisions[0].Highlight)
	assert.False(t, res.Decisions[1].Visible)
	assert.Equal(t, 1, res.Visible)
	assert.False(t, res.NoMatch)
	assert.Equal(t, map[string]domain.Span{"naïve café": {Start: 6, End: 10}}, res.Highlights())
}

func TestMatchDecomposedLabel(t *testing.T) {
	// "e" followed by a combining acute accent
	res := Match("ecole", opts("e\u0301cole"))
	assert.True(t, res.Decisions[0].Visible)
	assert.Equal(t, domain.Span{Start: 0, End: 6}, res.Decisions[0].Highlight)
}

func TestMatchEmptyQueryShowsAll(t *testing.T) {
	options := opts("a", "b")
	options[1].Hidden = true

	res := Match("", options)
	for _, d := range res.Decisions {
		assert.True(t, d.Visible)
		assert.True(t, d.Highlight.Empty())
	}
	assert.False(t, res.NoMatch)
}

func TestMatchNoMatch(t *testing.T) {
	res := Match("zzz", opts("a", "b"))
	assert.True(t, res.NoMatch)
	assert.Zero(t, res.Visible)
}

func TestMatchNeverHidesSelected(t *testing.T) {
	options := opts("apple", "banana", "cherry")
	options[1].Selected = true
	options[2].Selected = true
	options[2].Hidden = true

	res := Match("app", options)
	assert.True(t, res.Decisions[0].Visible)
	assert.True(t, res.Decisions[1].Visible, "selected option stays visible")
	assert.False(t, res.Decisions[2].Visible, "selected option hidden by policy stays hidden")
}

func TestMatchIsDeterministic(t *testing.T) {
	options := opts("Zürich", "Zug", "Basel")
	assert.Equal(t, Match("zu", options), Match("zu", options))
}

func TestApplyWritesRegistry(t *testing.T) {
	reg := registry.NewService("t", logr.Discard())
	require.NoError(t, reg.AddGroup(&domain.Group{ID: "fruit"}))
	require.NoError(t, reg.AddGroup(&domain.Group{ID: "veg"}))
	require.NoError(t, reg.Add(&domain.Option{Value: "apple", Label: "Apple", Group: "fruit"}, -1))
	require.NoError(t, reg.Add(&domain.Option{Value: "leek", Label: "Leek", Group: "veg"}, -1))

	res := Apply(reg, "app")
	assert.Equal(t, 1, res.Visible)
	assert.False(t, reg.Group("fruit").Hidden)
	assert.True(t, reg.Group("veg").Hidden)
	assert.True(t, reg.Find("leek").Hidden)

	res = Apply(reg, "")
	assert.Equal(t, 2, res.Visible)
	assert.False(t, reg.Group("veg").Hidden)
}
