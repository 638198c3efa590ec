package selection

import (
	"math/rand"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jselect/internal/domain"
	"jselect/internal/ui/services/registry"
)

func setup(t *testing.T, mode domain.Mode, vals ...string) (*Service, *registry.Service) {
	t.Helper()
	reg := registry.NewService("t", logr.Discard())
	for _, v := range vals {
		require.NoError(t, reg.Add(&domain.Option{Value: v, Label: v}, -1))
	}
	return NewService(reg, mode, true, logr.Discard()), reg
}

func TestSingleSelectReplaces(t *testing.T) {
	s, reg := setup(t, domain.ModeSingle, "A", "B")
	a, b := reg.Find("A"), reg.Find("B")

	assert.True(t, s.Select(b))
	assert.True(t, s.Select(a))

	assert.Equal(t, "A", s.Value())
	assert.True(t, a.Selected)
	assert.False(t, b.Selected)
	assert.False(t, a.Hidden, "single mode keeps the selected option visible")
	assert.Equal(t, 1, s.Count())
}

func TestSingleSelectSameIsNoop(t *testing.T) {
	s, reg := setup(t, domain.ModeSingle, "A")
	a := reg.Find("A")

	require.True(t, s.Select(a))
	assert.False(t, s.Select(a))
}

func TestSingleWithoutKeepHidesSelected(t *testing.T) {
	reg := registry.NewService("t", logr.Discard())
	require.NoError(t, reg.Add(&domain.Option{Value: "A"}, -1))
	s := NewService(reg, domain.ModeSingle, false, logr.Discard())

	s.Select(reg.Find("A"))
	assert.True(t, reg.Find("A").Hidden)
}

func TestSingleWithoutKeepReselectRestoresGroups(t *testing.T) {
	reg := registry.NewService("t", logr.Discard())
	g1, g2 := &domain.Group{ID: "g1"}, &domain.Group{ID: "g2"}
	require.NoError(t, reg.AddGroup(g1))
	require.NoError(t, reg.AddGroup(g2))
	a := &domain.Option{Value: "A", Group: "g1"}
	b := &domain.Option{Value: "B", Group: "g2"}
	require.NoError(t, reg.Add(a, -1))
	require.NoError(t, reg.Add(b, -1))
	s := NewService(reg, domain.ModeSingle, false, logr.Discard())

	s.Select(a)
	assert.True(t, a.Hidden)
	assert.True(t, g1.Hidden)

	s.Select(b)
	assert.False(t, a.Hidden)
	assert.False(t, g1.Hidden, "unselected option brings its group back")
	assert.True(t, g2.Hidden)

	s.Select(a)
	assert.Equal(t, "A", s.Value())
	assert.False(t, b.Hidden)
	assert.False(t, g2.Hidden)
	assert.True(t, g1.Hidden)
}

func TestSingleModeSequencesKeepOneValue(t *testing.T) {
	for _, keep := range []bool{true, false} {
		reg := registry.NewService("t", logr.Discard())
		for _, v := range []string{"A", "B", "C", "A"} {
			require.NoError(t, reg.Add(&domain.Option{Value: v}, -1))
		}
		s := NewService(reg, domain.ModeSingle, keep, logr.Discard())
		rnd := rand.New(rand.NewSource(7))
		all := reg.All()

		for step := 0; step < 500; step++ {
			opt := all[rnd.Intn(len(all))]
			switch rnd.Intn(4) {
			case 0, 1:
				s.Select(opt)
			case 2:
				s.Unselect(opt)
			case 3:
				if rnd.Intn(3) == 0 {
					s.Clear()
				} else {
					_, err := s.SetValue(opt.Value)
					require.NoError(t, err)
				}
			}

			flagged := 0
			for _, o := range all {
				if o.Selected {
					flagged++
				}
				if !keep {
					require.Equal(t, o.Selected, o.Hidden, "step %d: only the selected option is hidden", step)
				}
			}
			require.LessOrEqual(t, s.Count(), 1, "step %d", step)
			require.Equal(t, s.Count(), flagged, "step %d", step)
			if s.Count() == 0 {
				require.Nil(t, s.Value(), "step %d", step)
			} else {
				require.Equal(t, s.First().Value, s.Value(), "step %d", step)
			}
		}
	}
}

func TestMultiSelectHidesAndDedupes(t *testing.T) {
	s, reg := setup(t, domain.ModeMulti, "A", "B", "A")
	first, dup := reg.FindAll("A")[0], reg.FindAll("A")[1]

	assert.True(t, s.Select(first))
	assert.False(t, s.Select(dup), "same value is a no-op")
	assert.True(t, s.Select(reg.Find("B")))

	assert.Equal(t, []string{"A", "B"}, s.Value())
	assert.True(t, first.Hidden)
	assert.False(t, dup.Selected)
}

func TestUnselectRestoresVisibilityAndGroup(t *testing.T) {
	reg := registry.NewService("t", logr.Discard())
	g := &domain.Group{ID: "g"}
	require.NoError(t, reg.AddGroup(g))
	opt := &domain.Option{Value: "A", Group: "g"}
	require.NoError(t, reg.Add(opt, -1))
	s := NewService(reg, domain.ModeMulti, true, logr.Discard())

	s.Select(opt)
	assert.True(t, g.Hidden)

	assert.True(t, s.Unselect(opt))
	assert.False(t, opt.Hidden)
	assert.False(t, g.Hidden)
	assert.False(t, s.Unselect(opt))
}

func TestUnselectByValue(t *testing.T) {
	s, reg := setup(t, domain.ModeMulti, "A", "B")
	s.Select(reg.Find("A"))
	s.Select(reg.Find("B"))

	assert.True(t, s.UnselectValue("A"))
	assert.False(t, s.UnselectValue("A"))
	assert.Equal(t, []string{"B"}, s.Value())
}

func TestValueShapes(t *testing.T) {
	single, _ := setup(t, domain.ModeSingle, "A")
	assert.Nil(t, single.Value())

	multi, _ := setup(t, domain.ModeMulti, "A")
	assert.NotNil(t, multi.Value())
	assert.Equal(t, []string{}, multi.Value())
}

func TestSetValueMultiKeepsRetainedOrder(t *testing.T) {
	s, _ := setup(t, domain.ModeMulti, "A", "B", "C")

	changed, err := s.SetValue([]string{"A", "B"})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.SetValue([]string{"C", "B"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"B", "C"}, s.Value())
}

func TestSetValueNormalisation(t *testing.T) {
	tests := []struct {
		name string
		mode domain.Mode
		raw  any
		want any
	}{
		{"single scalar", domain.ModeSingle, "B", "B"},
		{"single sequence takes first", domain.ModeSingle, []string{"C", "A"}, "C"},
		{"single nil clears", domain.ModeSingle, nil, nil},
		{"single empty clears", domain.ModeSingle, "", nil},
		{"multi wraps scalar", domain.ModeMulti, "A", []string{"A"}},
		{"multi any slice", domain.ModeMulti, []any{"A", "C"}, []string{"A", "C"}},
		{"multi dedupes", domain.ModeMulti, []string{"A", "A"}, []string{"A"}},
		{"multi nil", domain.ModeMulti, nil, []string{}},
		{"number", domain.ModeSingle, 7, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := setup(t, tt.mode, "A", "B", "C")
			_, err := s.SetValue(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Value())
		})
	}
}

func TestSetValueUnsupported(t *testing.T) {
	s, _ := setup(t, domain.ModeMulti, "A")
	_, err := s.SetValue(map[string]string{"a": "b"})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestSetValuePendingResolvesLater(t *testing.T) {
	s, reg := setup(t, domain.ModeMulti, "A")

	changed, err := s.SetValue([]string{"A", "Z"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"A"}, s.Value())
	assert.Equal(t, []string{"Z"}, s.Pending())

	z := &domain.Option{Value: "Z"}
	require.NoError(t, reg.Add(z, -1))
	assert.True(t, s.Resolve(z))
	assert.Equal(t, []string{"A", "Z"}, s.Value())
	assert.Empty(t, s.Pending())
}

func TestSetValueSingleUnknownIsNoop(t *testing.T) {
	s, reg := setup(t, domain.ModeSingle, "A")
	s.Select(reg.Find("A"))

	changed, err := s.SetValue("Z")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "A", s.Value())
	assert.Equal(t, []string{"Z"}, s.Pending())
}

func TestLookupFallsBackToDetachedSelection(t *testing.T) {
	s, reg := setup(t, domain.ModeMulti, "A")
	a := reg.Find("A")
	s.Select(a)
	reg.Clear()

	assert.Same(t, a, s.Lookup("A"))
	assert.Nil(t, s.Lookup("B"))
}

func TestResolvePreselected(t *testing.T) {
	s, reg := setup(t, domain.ModeSingle)
	opt := &domain.Option{Value: "A", Selected: true}
	require.NoError(t, reg.Add(opt, -1))

	assert.True(t, s.Resolve(opt))
	assert.Equal(t, "A", s.Value())
	assert.False(t, s.Resolve(opt))
}

func TestClear(t *testing.T) {
	s, reg := setup(t, domain.ModeMulti, "A", "B")
	s.Select(reg.Find("A"))
	s.Select(reg.Find("B"))

	assert.True(t, s.Clear())
	assert.Equal(t, []string{}, s.Value())
	assert.False(t, reg.Find("A").Hidden)
	assert.False(t, s.Clear())
}

func TestSetModeReducesToFirst(t *testing.T) {
	s, reg := setup(t, domain.ModeMulti, "A", "B")
	s.Select(reg.Find("B"))
	s.Select(reg.Find("A"))

	assert.True(t, s.SetMode(domain.ModeSingle))
	assert.Equal(t, "B", s.Value())
	assert.False(t, reg.Find("B").Hidden)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal("a", "a"))
	assert.False(t, Equal("a", nil))
	assert.True(t, Equal([]string{}, []string{}))
	assert.False(t, Equal([]string{"a"}, []string{"b"}))
	assert.False(t, Equal("a", []string{"a"}))
}
