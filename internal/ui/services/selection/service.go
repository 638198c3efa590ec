package selection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-logr/logr"

	"jselect/internal/domain"
	"jselect/internal/ui/services/registry"
)

// Service handles selection logic
type Service struct {
	state    *State
	registry *registry.Service
	log      logr.Logger
}

// NewService creates a new selection service
func NewService(reg *registry.Service, mode domain.Mode, keepSingle bool, log logr.Logger) *Service {
	return &Service{
		state: &State{
			Mode:                   mode,
			KeepSingleSelectOption: keepSingle,
		},
		registry: reg,
		log:      log.WithName("selection"),
	}
}

// Mode returns the current selection mode
func (s *Service) Mode() domain.Mode {
	return s.state.Mode
}

// Selected returns the selected options in order
func (s *Service) Selected() []*domain.Option {
	out := make([]*domain.Option, len(s.state.Selected))
	copy(out, s.state.Selected)
	return out
}

// First returns the first selected option
func (s *Service) First() *domain.Option {
	if len(s.state.Selected) == 0 {
		return nil
	}
	return s.state.Selected[0]
}

// Count returns the number of selected options
func (s *Service) Count() int {
	return len(s.state.Selected)
}

// IsSelected reports whether value is part of the selection
func (s *Service) IsSelected(value string) bool {
	return s.indexOfValue(value) >= 0
}

// Pending returns values waiting for a matching option
func (s *Service) Pending() []string {
	return slices.Clone(s.state.Pending)
}

func (s *Service) indexOfValue(value string) int {
	for i, o := range s.state.Selected {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Value returns nil or a string in single mode, and a non-nil []string in multi mode
func (s *Service) Value() any {
	if s.state.Mode == domain.ModeMulti {
		out := make([]string, 0, len(s.state.Selected))
		for _, o := range s.state.Selected {
			out = append(out, o.Value)
		}
		return out
	}
	if len(s.state.Selected) == 0 {
		return nil
	}
	return s.state.Selected[0].Value
}

// Items returns the selection as value/label pairs
func (s *Service) Items() []domain.Item {
	out := make([]domain.Item, 0, len(s.state.Selected))
	for _, o := range s.state.Selected {
		out = append(out, domain.Item{Value: o.Value, Label: o.DisplayLabel()})
	}
	return out
}

// Lookup resolves a value to the first registered option, falling back to
// an already selected option that is no longer registered
func (s *Service) Lookup(value string) *domain.Option {
	if o := s.registry.Find(value); o != nil {
		return o
	}
	if i := s.indexOfValue(value); i >= 0 {
		return s.state.Selected[i]
	}
	return nil
}

// Select adds opt to the selection. Returns false when nothing changed.
func (s *Service) Select(opt *domain.Option) bool {
	if opt == nil {
		return false
	}
	if s.state.Mode == domain.ModeSingle {
		if len(s.state.Selected) == 1 && s.state.Selected[0] == opt {
			return false
		}
		for _, o := range s.Selected() {
			s.unselect(o)
		}
	} else if s.indexOfValue(opt.Value) >= 0 {
		return false
	}

	opt.Selected = true
	if s.state.Mode == domain.ModeMulti || !s.state.KeepSingleSelectOption {
		s.registry.SetHidden(opt, true)
	}
	s.state.Selected = append(s.state.Selected, opt)
	s.dropPending(opt.Value)
	s.log.V(1).Info("selected", "value", opt.Value, "count", len(s.state.Selected))
	return true
}

// Unselect removes opt (or the selected option with the same value)
func (s *Service) Unselect(opt *domain.Option) bool {
	if opt == nil {
		return false
	}
	target := opt
	if !slices.Contains(s.state.Selected, opt) {
		i := s.indexOfValue(opt.Value)
		if i < 0 {
			return false
		}
		target = s.state.Selected[i]
	}
	s.unselect(target)
	s.log.V(1).Info("unselected", "value", target.Value, "count", len(s.state.Selected))
	return true
}

// UnselectValue removes the selected option carrying value
func (s *Service) UnselectValue(value string) bool {
	i := s.indexOfValue(value)
	if i < 0 {
		return false
	}
	s.unselect(s.state.Selected[i])
	return true
}

func (s *Service) unselect(opt *domain.Option) {
	s.state.Selected = slices.DeleteFunc(s.state.Selected, func(o *domain.Option) bool { return o == opt })
	opt.Selected = false
	s.registry.SetHidden(opt, false)
}

// Clear unselects everything and forgets pending values
func (s *Service) Clear() bool {
	changed := len(s.state.Selected) > 0
	for _, o := range s.Selected() {
		s.unselect(o)
	}
	s.state.Pending = nil
	return changed
}

// SetValue replaces the selection with the given raw value.
// Values without a matching option are kept as pending.
func (s *Service) SetValue(raw any) (bool, error) {
	vals, err := normalize(raw)
	if err != nil {
		return false, err
	}
	before := s.Value()

	if s.state.Mode == domain.ModeSingle {
		s.setSingle(vals)
	} else {
		s.setMulti(vals)
	}
	return !Equal(before, s.Value()), nil
}

func (s *Service) setSingle(vals []string) {
	if len(vals) == 0 || vals[0] == "" {
		s.Clear()
		return
	}
	if o := s.Lookup(vals[0]); o != nil {
		s.state.Pending = nil
		s.Select(o)
		return
	}
	s.state.Pending = []string{vals[0]}
}

func (s *Service) setMulti(vals []string) {
	want := dedupe(vals)
	for _, o := range s.Selected() {
		if i := slices.Index(want, o.Value); i >= 0 {
			want = slices.Delete(want, i, i+1)
			continue
		}
		s.unselect(o)
	}

	s.state.Pending = nil
	for _, v := range want {
		if o := s.Lookup(v); o != nil {
			s.Select(o)
		} else {
			s.state.Pending = append(s.state.Pending, v)
		}
	}
}

func (s *Service) dropPending(value string) {
	s.state.Pending = slices.DeleteFunc(s.state.Pending, func(v string) bool { return v == value })
}

// Resolve selects opt when it was flagged selected or its value is pending
func (s *Service) Resolve(opt *domain.Option) bool {
	if opt == nil || (opt.Disabled && !opt.Selected) {
		return false
	}
	if opt.Selected && s.indexOfValue(opt.Value) < 0 {
		opt.Selected = false
		return s.Select(opt)
	}
	if slices.Contains(s.state.Pending, opt.Value) {
		return s.Select(opt)
	}
	return false
}

// SetMode switches between single and multi mode, keeping the first selected value
func (s *Service) SetMode(mode domain.Mode) bool {
	if mode == s.state.Mode {
		return false
	}
	s.state.Mode = mode
	changed := false
	if mode == domain.ModeSingle {
		for _, o := range s.Selected()[min(1, len(s.state.Selected)):] {
			s.unselect(o)
			changed = true
		}
	}
	for _, o := range s.state.Selected {
		s.registry.SetHidden(o, mode == domain.ModeMulti || !s.state.KeepSingleSelectOption)
	}
	return changed
}

func dedupe(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func normalize(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, err := scalar(e)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := scalar(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

func scalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(x), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// Equal compares two values as returned by Value
func Equal(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case []string:
		y, ok := b.([]string)
		return ok && slices.Equal(x, y)
	default:
		return false
	}
}

// String renders a value for logs
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case []string:
		return "[" + strings.Join(x, ",") + "]"
	default:
		return fmt.Sprint(x)
	}
}
