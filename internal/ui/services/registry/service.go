package registry

import (
	"fmt"
	"strconv"

	"github.com/go-logr/logr"

	"jselect/internal/domain"
)

// Service owns the ordered set of options and groups
type Service struct {
	state  *State
	prefix string
	log    logr.Logger
}

// NewService creates a registry that generates ids as "<prefix>-<n>"
func NewService(prefix string, log logr.Logger) *Service {
	if prefix == "" {
		prefix = "opt"
	}
	return &Service{
		state:  &State{},
		prefix: prefix,
		log:    log.WithName("registry"),
	}
}

// Revision increments on every mutation
func (s *Service) Revision() uint64 {
	return s.state.Revision
}

func (s *Service) touch() {
	s.state.Revision++
}

// NewID returns a fresh id, unique within this registry
func (s *Service) NewID() string {
	s.state.nextID++
	return s.prefix + "-" + strconv.FormatUint(s.state.nextID, 10)
}

// Len returns the number of registered options
func (s *Service) Len() int {
	return len(s.state.Options)
}

// All returns an ordered snapshot of the options
func (s *Service) All() []*domain.Option {
	out := make([]*domain.Option, len(s.state.Options))
	copy(out, s.state.Options)
	return out
}

// Visible returns options that are not hidden and not inside a hidden group
func (s *Service) Visible() []*domain.Option {
	var out []*domain.Option
	for _, o := range s.state.Options {
		if o.Hidden {
			continue
		}
		if g := s.Group(o.Group); g != nil && g.Hidden {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Navigable returns visible options that are not disabled
func (s *Service) Navigable() []*domain.Option {
	var out []*domain.Option
	for _, o := range s.Visible() {
		if !o.Disabled {
			out = append(out, o)
		}
	}
	return out
}

// Get returns the option with the given id
func (s *Service) Get(id string) *domain.Option {
	for _, o := range s.state.Options {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Contains reports whether the exact option is registered
func (s *Service) Contains(opt *domain.Option) bool {
	return s.IndexOf(opt) >= 0
}

// IndexOf returns the position of the option, or -1
func (s *Service) IndexOf(opt *domain.Option) int {
	for i, o := range s.state.Options {
		if o == opt {
			return i
		}
	}
	return -1
}

// FindAll returns the options carrying value in registration order
func (s *Service) FindAll(value string) []*domain.Option {
	var out []*domain.Option
	for _, o := range s.state.Options {
		if o.Value == value {
			out = append(out, o)
		}
	}
	return out
}

// Find returns the first option carrying value
func (s *Service) Find(value string) *domain.Option {
	for _, o := range s.state.Options {
		if o.Value == value {
			return o
		}
	}
	return nil
}

// Add inserts opt at index, or appends when index is out of range
func (s *Service) Add(opt *domain.Option, index int) error {
	if opt == nil {
		return fmt.Errorf("add: nil option")
	}
	if opt.Group != "" && s.Group(opt.Group) == nil {
		return fmt.Errorf("add %q: %w %q", opt.Value, ErrUnknownGroup, opt.Group)
	}
	if opt.ID == "" {
		opt.ID = s.NewID()
	} else if s.Get(opt.ID) != nil {
		return fmt.Errorf("add: %w %q", ErrDuplicateID, opt.ID)
	}

	if index < 0 || index >= len(s.state.Options) {
		s.state.Options = append(s.state.Options, opt)
	} else {
		s.state.Options = append(s.state.Options, nil)
		copy(s.state.Options[index+1:], s.state.Options[index:])
		s.state.Options[index] = opt
	}
	s.recomputeGroup(opt.Group)
	s.touch()
	return nil
}

// Remove drops the exact option. Returns false if it was not registered.
func (s *Service) Remove(opt *domain.Option) bool {
	i := s.IndexOf(opt)
	if i < 0 {
		return false
	}
	s.state.Options = append(s.state.Options[:i], s.state.Options[i+1:]...)
	s.recomputeGroup(opt.Group)
	s.touch()
	return true
}

// AddGroup registers a group, assigning an id when empty
func (s *Service) AddGroup(g *domain.Group) error {
	if g == nil {
		return fmt.Errorf("add group: nil group")
	}
	if g.ID == "" {
		g.ID = s.NewID()
	} else if s.Group(g.ID) != nil {
		return fmt.Errorf("add group: %w %q", ErrDuplicateID, g.ID)
	}
	s.state.Groups = append(s.state.Groups, g)
	s.recomputeGroup(g.ID)
	s.touch()
	return nil
}

// Group returns the group with the given id
func (s *Service) Group(id string) *domain.Group {
	if id == "" {
		return nil
	}
	for _, g := range s.state.Groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// Groups returns the groups in registration order
func (s *Service) Groups() []*domain.Group {
	out := make([]*domain.Group, len(s.state.Groups))
	copy(out, s.state.Groups)
	return out
}

// SetHidden changes the hidden flag and recomputes the option's group
func (s *Service) SetHidden(opt *domain.Option, hidden bool) bool {
	if opt == nil || opt.Hidden == hidden {
		return false
	}
	opt.Hidden = hidden
	if s.Contains(opt) {
		s.recomputeGroup(opt.Group)
		s.touch()
	}
	return true
}

// SetDisabled changes the disabled flag
func (s *Service) SetDisabled(opt *domain.Option, disabled bool) bool {
	if opt == nil || opt.Disabled == disabled {
		return false
	}
	opt.Disabled = disabled
	s.touch()
	return true
}

// SetLabel changes the label of the option with the given id
func (s *Service) SetLabel(id, label string) error {
	opt := s.Get(id)
	if opt == nil {
		return fmt.Errorf("set label: unknown option %q", id)
	}
	if opt.Label != label {
		opt.Label = label
		s.touch()
	}
	return nil
}

// Replace swaps the whole option set; groups are kept and recomputed.
// The list is checked first, so on error the registry is unchanged.
func (s *Service) Replace(options []*domain.Option) error {
	if err := validate(s.state.Groups, options); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	s.commit(s.state.Groups, options)
	return nil
}

// Reset swaps both groups and options, with the same checks as Replace
func (s *Service) Reset(groups []*domain.Group, options []*domain.Option) error {
	if err := validate(groups, options); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.commit(groups, options)
	return nil
}

// validate checks a complete group and option list without touching state
func validate(groups []*domain.Group, options []*domain.Option) error {
	groupIDs := make(map[string]bool, len(groups))
	for _, g := range groups {
		if g == nil {
			return fmt.Errorf("nil group")
		}
		if g.ID == "" {
			continue
		}
		if groupIDs[g.ID] {
			return fmt.Errorf("group %w %q", ErrDuplicateID, g.ID)
		}
		groupIDs[g.ID] = true
	}

	seen := make(map[*domain.Option]bool, len(options))
	ids := make(map[string]bool, len(options))
	for _, o := range options {
		if o == nil {
			return fmt.Errorf("nil option")
		}
		if seen[o] {
			return fmt.Errorf("option %q listed twice: %w %q", o.Value, ErrDuplicateID, o.ID)
		}
		seen[o] = true
		if o.ID != "" {
			if ids[o.ID] {
				return fmt.Errorf("add: %w %q", ErrDuplicateID, o.ID)
			}
			ids[o.ID] = true
		}
		if o.Group != "" && !groupIDs[o.Group] {
			return fmt.Errorf("add %q: %w %q", o.Value, ErrUnknownGroup, o.Group)
		}
	}
	return nil
}

func (s *Service) commit(groups []*domain.Group, options []*domain.Option) {
	for _, g := range groups {
		if g.ID == "" {
			g.ID = s.NewID()
		}
	}
	for _, o := range options {
		if o.ID == "" {
			o.ID = s.NewID()
		}
	}
	s.state.Groups = append([]*domain.Group(nil), groups...)
	s.state.Options = append([]*domain.Option(nil), options...)
	s.RecomputeGroups()
	s.touch()
}

// Clear removes every option and group
func (s *Service) Clear() {
	s.state.Options = nil
	s.state.Groups = nil
	s.touch()
}

// RecomputeGroups refreshes the derived hidden flag of every group
func (s *Service) RecomputeGroups() {
	for _, g := range s.state.Groups {
		s.recomputeGroup(g.ID)
	}
}

// a group is hidden exactly when it has no visible child
func (s *Service) recomputeGroup(id string) {
	g := s.Group(id)
	if g == nil {
		return
	}
	hidden := true
	for _, o := range s.state.Options {
		if o.Group == id && !o.Hidden {
			hidden = false
			break
		}
	}
	g.Hidden = hidden
}

// Apply executes one structural change. State is untouched on error.
func (s *Service) Apply(change domain.OptionChange) error {
	switch c := change.(type) {
	case domain.Added:
		if c.Option == nil {
			return fmt.Errorf("%w: added nil option", domain.ErrInvalidChange)
		}
		if err := s.Add(c.Option, c.Index); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidChange, err)
		}
	case domain.Removed:
		opt := s.Get(c.OptionID)
		if opt == nil {
			return fmt.Errorf("%w: remove unknown option %q", domain.ErrInvalidChange, c.OptionID)
		}
		s.Remove(opt)
	case domain.GroupAdded:
		if err := s.AddGroup(c.Group); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidChange, err)
		}
	case domain.LabelChanged:
		if err := s.SetLabel(c.OptionID, c.Label); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidChange, err)
		}
	default:
		return fmt.Errorf("%w: unsupported change %T", domain.ErrInvalidChange, change)
	}
	s.log.V(1).Info("applied change", "change", fmt.Sprintf("%T", change), "options", len(s.state.Options))
	return nil
}
