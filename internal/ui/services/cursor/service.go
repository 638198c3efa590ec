package cursor

import (
	"jselect/internal/domain"
	"jselect/internal/ui/services/registry"
)

// State holds the active option
type State struct {
	Active *domain.Option
}

// Service keeps track of the single highlighted option.
// The active option is never hidden, never disabled and always registered.
type Service struct {
	state    *State
	registry *registry.Service
}

// NewService creates a new cursor service
func NewService(reg *registry.Service) *Service {
	return &Service{state: &State{}, registry: reg}
}

// Active returns the active option or nil
func (s *Service) Active() *domain.Option {
	return s.state.Active
}

// ActiveID returns the id of the active option or ""
func (s *Service) ActiveID() string {
	if s.state.Active == nil {
		return ""
	}
	return s.state.Active.ID
}

// Set makes opt active. Options that may not be active are rejected.
func (s *Service) Set(opt *domain.Option) bool {
	if !s.allowed(opt) {
		return false
	}
	s.state.Active = opt
	return true
}

// Clear removes the active option
func (s *Service) Clear() {
	s.state.Active = nil
}

// First activates the first navigable option
func (s *Service) First() bool {
	nav := s.registry.Navigable()
	if len(nav) == 0 {
		s.Clear()
		return false
	}
	s.state.Active = nav[0]
	return true
}

// Last activates the last navigable option
func (s *Service) Last() bool {
	nav := s.registry.Navigable()
	if len(nav) == 0 {
		s.Clear()
		return false
	}
	s.state.Active = nav[len(nav)-1]
	return true
}

// Revalidate clears the cursor when its target became hidden, disabled or removed.
// Returns true when the cursor was cleared.
func (s *Service) Revalidate() bool {
	if s.state.Active == nil || s.allowed(s.state.Active) {
		return false
	}
	s.state.Active = nil
	return true
}

func (s *Service) allowed(opt *domain.Option) bool {
	if opt == nil || !opt.Navigable() || !s.registry.Contains(opt) {
		return false
	}
	if g := s.registry.Group(opt.Group); g != nil && g.Hidden {
		return false
	}
	return true
}
