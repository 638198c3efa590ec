package navigation

import (
	"slices"

	"jselect/internal/domain"
	"jselect/internal/ui/services/cursor"
	"jselect/internal/ui/services/registry"
)

// Service handles keyboard navigation over the navigable options
type Service struct {
	state    *State
	registry *registry.Service
	cursor   *cursor.Service
}

// NewService creates a new navigation service
func NewService(reg *registry.Service, cur *cursor.Service) *Service {
	return &Service{
		state: &State{
			ViewportHeight: 10, // Default, will be updated
		},
		registry: reg,
		cursor:   cur,
	}
}

// SetViewportHeight updates the number of option rows that fit on screen
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
}

// GetViewportHeight returns the viewport height in rows
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// GetViewportOffset returns the first visible row
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// Handle resolves an intent. Movement intents update the cursor directly;
// commit and dismiss are returned for the coordinator to execute.
func (s *Service) Handle(intent Intent) Decision {
	switch intent {
	case IntentNext:
		return s.moved(s.step(1))
	case IntentPrev:
		return s.moved(s.step(-1))
	case IntentPageForward:
		return s.moved(s.page(1))
	case IntentPageBackward:
		return s.moved(s.page(-1))
	case IntentFirst:
		return s.moved(s.cursor.First())
	case IntentLast:
		return s.moved(s.cursor.Last())
	case IntentCommit:
		if a := s.cursor.Active(); a != nil {
			return Decision{Kind: DecisionCommit, Target: a}
		}
	case IntentTabCommit:
		if a := s.cursor.Active(); a != nil {
			return Decision{Kind: DecisionTabCommit, Target: a}
		}
	case IntentDismiss:
		s.cursor.Clear()
		return Decision{Kind: DecisionDismiss}
	}
	return Decision{Kind: DecisionNone}
}

func (s *Service) moved(ok bool) Decision {
	if !ok {
		return Decision{Kind: DecisionNone}
	}
	return Decision{Kind: DecisionMoved}
}

// step moves by delta without wrapping; with no active option it lands on the first or last
func (s *Service) step(delta int) bool {
	nav := s.registry.Navigable()
	if len(nav) == 0 {
		return false
	}
	i := slices.Index(nav, s.cursor.Active())
	if i < 0 {
		if delta > 0 {
			return s.cursor.Set(nav[0])
		}
		return s.cursor.Set(nav[len(nav)-1])
	}
	j := i + delta
	if j < 0 || j >= len(nav) {
		return false
	}
	return s.cursor.Set(nav[j])
}

// page advances by one viewport extent of rendered rows, group headers
// included, keeping the previous active row on screen. It lands on the
// farthest navigable option inside the extent, or the nearest one past it.
func (s *Service) page(dir int) bool {
	nav := s.registry.Navigable()
	if len(nav) == 0 {
		return false
	}
	active := s.cursor.Active()
	if !slices.Contains(nav, active) {
		if dir > 0 {
			return s.cursor.Set(nav[0])
		}
		return s.cursor.Set(nav[len(nav)-1])
	}

	visible, rows := s.layout()
	i := slices.Index(visible, active)
	limit := rows[i] + dir*max(1, s.state.ViewportHeight-1)

	var target *domain.Option
	for j := i + dir; j >= 0 && j < len(visible); j += dir {
		o := visible[j]
		if o.Disabled {
			continue
		}
		if (rows[j]-limit)*dir > 0 {
			if target == nil {
				target = o
			}
			break
		}
		target = o
	}
	if target == nil {
		return false
	}
	return s.cursor.Set(target)
}

// layout returns the visible options with the row each one renders on
func (s *Service) layout() ([]*domain.Option, []int) {
	visible := s.registry.Visible()
	rows := make([]int, len(visible))
	row, lastGroup := 0, ""
	for i, o := range visible {
		if o.Group != lastGroup {
			lastGroup = o.Group
			if s.registry.Group(o.Group) != nil {
				row++
			}
		}
		rows[i] = row
		row++
	}
	return visible, rows
}

// Neighbour returns the navigable option after opt, or before it when opt is last
func (s *Service) Neighbour(opt *domain.Option) *domain.Option {
	nav := s.registry.Navigable()
	i := slices.Index(nav, opt)
	if i < 0 {
		return nil
	}
	if i+1 < len(nav) {
		return nav[i+1]
	}
	if i > 0 {
		return nav[i-1]
	}
	return nil
}

// EnsureVisible scrolls so that row is inside the viewport
func (s *Service) EnsureVisible(row, total int) {
	if row < 0 {
		s.clampOffset(total)
		return
	}
	if row < s.state.ViewportOffset {
		s.state.ViewportOffset = row
	} else if row >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = row - s.state.ViewportHeight + 1
	}
	s.clampOffset(total)
}

func (s *Service) clampOffset(total int) {
	maxOffset := max(0, total-s.state.ViewportHeight)
	s.state.ViewportOffset = min(max(s.state.ViewportOffset, 0), maxOffset)
}
