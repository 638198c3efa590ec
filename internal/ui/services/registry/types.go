package registry

import (
	"errors"

	"jselect/internal/domain"
)

// State holds the ordered option collection
type State struct {
	Options  []*domain.Option
	Groups   []*domain.Group
	Revision uint64
	nextID   uint64
}

var (
	// ErrUnknownGroup is returned when an option names a group that was never added
	ErrUnknownGroup = errors.New("unknown group")
	// ErrDuplicateID is returned when an id is already registered
	ErrDuplicateID = errors.New("duplicate id")
)
