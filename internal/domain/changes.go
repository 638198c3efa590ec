package domain

import "errors"

// ErrInvalidChange is returned when an OptionChange cannot be applied
var ErrInvalidChange = errors.New("invalid option change")

// OptionChange is one structural edit of the option registry.
// The concrete variants are Added, Removed, GroupAdded and LabelChanged.
type OptionChange interface {
	isOptionChange()
}

// Added inserts an option. Index < 0 appends.
type Added struct {
	Option *Option
	Index  int
}

// Removed drops the option with the given id
type Removed struct {
	OptionID string
}

// GroupAdded registers a new group
type GroupAdded struct {
	Group *Group
}

// LabelChanged replaces the label of an option
type LabelChanged struct {
	OptionID string
	Label    string
}

func (Added) isOptionChange()        {}
func (Removed) isOptionChange()      {}
func (GroupAdded) isOptionChange()   {}
func (LabelChanged) isOptionChange() {}
