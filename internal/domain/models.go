package domain

import (
	"fmt"
	"strings"
)

// Mode selects how many values the widget holds
type Mode int

const (
	// ModeSingle holds at most one value
	ModeSingle Mode = iota
	// ModeMulti holds an ordered set of unique values
	ModeMulti
)

func (m Mode) String() string {
	if m == ModeMulti {
		return "multi"
	}
	return "single"
}

// ParseMode converts a config string into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return ModeSingle, nil
	case "multi", "multiple":
		return ModeMulti, nil
	default:
		return ModeSingle, fmt.Errorf("unknown mode %q", s)
	}
}

// Option represents one selectable candidate
type Option struct {
	ID       string
	Value    string
	Label    string
	Group    string // id of the group it belongs to ("" if ungrouped)
	Disabled bool
	Hidden   bool
	Selected bool
	Metadata map[string]string // extra fields of remote records
}

// DisplayLabel returns the label, falling back to the value
func (o *Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// Navigable reports whether the cursor may rest on the option
func (o *Option) Navigable() bool {
	return !o.Hidden && !o.Disabled
}

// Group represents a labelled section of options
type Group struct {
	ID     string
	Label  string
	Hidden bool // derived: every child hidden
}

// Item is a value with its display label, used for serialised selections
type Item struct {
	Value string
	Label string
}

// Span is a highlighted rune range [Start, End) of a label
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers nothing
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// SearchPhase is the state of the remote search controller
type SearchPhase int

const (
	PhaseIdle SearchPhase = iota
	PhaseDebouncing
	PhaseInFlight
	PhaseError
)

func (p SearchPhase) String() string {
	switch p {
	case PhaseDebouncing:
		return "debouncing"
	case PhaseInFlight:
		return "in-flight"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// FormValue is everything the form collaborator needs to submit the widget
type FormValue struct {
	Name         string
	Value        any // nil | string (single) or []string (multi)
	Disabled     bool
	Required     bool
	ValueMissing bool
	Message      string // validation message when ValueMissing
}
