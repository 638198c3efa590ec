package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventValueChanged    EventType = "ValueChanged"
	EventChange          EventType = "Change"
	EventRender          EventType = "Render"
	EventOpenChanged     EventType = "OpenChanged"
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventOptionsReplaced EventType = "OptionsReplaced"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ValueChangedEvent is emitted whenever the net value changes
type ValueChangedEvent struct {
	Form          FormValue
	Items         []Item
	UserInitiated bool
}

func (e ValueChangedEvent) Type() EventType { return EventValueChanged }

// ChangeEvent is emitted only for value changes caused by the user
type ChangeEvent struct {
	Value any
}

func (e ChangeEvent) Type() EventType { return EventChange }

// RenderEvent tells the render sink that a new snapshot is available
type RenderEvent struct {
	Revision uint64
}

func (e RenderEvent) Type() EventType { return EventRender }

// OpenChangedEvent is emitted when the dropdown opens or closes
type OpenChangedEvent struct {
	Open bool
}

func (e OpenChangedEvent) Type() EventType { return EventOpenChanged }

// SearchStartedEvent is emitted when a remote request is issued
type SearchStartedEvent struct {
	Generation uint64
	Term       string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a remote result was applied
type SearchCompletedEvent struct {
	Generation uint64
	Count      int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a remote request failed
type SearchFailedEvent struct {
	Generation uint64
	Err        error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// OptionsReplacedEvent is emitted when the whole option set was swapped
type OptionsReplacedEvent struct {
	Count int
}

func (e OptionsReplacedEvent) Type() EventType { return EventOptionsReplaced }

// ErrorEvent is emitted when an error occurs outside a caller's return path
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
