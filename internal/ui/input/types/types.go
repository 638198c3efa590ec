package types

import "jselect/internal/domain"

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to widget state needed for input handling
type Context interface {
	IsOpen() bool
	Query() string
	Mode() domain.Mode
	Disabled() bool
}
