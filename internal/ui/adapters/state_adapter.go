package adapters

import (
	"jselect/internal/domain"
	"jselect/internal/ui/coordinator"
	"jselect/internal/ui/input/types"
)

// CoordinatorContext adapts a coordinator to the input handler's read-only context
type CoordinatorContext struct {
	coord *coordinator.Coordinator
}

// NewCoordinatorContext creates a new adapter
func NewCoordinatorContext(c *coordinator.Coordinator) *CoordinatorContext {
	return &CoordinatorContext{coord: c}
}

var _ types.Context = (*CoordinatorContext)(nil)

func (a *CoordinatorContext) IsOpen() bool      { return a.coord.IsOpen() }
func (a *CoordinatorContext) Query() string     { return a.coord.Query() }
func (a *CoordinatorContext) Mode() domain.Mode { return a.coord.Selection.Mode() }
func (a *CoordinatorContext) Disabled() bool    { return a.coord.Disabled() }
