package selection

import (
	"errors"

	"jselect/internal/domain"
)

// State holds selection state
type State struct {
	Mode     domain.Mode
	Selected []*domain.Option // insertion order, values unique
	Pending  []string         // values set before a matching option existed

	// KeepSingleSelectOption leaves the selected option visible in single mode
	KeepSingleSelectOption bool
}

// ErrUnsupportedValue is returned by SetValue for values that are not strings or string slices
var ErrUnsupportedValue = errors.New("unsupported value")
