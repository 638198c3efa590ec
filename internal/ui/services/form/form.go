package form

import (
	"encoding/json"
	"net/url"

	"jselect/internal/domain"
)

// Build assembles the form value of the widget
func Build(name string, value any, disabled, required bool, message string) domain.FormValue {
	fv := domain.FormValue{
		Name:     name,
		Value:    value,
		Disabled: disabled,
		Required: required,
	}
	if required && !disabled && empty(value) {
		fv.ValueMissing = true
		fv.Message = message
	}
	return fv
}

func empty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

// Valid reports whether the value satisfies its constraints
func Valid(fv domain.FormValue) bool {
	return !fv.ValueMissing
}

// Values encodes fv as submitted form data. Disabled or unnamed widgets submit nothing.
// An empty value submits the name with an empty string.
func Values(fv domain.FormValue) url.Values {
	if fv.Disabled || fv.Name == "" {
		return nil
	}
	vals := url.Values{}
	switch v := fv.Value.(type) {
	case []string:
		if len(v) == 0 {
			vals.Set(fv.Name, "")
		}
		for _, s := range v {
			vals.Add(fv.Name, s)
		}
	case string:
		vals.Set(fv.Name, v)
	default:
		vals.Set(fv.Name, "")
	}
	return vals
}

// JSON encodes the bare value: null, a string or an array of strings
func JSON(fv domain.FormValue) ([]byte, error) {
	if fv.Disabled {
		return []byte("null"), nil
	}
	if v, ok := fv.Value.([]string); ok && v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(fv.Value)
}
