package main

import (
	"fmt"
	"io"
	"strings"

	"jselect/internal/domain"
	"jselect/internal/ui/services/form"
)

// writeValue prints the submitted value in the requested format
func writeValue(w io.Writer, format string, fv domain.FormValue) error {
	switch format {
	case "form":
		_, err := fmt.Fprintln(w, form.Values(fv).Encode())
		return err
	case "lines":
		var lines []string
		switch v := fv.Value.(type) {
		case string:
			lines = []string{v}
		case []string:
			lines = v
		}
		if fv.Disabled || len(lines) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	default:
		data, err := form.JSON(fv)
		if err != nil {
			return fmt.Errorf("encoding value: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
