package coordinator

import (
	"fmt"

	"jselect/internal/domain"
	"jselect/internal/ui/services/remote"
)

// LoadOptions replaces every option and group, then applies the initial
// selection rules: flagged options are selected, pending values resolve, and
// a single widget without placeholder falls back to its first option.
func (c *Coordinator) LoadOptions(groups []*domain.Group, options []*domain.Option) error {
	c.Registry.Clear()
	for _, g := range groups {
		if err := c.Registry.AddGroup(g); err != nil {
			return fmt.Errorf("load options: %w", err)
		}
	}
	for _, o := range options {
		if err := c.Registry.Add(o, -1); err != nil {
			return fmt.Errorf("load options: %w", err)
		}
	}
	c.initialSelection()
	c.afterOptionsChanged()
	c.bus.Publish(domain.OptionsReplacedEvent{Count: len(options)})
	c.settle(false)
	return nil
}

// SetOptionsFromRaw replaces the options with a raw response body in any of the
// shapes the remote search accepts. Already selected values are kept.
func (c *Coordinator) SetOptionsFromRaw(raw []byte) error {
	opts, err := remote.ConvertResponse(raw, c.selectedByValue)
	if err != nil {
		return fmt.Errorf("set options: %w", err)
	}
	ungroup(opts)
	if err := c.Registry.Reset(nil, opts); err != nil {
		return fmt.Errorf("set options: %w", err)
	}
	c.initialSelection()
	c.afterOptionsChanged()
	c.bus.Publish(domain.OptionsReplacedEvent{Count: len(opts)})
	c.settle(false)
	return nil
}

// ungroup detaches reused selected options from their groups; converted
// lists are flat and the groups they came from are no longer registered
func ungroup(opts []*domain.Option) {
	for _, o := range opts {
		o.Group = ""
	}
}

func (c *Coordinator) initialSelection() {
	opts := c.Registry.All()
	if c.Selection.Mode() == domain.ModeMulti {
		for _, o := range opts {
			c.Selection.Resolve(o)
		}
		return
	}

	var flagged *domain.Option
	for _, o := range opts {
		if o.Selected && !c.Selection.IsSelected(o.Value) {
			if flagged == nil {
				flagged = o
			} else {
				o.Selected = false
			}
		}
	}
	if flagged != nil {
		c.Selection.Resolve(flagged)
		return
	}
	for _, o := range opts {
		if c.Selection.Resolve(o) {
			return
		}
	}
	if c.needsSelection() {
		for _, o := range opts {
			if !o.Disabled {
				c.Selection.Select(o)
				return
			}
		}
	}
}

// needsSelection is true for a single widget without placeholder and without value
func (c *Coordinator) needsSelection() bool {
	return c.Selection.Mode() == domain.ModeSingle && c.cfg.Placeholder == "" && c.Selection.Count() == 0
}

func (c *Coordinator) afterOptionsChanged() {
	if !c.cfg.Remote() {
		c.rematch()
	}
	if c.open && c.Cursor.Active() == nil {
		c.Cursor.First()
	}
}

// Apply executes a structural change of the option list
func (c *Coordinator) Apply(change domain.OptionChange) error {
	var removed *domain.Option
	if r, ok := change.(domain.Removed); ok {
		removed = c.Registry.Get(r.OptionID)
	}
	if err := c.Registry.Apply(change); err != nil {
		return err
	}

	switch ch := change.(type) {
	case domain.Added:
		if !c.Selection.Resolve(ch.Option) && c.needsSelection() && !ch.Option.Disabled {
			c.Selection.Select(ch.Option)
		}
	case domain.Removed:
		c.Selection.Unselect(removed)
	}
	if !c.cfg.Remote() && c.query != "" {
		c.rematch()
	}
	c.settle(false)
	return nil
}

// SetValue sets the value programmatically; see selection.Service.SetValue
func (c *Coordinator) SetValue(raw any) error {
	if _, err := c.Selection.SetValue(raw); err != nil {
		return err
	}
	if !c.cfg.Remote() && c.query != "" {
		c.rematch()
	}
	c.settle(false)
	return nil
}

// SetValueFromSerialized sets the selection from a JSON document. Malformed
// input is ignored.
func (c *Coordinator) SetValueFromSerialized(raw string) {
	items, err := remote.ParseItems(raw)
	if err != nil {
		c.log.V(1).Info("ignoring malformed serialized value", "error", err.Error())
		return
	}
	c.SetSelectedItem(items)
}

// SetSelectedItem selects the given items in order, creating options for
// values that are not known yet
func (c *Coordinator) SetSelectedItem(items []domain.Item) {
	defer c.settle(false)
	if len(items) == 0 {
		c.Selection.Clear()
		return
	}
	if c.Selection.Mode() == domain.ModeSingle {
		items = items[:1]
	} else {
		keep := make(map[string]bool, len(items))
		for _, it := range items {
			keep[it.Value] = true
		}
		for _, o := range c.Selection.Selected() {
			if !keep[o.Value] {
				c.Selection.Unselect(o)
			}
		}
	}

	for _, it := range items {
		if c.Selection.IsSelected(it.Value) {
			continue
		}
		opt := c.Selection.Lookup(it.Value)
		if opt == nil {
			opt = &domain.Option{ID: c.Registry.NewID(), Value: it.Value, Label: it.Label}
		}
		c.Selection.Select(opt)
	}
}

// Clear unselects everything; in remote mode the fetched options are dropped
func (c *Coordinator) Clear() {
	c.clear()
	c.settle(false)
}

func (c *Coordinator) clear() {
	c.Selection.Clear()
	if c.cfg.Remote() {
		c.Remote.Reset()
		c.loading = false
		c.Registry.Clear()
	}
}

// Reset is the form reset: the value is cleared
func (c *Coordinator) Reset() {
	c.clear()
	c.query = ""
	c.clearMessage()
	if !c.cfg.Remote() {
		c.rematch()
	}
	c.settle(false)
}

// SetDisabled enables or disables the widget. A disabled widget submits no value
// and ignores user input.
func (c *Coordinator) SetDisabled(disabled bool) {
	if c.disabled == disabled {
		return
	}
	c.disabled = disabled
	if disabled && c.open {
		c.close()
	}
	c.settle(false)
}

// Disabled reports whether the widget is disabled
func (c *Coordinator) Disabled() bool {
	return c.disabled
}

// SetMode switches between single and multi selection
func (c *Coordinator) SetMode(mode domain.Mode) {
	if c.Selection.Mode() == mode {
		return
	}
	c.Selection.SetMode(mode)
	c.cfg.Mode = mode.String()
	if !c.cfg.Remote() {
		c.rematch()
	}
	c.settle(false)
}
