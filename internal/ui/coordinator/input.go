package coordinator

import (
	"jselect/internal/domain"
	"jselect/internal/ui/services/navigation"
	"jselect/internal/ui/services/remote"
	"jselect/internal/ui/viewmodels"
)

// Open opens the dropdown (focus entered the widget)
func (c *Coordinator) Open() {
	if c.disabled || c.open {
		return
	}
	c.open = true
	c.activateOnOpen()
	c.bus.Publish(domain.OpenChangedEvent{Open: true})
	c.settle(false)
}

func (c *Coordinator) activateOnOpen() {
	if c.Selection.Mode() == domain.ModeSingle && c.cfg.KeepSingleSelectOption {
		if c.Cursor.Set(c.Selection.First()) {
			return
		}
	}
	c.Cursor.First()
}

// Close closes the dropdown (focus left the widget)
func (c *Coordinator) Close() {
	if !c.open {
		return
	}
	c.close()
	c.settle(false)
}

// close aborts any search, clears the query and restores the unfiltered option list
func (c *Coordinator) close() {
	c.open = false
	c.Cursor.Clear()
	c.resetQuery()
	c.bus.Publish(domain.OpenChangedEvent{Open: false})
}

func (c *Coordinator) resetQuery() {
	c.query = ""
	c.clearMessage()
	if c.cfg.Remote() {
		c.Remote.Reset()
		c.loading = false
		c.Registry.Clear()
		c.highlights = nil
		return
	}
	c.rematch()
}

// Input handles a change of the input text. The returned effect, if any, must be
// executed by the host: ScheduleDebounce through a timer, IssueSearch through Search.
func (c *Coordinator) Input(text string) remote.Effect {
	if c.disabled || c.cfg.NoSearch {
		return nil
	}
	if !c.open {
		c.open = true
		c.bus.Publish(domain.OpenChangedEvent{Open: true})
	}
	c.query = text
	defer c.settle(false)

	if !c.cfg.Remote() {
		c.rematch()
		c.Cursor.First()
		return nil
	}

	eff := c.Remote.InputChanged(text)
	switch e := eff.(type) {
	case remote.TooShort:
		c.loading = false
		c.Registry.Clear()
		c.Cursor.Clear()
		c.setMessage(viewmodels.MessageTooShort, c.cfg.Messages.TooShortMessage(e.MinLength))
	case remote.ScheduleDebounce:
		c.loading = true
		c.clearMessage()
	}
	return eff
}

// TriggerSearch runs a remote search for the current query without waiting for the debounce
func (c *Coordinator) TriggerSearch() remote.Effect {
	if c.disabled || !c.cfg.Remote() {
		return nil
	}
	defer c.settle(false)
	eff := c.Remote.Trigger(c.query)
	switch e := eff.(type) {
	case remote.IssueSearch:
		c.startSearch(e)
	case remote.TooShort:
		c.loading = false
		c.setMessage(viewmodels.MessageTooShort, c.cfg.Messages.TooShortMessage(e.MinLength))
	}
	return eff
}

// DebounceElapsed reports that the timer scheduled for gen fired.
// It returns the request to issue, or nil when gen is stale.
func (c *Coordinator) DebounceElapsed(gen uint64) remote.Effect {
	issue, ok := c.Remote.DebounceElapsed(gen)
	if !ok {
		return nil
	}
	c.startSearch(issue)
	c.settle(false)
	return issue
}

func (c *Coordinator) startSearch(issue remote.IssueSearch) {
	c.Registry.Clear()
	c.Cursor.Clear()
	c.highlights = nil
	c.loading = true
	c.clearMessage()
	c.bus.Publish(domain.SearchStartedEvent{Generation: issue.Generation, Term: issue.Term})
}

// Search performs the fetch of issue. It touches no mutable state and is meant
// to run off the event loop; its result goes back through Complete.
func (c *Coordinator) Search(issue remote.IssueSearch) remote.Result {
	if c.fetcher == nil {
		return remote.Failure(issue.Generation, remote.ErrMalformedResponse)
	}
	data, err := c.fetcher.Search(issue.Ctx, c.cfg.URL, issue.Term)
	if err != nil {
		return remote.Failure(issue.Generation, err)
	}
	return remote.Success(issue.Generation, data)
}

// Complete applies a search result. Stale and cancelled results change nothing.
func (c *Coordinator) Complete(res remote.Result) remote.Kind {
	var opts []*domain.Option
	if res.Kind == remote.Succeeded && res.Generation == c.Remote.Generation() {
		var err error
		if opts, err = remote.ConvertResponse(res.Data, c.selectedByValue); err != nil {
			res = remote.Failure(res.Generation, err)
		}
		ungroup(opts)
	}

	res = c.Remote.Complete(res)
	switch res.Kind {
	case remote.Succeeded:
		c.loading = false
		if err := c.Registry.Reset(nil, opts); err != nil {
			c.log.Error(err, "replacing options")
			c.bus.Publish(domain.ErrorEvent{Message: "replacing options", Err: err})
		}
		c.Cursor.First()
		if len(c.Registry.Visible()) == 0 {
			c.setMessage(viewmodels.MessageNoMatch, c.cfg.Messages.NoMatch)
		} else {
			c.clearMessage()
		}
		c.bus.Publish(domain.OptionsReplacedEvent{Count: len(opts)})
		c.bus.Publish(domain.SearchCompletedEvent{Generation: res.Generation, Count: len(opts)})
	case remote.Failed:
		c.loading = false
		c.setMessage(viewmodels.MessageError, res.Err.Error())
		c.bus.Publish(domain.SearchFailedEvent{Generation: res.Generation, Err: res.Err})
	case remote.Cancelled:
		if res.Generation == c.Remote.Generation() {
			c.loading = false
		}
	default:
		return res.Kind
	}
	c.settle(false)
	return res.Kind
}

func (c *Coordinator) selectedByValue(value string) *domain.Option {
	for _, o := range c.Selection.Selected() {
		if o.Value == value {
			return o
		}
	}
	return nil
}

// Navigate handles a keyboard intent
func (c *Coordinator) Navigate(intent navigation.Intent) navigation.Decision {
	if c.disabled {
		return navigation.Decision{}
	}
	if !c.open {
		switch intent {
		case navigation.IntentDismiss, navigation.IntentTabCommit, navigation.IntentCommit:
			return navigation.Decision{}
		}
		c.open = true
		c.activateOnOpen()
		c.bus.Publish(domain.OpenChangedEvent{Open: true})
		c.settle(false)
		return navigation.Decision{Kind: navigation.DecisionMoved}
	}

	d := c.Navigation.Handle(intent)
	switch d.Kind {
	case navigation.DecisionCommit:
		c.userSelect(d.Target)
	case navigation.DecisionTabCommit:
		c.tabSelect(d.Target)
	case navigation.DecisionDismiss:
		c.close()
	}
	c.settle(true)
	return d
}

// Hover makes the option under the pointer active
func (c *Coordinator) Hover(id string) {
	if c.disabled || !c.open {
		return
	}
	if c.Cursor.Set(c.Registry.Get(id)) {
		c.settle(false)
	}
}

// Click commits the option under the pointer
func (c *Coordinator) Click(id string) {
	if c.disabled {
		return
	}
	opt := c.Registry.Get(id)
	if opt == nil || opt.Disabled {
		return
	}
	c.userSelect(opt)
	c.settle(true)
}

// userSelect commits opt and applies the after-select policy
func (c *Coordinator) userSelect(opt *domain.Option) {
	if opt == nil || opt.Disabled {
		return
	}
	if opt.Selected {
		c.afterUserSelect()
		return
	}
	next := c.Navigation.Neighbour(opt)
	c.Selection.Select(opt)
	c.afterUserSelect()
	if c.open {
		c.Cursor.Set(next)
	}
}

func (c *Coordinator) afterUserSelect() {
	if c.Selection.Mode() == domain.ModeSingle {
		if c.open {
			c.close()
		}
		return
	}
	if c.cfg.BlurMultiAfterSelect {
		c.Cursor.Clear()
		c.resetQuery()
	}
}

// tabSelect commits opt without closing the dropdown
func (c *Coordinator) tabSelect(opt *domain.Option) {
	if opt == nil || opt.Selected || opt.Disabled {
		return
	}
	c.Selection.Select(opt)
	if c.Selection.Mode() == domain.ModeMulti && c.cfg.BlurMultiAfterSelect {
		c.Cursor.Clear()
		c.resetQuery()
	}
}

// RemoveItem removes a selected value through its chip
func (c *Coordinator) RemoveItem(value string) bool {
	if c.disabled || !c.canClear() {
		return false
	}
	if !c.Selection.UnselectValue(value) {
		return false
	}
	if !c.cfg.Remote() && c.query != "" {
		c.rematch()
	}
	c.settle(true)
	return true
}

// RemoveLast removes the most recently selected value
func (c *Coordinator) RemoveLast() bool {
	sel := c.Selection.Selected()
	if len(sel) == 0 {
		return false
	}
	return c.RemoveItem(sel[len(sel)-1].Value)
}

// ClearButton clears the selection when clearing is allowed
func (c *Coordinator) ClearButton() bool {
	if c.disabled || !c.canClear() || c.Selection.Count() == 0 {
		return false
	}
	c.Selection.Clear()
	if !c.cfg.Remote() && c.query != "" {
		c.rematch()
	}
	c.settle(true)
	return true
}

// Validate reports whether the value satisfies the required constraint,
// showing the validation message when it does not
func (c *Coordinator) Validate() bool {
	fv := c.FormValue()
	if !fv.ValueMissing {
		if c.messageKind == viewmodels.MessageRequired {
			c.clearMessage()
			c.settle(false)
		}
		return true
	}
	c.setMessage(viewmodels.MessageRequired, fv.Message)
	c.settle(false)
	return false
}
