package coordinator

import (
	"context"

	"github.com/go-logr/logr"

	"jselect/internal/config"
	"jselect/internal/domain"
	"jselect/internal/eventbus"
	"jselect/internal/ui/services/cursor"
	"jselect/internal/ui/services/form"
	"jselect/internal/ui/services/matcher"
	"jselect/internal/ui/services/navigation"
	"jselect/internal/ui/services/registry"
	"jselect/internal/ui/services/remote"
	"jselect/internal/ui/services/selection"
	"jselect/internal/ui/viewmodels"
)

// Options configures a Coordinator
type Options struct {
	Widget   config.Widget
	Fetcher  remote.Fetcher // defaults to an HTTP fetcher when Widget.URL is set
	Bus      eventbus.EventBus
	Logger   logr.Logger
	Context  context.Context // parent of every request context
	IDPrefix string
}

// Coordinator owns every service of one widget and processes its events in order.
// It is not safe for concurrent use; the host calls it from a single goroutine.
// Search is the exception: it only reads immutable fields and may run anywhere.
type Coordinator struct {
	// Services
	Registry   *registry.Service
	Selection  *selection.Service
	Remote     *remote.Controller
	Cursor     *cursor.Service
	Navigation *navigation.Service

	cfg     config.Widget
	fetcher remote.Fetcher
	bus     eventbus.EventBus
	log     logr.Logger

	open        bool
	disabled    bool
	loading     bool
	query       string
	message     string
	messageKind viewmodels.MessageKind
	highlights  map[string]domain.Span

	revision uint64
	lastForm domain.FormValue
	snapshot viewmodels.Snapshot
}

// New creates a coordinator with all services wired
func New(opts Options) *Coordinator {
	log := opts.Logger // the zero Logger discards
	bus := opts.Bus
	if bus == nil {
		bus = eventbus.Null()
	}
	cfg := opts.Widget

	reg := registry.NewService(opts.IDPrefix, log)
	cur := cursor.NewService(reg)
	c := &Coordinator{
		Registry:   reg,
		Selection:  selection.NewService(reg, cfg.SelectionMode(), cfg.KeepSingleSelectOption, log),
		Remote:     remote.NewController(opts.Context, cfg.MinRemoteSearchLength, cfg.Debounce(), log),
		Cursor:     cur,
		Navigation: navigation.NewService(reg, cur),
		cfg:        cfg,
		fetcher:    opts.Fetcher,
		bus:        bus,
		log:        log.WithName("coordinator"),
		disabled:   cfg.Disabled,
	}
	if c.fetcher == nil && cfg.Remote() {
		c.fetcher = remote.NewHTTPFetcher(cfg.SearchParam, cfg.RequestTimeout())
	}
	c.lastForm = c.FormValue()
	c.refresh()
	return c
}

// Config returns the widget configuration
func (c *Coordinator) Config() config.Widget {
	return c.cfg
}

// IsOpen reports whether the dropdown is open
func (c *Coordinator) IsOpen() bool {
	return c.open
}

// Query returns the current input text
func (c *Coordinator) Query() string {
	return c.query
}

// Value returns the current value: nil or string in single mode, []string in multi mode
func (c *Coordinator) Value() any {
	return c.Selection.Value()
}

// FormValue returns the value as seen by the form collaborator
func (c *Coordinator) FormValue() domain.FormValue {
	return form.Build(c.cfg.Name, c.Selection.Value(), c.disabled, c.cfg.Required, c.cfg.Messages.Required)
}

// Snapshot returns the render snapshot taken after the last processed event
func (c *Coordinator) Snapshot() viewmodels.Snapshot {
	return c.snapshot
}

// SetViewportHeight sets how many rows the renderer can show
func (c *Coordinator) SetViewportHeight(rows int) {
	c.Navigation.SetViewportHeight(rows)
	c.refresh()
}

func (c *Coordinator) canClear() bool {
	return c.cfg.AllowClear && (c.Selection.Mode() == domain.ModeMulti || c.cfg.Placeholder != "")
}

func (c *Coordinator) setMessage(kind viewmodels.MessageKind, msg string) {
	c.messageKind = kind
	c.message = msg
}

func (c *Coordinator) clearMessage() {
	c.setMessage(viewmodels.MessageNone, "")
}

// rematch re-runs the local filter with the current query
func (c *Coordinator) rematch() matcher.Result {
	res := matcher.Apply(c.Registry, c.query)
	c.highlights = res.Highlights()
	if res.NoMatch {
		c.setMessage(viewmodels.MessageNoMatch, c.cfg.Messages.NoMatch)
	} else if c.messageKind == viewmodels.MessageNoMatch {
		c.clearMessage()
	}
	return res
}

// settle runs after every processed event: the cursor is revalidated, value
// notifications go out when the net value changed, and a new snapshot is published.
func (c *Coordinator) settle(user bool) {
	c.Cursor.Revalidate()

	fv := c.FormValue()
	if !formEqual(fv, c.lastForm) {
		c.lastForm = fv
		c.log.V(1).Info("value changed", "value", selection.String(fv.Value), "user", user)
		c.bus.Publish(domain.ValueChangedEvent{Form: fv, Items: c.Selection.Items(), UserInitiated: user})
		if user {
			c.bus.Publish(domain.ChangeEvent{Value: fv.Value})
		}
	}

	c.refresh()
	c.bus.Publish(domain.RenderEvent{Revision: c.revision})
}

func formEqual(a, b domain.FormValue) bool {
	return selection.Equal(a.Value, b.Value) && a.Disabled == b.Disabled &&
		a.ValueMissing == b.ValueMissing && a.Name == b.Name
}

// refresh rebuilds the snapshot
func (c *Coordinator) refresh() {
	c.revision++
	rows, active := viewmodels.BuildRows(c.Registry, c.Cursor.ActiveID(), c.highlights)
	if active >= 0 {
		c.Navigation.EnsureVisible(active, len(rows))
	} else {
		c.Navigation.EnsureVisible(-1, len(rows))
	}

	single := c.Selection.Mode() == domain.ModeSingle

	c.snapshot = viewmodels.Snapshot{
		Revision:        c.revision,
		Mode:            c.Selection.Mode(),
		Phase:           c.Remote.Phase(),
		Open:            c.open,
		Loading:         c.loading,
		Disabled:        c.disabled,
		NoSearch:        c.cfg.NoSearch,
		Remote:          c.cfg.Remote(),
		Query:           c.query,
		Placeholder:     c.cfg.Placeholder,
		ShowPlaceholder: c.Selection.Count() == 0 && c.cfg.Placeholder != "",
		Clearable:       single && c.canClear() && c.Selection.Count() > 0 && !c.disabled,
		Message:         c.message,
		MessageKind:     c.messageKind,
		Rows:            rows,
		ActiveID:        c.Cursor.ActiveID(),
		ActiveRow:       active,
		ViewportOffset:  c.Navigation.GetViewportOffset(),
		ViewportHeight:  c.Navigation.GetViewportHeight(),
		Items:           viewmodels.BuildChips(c.Selection.Selected(), c.canClear() && !c.disabled),
		Form:            c.FormValue(),
	}
}
