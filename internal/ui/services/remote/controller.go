package remote

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"jselect/internal/domain"
)

// Controller is the debounce / generation / cancellation state machine for remote search.
// It never starts timers or goroutines itself; it returns effects for the host to run.
type Controller struct {
	state     *State
	minLength int
	delay     time.Duration
	base      context.Context
	cancel    context.CancelFunc
	log       logr.Logger
}

// NewController creates a controller; base is the parent of every request context
func NewController(base context.Context, minLength int, delay time.Duration, log logr.Logger) *Controller {
	if base == nil {
		base = context.Background()
	}
	return &Controller{
		state:     &State{},
		minLength: minLength,
		delay:     delay,
		base:      base,
		log:       log.WithName("remote"),
	}
}

// Phase returns the current phase
func (c *Controller) Phase() domain.SearchPhase {
	return c.state.Phase
}

// Generation returns the current generation
func (c *Controller) Generation() uint64 {
	return c.state.Generation
}

// Err returns the error of the last failed search
func (c *Controller) Err() error {
	return c.state.Err
}

// MinLength returns the minimum term length in runes
func (c *Controller) MinLength() int {
	return c.minLength
}

// supersede invalidates everything belonging to the previous generation
func (c *Controller) supersede() {
	c.state.Generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.Err = nil
}

func (c *Controller) tooShort(term string) bool {
	return utf8.RuneCountInString(term) < c.minLength
}

// InputChanged starts a new debounce window for text
func (c *Controller) InputChanged(text string) Effect {
	c.supersede()
	term := strings.TrimSpace(text)
	c.state.Term = term
	if c.tooShort(term) {
		c.state.Phase = domain.PhaseIdle
		return TooShort{MinLength: c.minLength}
	}
	c.state.Phase = domain.PhaseDebouncing
	c.log.V(1).Info("debouncing", "generation", c.state.Generation, "term", term)
	return ScheduleDebounce{Generation: c.state.Generation, Delay: c.delay}
}

// Trigger searches for text immediately, skipping the debounce window
func (c *Controller) Trigger(text string) Effect {
	c.supersede()
	term := strings.TrimSpace(text)
	c.state.Term = term
	if c.tooShort(term) {
		c.state.Phase = domain.PhaseIdle
		return TooShort{MinLength: c.minLength}
	}
	return c.issue()
}

// DebounceElapsed turns the debounce window of gen into a request. Stale generations are ignored.
func (c *Controller) DebounceElapsed(gen uint64) (IssueSearch, bool) {
	if gen != c.state.Generation || c.state.Phase != domain.PhaseDebouncing {
		c.log.V(1).Info("stale debounce", "generation", gen, "current", c.state.Generation)
		return IssueSearch{}, false
	}
	return c.issue(), true
}

func (c *Controller) issue() IssueSearch {
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel
	c.state.Phase = domain.PhaseInFlight
	c.log.V(1).Info("issuing search", "generation", c.state.Generation, "term", c.state.Term)
	return IssueSearch{Generation: c.state.Generation, Term: c.state.Term, Ctx: ctx}
}

// Complete classifies a result. Only a Succeeded or Failed result of the current
// in-flight generation is returned as such; everything else is Superseded or Cancelled.
func (c *Controller) Complete(res Result) Result {
	if res.Generation != c.state.Generation || c.state.Phase != domain.PhaseInFlight {
		c.log.V(1).Info("discarding superseded result", "generation", res.Generation, "current", c.state.Generation)
		res.Kind = Superseded
		return res
	}
	if res.Kind == Failed && errors.Is(res.Err, context.Canceled) {
		res.Kind = Cancelled
	}
	if res.Kind == Failed && res.Err == nil {
		res.Err = errors.New("search failed")
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	switch res.Kind {
	case Succeeded:
		c.state.Phase = domain.PhaseIdle
	case Failed:
		c.state.Phase = domain.PhaseError
		c.state.Err = res.Err
		c.log.Info("search failed", "generation", res.Generation, "error", res.Err)
	default:
		c.state.Phase = domain.PhaseIdle
	}
	return res
}

// Reset aborts any pending debounce or request and returns to Idle
func (c *Controller) Reset() {
	c.supersede()
	c.state.Term = ""
	c.state.Phase = domain.PhaseIdle
}
