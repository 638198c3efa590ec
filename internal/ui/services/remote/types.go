package remote

import (
	"context"
	"errors"
	"time"

	"jselect/internal/domain"
)

// State holds the search state machine
type State struct {
	Phase      domain.SearchPhase
	Generation uint64
	Term       string
	Err        error
}

// Effect is work the host has to perform on behalf of the controller
type Effect interface {
	isEffect()
}

// ScheduleDebounce asks the host to call DebounceElapsed(Generation) after Delay
type ScheduleDebounce struct {
	Generation uint64
	Delay      time.Duration
}

// IssueSearch asks the host to run the fetch for Term and report back with Complete
type IssueSearch struct {
	Generation uint64
	Term       string
	Ctx        context.Context
}

// TooShort reports that the term was below the minimum length
type TooShort struct {
	MinLength int
}

func (ScheduleDebounce) isEffect() {}
func (IssueSearch) isEffect()      {}
func (TooShort) isEffect()         {}

// Kind classifies a search result
type Kind int

const (
	Succeeded Kind = iota
	Failed
	Cancelled
	Superseded
)

func (k Kind) String() string {
	switch k {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "superseded"
	}
}

// Result is the outcome of one fetch, tagged with the generation that issued it
type Result struct {
	Generation uint64
	Kind       Kind
	Data       []byte
	Err        error
}

// Success builds a successful result
func Success(gen uint64, data []byte) Result {
	return Result{Generation: gen, Kind: Succeeded, Data: data}
}

// Failure builds a failed result; context cancellation becomes Cancelled
func Failure(gen uint64, err error) Result {
	if errors.Is(err, context.Canceled) {
		return Result{Generation: gen, Kind: Cancelled, Err: err}
	}
	return Result{Generation: gen, Kind: Failed, Err: err}
}

var (
	// ErrBadStatus is returned by the HTTP fetcher for non-2xx responses
	ErrBadStatus = errors.New("unexpected response status")
	// ErrMalformedResponse is returned when a response body cannot be converted
	ErrMalformedResponse = errors.New("malformed response")
)
