package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jselect/internal/ui/services/remote"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// Searcher performs a remote fetch; it must be safe to call off the event loop
type Searcher interface {
	Search(issue remote.IssueSearch) remote.Result
}

// DebounceElapsedMsg is delivered when the debounce window of Generation ends
type DebounceElapsedMsg struct {
	Generation uint64
}

// SearchResultMsg carries a finished fetch back to the event loop
type SearchResultMsg struct {
	Result remote.Result
}

// DebounceCommand waits for the debounce delay
type DebounceCommand struct {
	generation uint64
	delay      time.Duration
}

// NewDebounceCommand creates a new debounce command
func NewDebounceCommand(eff remote.ScheduleDebounce) *DebounceCommand {
	return &DebounceCommand{generation: eff.Generation, delay: eff.Delay}
}

// Execute starts the timer
func (c *DebounceCommand) Execute() tea.Cmd {
	gen := c.generation
	if c.delay <= 0 {
		return func() tea.Msg { return DebounceElapsedMsg{Generation: gen} }
	}
	return tea.Tick(c.delay, func(time.Time) tea.Msg {
		return DebounceElapsedMsg{Generation: gen}
	})
}

// SearchCommand runs one fetch
type SearchCommand struct {
	searcher Searcher
	issue    remote.IssueSearch
}

// NewSearchCommand creates a new search command
func NewSearchCommand(searcher Searcher, issue remote.IssueSearch) *SearchCommand {
	return &SearchCommand{searcher: searcher, issue: issue}
}

// Execute performs the fetch in the command goroutine
func (c *SearchCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		return SearchResultMsg{Result: c.searcher.Search(c.issue)}
	}
}
