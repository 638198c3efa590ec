package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"jselect/internal/ui/services/remote"
)

// Executor turns remote search effects into Bubble Tea commands
type Executor struct {
	searcher Searcher
}

// NewExecutor creates a new command executor
func NewExecutor(searcher Searcher) *Executor {
	return &Executor{searcher: searcher}
}

// ExecuteEffect creates and executes the command for eff. TooShort and nil need no work.
func (e *Executor) ExecuteEffect(eff remote.Effect) tea.Cmd {
	var cmd Command
	switch eff := eff.(type) {
	case remote.ScheduleDebounce:
		cmd = NewDebounceCommand(eff)
	case remote.IssueSearch:
		cmd = NewSearchCommand(e.searcher, eff)
	default:
		return nil
	}
	return cmd.Execute()
}
