package types

import "jselect/internal/ui/services/navigation"

// Navigation actions
type NavigateAction struct {
	Intent navigation.Intent
}

func (a NavigateAction) Type() string { return "navigate" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// Selection actions
type RemoveLastAction struct{}

func (a RemoveLastAction) Type() string { return "remove_last" }

type ClearAction struct{}

func (a ClearAction) Type() string { return "clear" }

// Command actions
type TriggerSearchAction struct{}

func (a TriggerSearchAction) Type() string { return "trigger_search" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ShowHelpPagerAction struct{}

func (a ShowHelpPagerAction) Type() string { return "show_help_pager" }

// SubmitAction accepts the current value and quits when it is valid
type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

type QuitAction struct {
	Force bool // true for Ctrl+C: quit without a value
}

func (a QuitAction) Type() string { return "quit" }
