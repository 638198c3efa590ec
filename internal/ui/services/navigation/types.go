package navigation

import "jselect/internal/domain"

// State holds all navigation-related state
type State struct {
	ViewportOffset int
	ViewportHeight int
}

// Intent is a keyboard-level request
type Intent string

const (
	IntentNext         Intent = "next"
	IntentPrev         Intent = "prev"
	IntentPageForward  Intent = "pageforward"
	IntentPageBackward Intent = "pagebackward"
	IntentFirst        Intent = "first"
	IntentLast         Intent = "last"
	IntentCommit       Intent = "commit"
	IntentTabCommit    Intent = "tabcommit"
	IntentDismiss      Intent = "dismiss"
)

// DecisionKind tells the coordinator what an intent resolved to
type DecisionKind int

const (
	DecisionNone DecisionKind = iota
	DecisionMoved
	DecisionCommit
	DecisionTabCommit
	DecisionDismiss
)

// Decision is the outcome of handling an intent
type Decision struct {
	Kind   DecisionKind
	Target *domain.Option // the option to commit, for commit decisions
}
