package input

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jselect/internal/domain"
	"jselect/internal/ui/input/types"
	"jselect/internal/ui/services/navigation"
)

// Handler turns key presses into actions. Keys that are not bound go to the
// text input; a change of its value is reported as UpdateTextAction.
type Handler struct {
	keys      KeyMap
	textInput *textinput.Model
}

// New creates a handler with the default key map
func New(placeholder string) *Handler {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholder
	ti.Focus()
	return &Handler{
		keys:      DefaultKeyMap(),
		textInput: &ti,
	}
}

// Keys returns the key map, for the help view
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// HandleKey processes a key message and returns the resulting actions
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	switch {
	case key.Matches(msg, h.keys.Quit):
		return []types.Action{types.QuitAction{Force: true}}, nil
	case key.Matches(msg, h.keys.Submit):
		return []types.Action{types.SubmitAction{}}, nil
	case key.Matches(msg, h.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, nil
	case key.Matches(msg, h.keys.HelpPager):
		return []types.Action{types.ShowHelpPagerAction{}}, nil
	}

	if ctx.Disabled() {
		return nil, nil
	}

	if intent, ok := h.intent(msg); ok {
		if intent == navigation.IntentDismiss && !ctx.IsOpen() {
			return nil, nil
		}
		return []types.Action{types.NavigateAction{Intent: intent}}, nil
	}

	switch {
	case key.Matches(msg, h.keys.Clear):
		return []types.Action{types.ClearAction{}}, nil
	case key.Matches(msg, h.keys.Search):
		return []types.Action{types.TriggerSearchAction{}}, nil
	case key.Matches(msg, h.keys.RemoveLast) && ctx.Query() == "":
		// chips exist only in multi mode
		if ctx.Mode() == domain.ModeMulti {
			return []types.Action{types.RemoveLastAction{}}, nil
		}
		return nil, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		return []types.Action{types.UpdateTextAction{Text: after}}, cmd
	}
	return nil, cmd
}

func (h *Handler) intent(msg tea.KeyMsg) (navigation.Intent, bool) {
	switch {
	case key.Matches(msg, h.keys.Prev):
		return navigation.IntentPrev, true
	case key.Matches(msg, h.keys.Next):
		return navigation.IntentNext, true
	case key.Matches(msg, h.keys.PageUp):
		return navigation.IntentPageBackward, true
	case key.Matches(msg, h.keys.PageDown):
		return navigation.IntentPageForward, true
	case key.Matches(msg, h.keys.First):
		return navigation.IntentFirst, true
	case key.Matches(msg, h.keys.Last):
		return navigation.IntentLast, true
	case key.Matches(msg, h.keys.Commit):
		return navigation.IntentCommit, true
	case key.Matches(msg, h.keys.TabCommit):
		return navigation.IntentTabCommit, true
	case key.Matches(msg, h.keys.Dismiss):
		return navigation.IntentDismiss, true
	}
	return "", false
}

// TextInput returns the text input model
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// Sync sets the text input to query when the widget reset it
func (h *Handler) Sync(query string) {
	if h.textInput.Value() != query {
		h.textInput.SetValue(query)
	}
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}
