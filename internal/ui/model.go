package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"jselect/internal/config"
	"jselect/internal/domain"
	"jselect/internal/ui/adapters"
	"jselect/internal/ui/commands"
	"jselect/internal/ui/coordinator"
	"jselect/internal/ui/input"
	inputtypes "jselect/internal/ui/input/types"
	"jselect/internal/ui/services/navigation"
	"jselect/internal/ui/views"
)

// chromeLines is the space taken by everything except the option rows
const chromeLines = 10

// Model is the Bubble Tea host of one selection widget
type Model struct {
	coord  *coordinator.Coordinator
	config *config.Config
	log    logr.Logger

	width       int
	height      int
	help        help.Model
	showHelp    bool
	inPagerMode bool // tracks if we're currently in pager mode
	statusError string
	readyMarker bool

	renderer     *views.Renderer
	inputHandler *input.Handler
	inputCtx     *adapters.CoordinatorContext
	cmdExecutor  *commands.Executor
	helpRender   *HelpRenderer

	submitted bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(coord *coordinator.Coordinator, cfg *config.Config, log logr.Logger) *Model {
	return &Model{
		coord:        coord,
		config:       cfg,
		log:          log.WithName("ui"),
		help:         help.New(),
		showHelp:     cfg.UISettings.ShowHelp,
		readyMarker:  os.Getenv("JSELECT_E2E_TEST") == "1",
		renderer:     views.NewRenderer(),
		inputHandler: input.New(cfg.Widget.Placeholder),
		inputCtx:     adapters.NewCoordinatorContext(coord),
		cmdExecutor:  commands.NewExecutor(coord),
		helpRender:   NewHelpRenderer(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Submitted reports whether the user accepted the value
func (m *Model) Submitted() bool {
	return m.submitted
}

// FormValue returns the value to submit
func (m *Model) FormValue() domain.FormValue {
	return m.coord.FormValue()
}

// Init opens the widget, it has focus from the start
func (m *Model) Init() tea.Cmd {
	m.coord.SetViewportHeight(m.config.UISettings.Height)
	m.coord.Open()
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputCtx)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		m.inputHandler.Sync(m.coord.Query())
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.coord.Navigate(navigation.IntentPrev)
		case tea.MouseButtonWheelDown:
			m.coord.Navigate(navigation.IntentNext)
		}

	case commands.DebounceElapsedMsg:
		return m, m.cmdExecutor.ExecuteEffect(m.coord.DebounceElapsed(msg.Generation))

	case commands.SearchResultMsg:
		kind := m.coord.Complete(msg.Result)
		m.log.V(1).Info("search result", "generation", msg.Result.Generation, "kind", kind.String())

	case EventMsg:
		if e, ok := msg.Event.(domain.ErrorEvent); ok {
			m.statusError = e.Message
			if e.Err != nil {
				m.statusError += ": " + e.Err.Error()
			}
		}

	case helpPagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.log.Error(msg.err, "help pager failed")
			m.statusError = "help pager: " + msg.err.Error()
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	default:
		return m, m.inputHandler.Update(msg)
	}

	return m, nil
}

// processAction executes one input action against the coordinator
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.coord.Navigate(a.Intent)
	case inputtypes.UpdateTextAction:
		return m.cmdExecutor.ExecuteEffect(m.coord.Input(a.Text))
	case inputtypes.RemoveLastAction:
		m.coord.RemoveLast()
	case inputtypes.ClearAction:
		m.coord.ClearButton()
	case inputtypes.TriggerSearchAction:
		return m.cmdExecutor.ExecuteEffect(m.coord.TriggerSearch())
	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.updateViewportHeight()
	case inputtypes.ShowHelpPagerAction:
		if m.program != nil {
			return m.fetchHelpPager(m.helpRender.RenderHelpContent(m.inputHandler.Keys()))
		}
	case inputtypes.SubmitAction:
		if m.coord.Validate() {
			m.submitted = true
			return tea.Quit
		}
	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) updateViewportHeight() {
	rows := m.config.UISettings.Height
	if m.height > 0 {
		avail := m.height - chromeLines
		if !m.showHelp {
			avail += 2
		}
		rows = min(rows, avail)
	}
	m.coord.SetViewportHeight(max(rows, 1))
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	ops := NewHelpOps(m.program)
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := ops.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	out := m.renderer.Render(views.ViewState{
		Width:    m.width,
		Title:    m.config.Widget.Name,
		Input:    m.inputHandler.TextInput().View(),
		Snapshot: m.coord.Snapshot(),
		ShowHelp: m.showHelp,
		Help:     m.help.View(m.inputHandler.Keys()),
	})
	if m.statusError != "" {
		out += "\n" + m.statusError
	}
	if m.readyMarker {
		out += "\n__READY__"
	}
	return out
}
