package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/docsask/internal/answer"
	"github.com/csheth/docsask/internal/api"
	"github.com/csheth/docsask/internal/config"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Settings config.Config
	Client   Backend
	// Context bounds the health poller. Defaults to context.Background.
	Context context.Context
}

type model struct {
	config   Config
	examples []config.Example
	styles   styles
	keys     keyMap
	layout   pageLayout
	jobs     *jobBus
	ctx      context.Context
	cancel   context.CancelFunc
	closed   bool

	composer textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model

	stage         stage
	focus         focusArea
	exampleCursor int
	loading       bool
	askSeq        int
	answer        string
	blocks        []answer.Block
	errorMessage  string
	infoMessage   string

	apiStatus  apiStatus
	lastHealth api.HealthReport
	healthErr  error
	lastJobs   map[jobKind]jobSnapshot
}

// New returns a tea.Model ready to be mounted into a Program.
func New(cfg Config) tea.Model {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	ctx, cancel := context.WithCancel(cfg.Context)

	composer := textarea.New()
	composer.Placeholder = composerPlaceholder
	composer.ShowLineNumbers = false
	// Questions go to the backend as typed; zero lifts both textarea caps.
	composer.CharLimit = 0
	composer.MaxWidth = 0
	composer.SetHeight(composerRows)
	composer.SetWidth(76)
	composer.KeyMap.InsertNewline = newKeyMap().Newline
	composer.Focus()

	st := newStyles(cfg.Settings.Theme)

	vp := viewport.New(76, 10)
	vp.MouseWheelEnabled = true

	return &model{
		config:      cfg,
		examples:    cfg.Settings.ResolvedExamples(),
		styles:      st,
		keys:        newKeyMap(),
		layout:      newPageLayout(),
		jobs:        newJobBus(),
		ctx:         ctx,
		cancel:      cancel,
		composer:    composer,
		spinner:     newSpinner(st),
		viewport:    vp,
		help:        help.New(),
		stage:       stageIdle,
		focus:       focusInput,
		apiStatus:   statusChecking,
		infoMessage: "Type a question, or press tab to pick an example.",
		lastJobs:    map[jobKind]jobSnapshot{},
	}
}

// newSpinner gets a fresh spinner ID, so ticks left over from an earlier
// submission are ignored by the new one.
func newSpinner(st styles) spinner.Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = st.spinner
	return spin
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.startHealthCheck())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.applyLayout()
		return m, nil
	case jobSignalMsg:
		m.lastJobs[msg.Snapshot.Kind] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		if m.staleAsk(msg.Snapshot) {
			return m, nil
		}
		m.lastJobs[msg.Snapshot.Kind] = msg.Snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case askResultMsg:
		return m, m.handleAskResult(msg)
	case healthResultMsg:
		return m, m.handleHealthResult(msg)
	case healthTickMsg:
		if m.closed {
			return m, nil
		}
		return m, m.startHealthCheck()
	}
	return m, nil
}

// staleAsk reports an ask job superseded by a newer submission.
func (m *model) staleAsk(snapshot jobSnapshot) bool {
	return snapshot.Kind == jobKindAsk && snapshot.Seq != m.askSeq
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.shutdown()
		return tea.Quit
	}
	if key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	if m.focus == focusExamples {
		return m.handlePickerKey(msg)
	}
	return m.handleComposerKey(msg)
}

func (m *model) handleComposerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.NextFocus):
		m.focusPicker()
		return nil
	case key.Matches(msg, m.keys.Clear):
		if m.loading {
			return nil
		}
		m.composer.Reset()
		m.clearResults()
		m.stage = stageIdle
		m.infoMessage = "Cleared."
		return nil
	}
	if m.loading {
		// The composer is disabled while a question is in flight.
		return nil
	}
	before := m.composer.Value()
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	if m.composer.Value() != before && (m.stage == stageAnswered || m.stage == stageErrored) {
		m.stage = stageIdle
	}
	return cmd
}

func (m *model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back, m.keys.NextFocus):
		return m.focusComposer()
	case key.Matches(msg, m.keys.Up):
		m.moveExampleCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveExampleCursor(1)
	case key.Matches(msg, m.keys.Pick):
		return m.selectExample(m.exampleCursor)
	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	default:
		if idx, ok := digitIndex(msg); ok {
			return m.selectExample(idx)
		}
	}
	return nil
}

func digitIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

func (m *model) submit() tea.Cmd {
	if m.loading {
		m.infoMessage = "Still waiting for the previous answer."
		return nil
	}
	question := strings.TrimSpace(m.composer.Value())
	if question == "" {
		m.clearResults()
		m.errorMessage = emptyQuestionError
		m.stage = stageErrored
		return nil
	}
	if m.config.Client == nil {
		m.clearResults()
		m.errorMessage = "No backend configured."
		m.stage = stageErrored
		return nil
	}

	m.clearResults()
	m.loading = true
	m.stage = stageSubmitting
	m.askSeq++
	m.spinner = newSpinner(m.styles)
	m.composer.Blur()
	m.infoMessage = busyLabel
	timeout := m.config.Settings.RequestTimeout
	if timeout <= 0 {
		timeout = config.Defaults().RequestTimeout
	}
	return tea.Batch(
		m.spinner.Tick,
		m.jobs.Start(m.ctx, jobKindAsk, m.askSeq, askJob(m.askSeq, m.config.Client, question, timeout)),
	)
}

func (m *model) handleAskResult(msg askResultMsg) tea.Cmd {
	if m.closed || msg.seq != m.askSeq {
		return nil
	}
	m.loading = false
	if msg.err != nil {
		m.answer = ""
		m.blocks = nil
		m.errorMessage = api.MessageFor(msg.err)
		m.stage = stageErrored
		m.infoMessage = "Edit the question and press enter to retry."
	} else {
		m.errorMessage = ""
		m.answer = msg.answer.Text
		m.blocks = answer.Format(msg.answer.Text)
		m.stage = stageAnswered
		m.composer.Reset()
		m.infoMessage = answeredInfo(msg.answer)
		m.refreshAnswerViewport()
		m.viewport.GotoTop()
	}
	return m.focusComposer()
}

func answeredInfo(a api.Answer) string {
	if a.Latency <= 0 {
		return "Answer ready."
	}
	return fmt.Sprintf("Answer ready in %.1fs.", a.Latency.Seconds())
}

func (m *model) handleHealthResult(msg healthResultMsg) tea.Cmd {
	if m.closed {
		return nil
	}
	m.lastHealth = msg.report
	m.healthErr = msg.err
	if msg.err == nil && msg.report.Online {
		m.apiStatus = statusOnline
	} else {
		m.apiStatus = statusOffline
	}
	interval := m.config.Settings.HealthInterval
	if interval <= 0 {
		interval = config.Defaults().HealthInterval
	}
	return healthTickCmd(interval)
}

func (m *model) startHealthCheck() tea.Cmd {
	if m.config.Client == nil {
		return nil
	}
	timeout := m.config.Settings.HealthTimeout
	if timeout <= 0 {
		timeout = config.Defaults().HealthTimeout
	}
	return m.jobs.Start(m.ctx, jobKindHealth, 0, healthJob(m.config.Client, timeout))
}

func (m *model) selectExample(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.examples) {
		return nil
	}
	if m.loading {
		m.infoMessage = "Wait for the current answer before picking an example."
		return nil
	}
	m.exampleCursor = idx
	m.composer.SetValue(m.examples[idx].Text)
	m.clearResults()
	m.stage = stageIdle
	m.infoMessage = "Example loaded. Press enter to ask."
	return m.focusComposer()
}

func (m *model) moveExampleCursor(delta int) {
	if len(m.examples) == 0 {
		return
	}
	m.exampleCursor = (m.exampleCursor + delta + len(m.examples)) % len(m.examples)
}

func (m *model) focusPicker() {
	if len(m.examples) == 0 {
		return
	}
	m.focus = focusExamples
	m.keys.pickerFocus = true
	m.composer.Blur()
}

func (m *model) focusComposer() tea.Cmd {
	m.focus = focusInput
	m.keys.pickerFocus = false
	m.help.ShowAll = false
	if m.loading {
		return nil
	}
	return m.composer.Focus()
}

func (m *model) clearResults() {
	m.answer = ""
	m.blocks = nil
	m.errorMessage = ""
	m.viewport.SetContent("")
}

func (m *model) shutdown() {
	m.closed = true
	m.cancel()
}
