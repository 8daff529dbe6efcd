package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/mlc/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ReconcileView ViewState = iota
	ResultView
)

// tabs lists the result sets shown as lists, in tab order.
var tabs = []tasks.ResultSet{tasks.SetCommon, tasks.SetReferenceOnly, tasks.SetLocalOnly}

// Options configures the catalogs a [Model] reconciles and how it exports.
type Options struct {
	Reference tasks.CatalogSource
	Local     tasks.CatalogSource
	Export    tasks.ExportOpts
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.Reconciler
	opts         Options
	width        int
	height       int
	lists        []list.Model
	active       int
	progressChan chan tasks.ProgressUpdate
	done         chan Msg
	progress     tasks.ProgressUpdate
	result       *tasks.ReconcileResult
	status       string
	statusErr    bool
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine tasks.Reconciler, opts Options) *Model {
	return &Model{
		ctx:    ctx,
		view:   ReconcileView,
		engine: engine,
		opts:   opts,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts the reconciliation run.
func (m *Model) Init() tea.Cmd {
	return m.startReconcile()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w, h := m.listSize()
		for i := range m.lists {
			m.lists[i].SetSize(w, h)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ReconcileView:
			return m.handleReconcileKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ReconcileView:
		return m.renderReconcile()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgReconcileComplete:
		outcome := msg.data.(reconcileOutcome)
		m.progressChan = nil
		m.done = nil
		m.result = outcome.result
		m.err = outcome.err
		if m.err == nil {
			m.buildLists()
		}
		m.view = ResultView
		return m, nil

	case MsgExportComplete:
		outcome := msg.data.(exportOutcome)
		m.setExportStatus(outcome.result, outcome.err)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleReconcileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.rerun):
			m.err = nil
			return m, m.startReconcile()
		}
		return m, nil
	}

	// Typed characters belong to the filter input while filtering.
	if m.filtering() {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.active = (m.active + 1) % len(tabs)
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.active = (m.active + len(tabs) - 1) % len(tabs)
		return m, nil
	case key.Matches(msg, m.keys.export):
		return m, m.exportActive()
	case key.Matches(msg, m.keys.rerun):
		m.status = ""
		return m, m.startReconcile()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != ResultView || len(m.lists) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.lists[m.active], cmd = m.lists[m.active].Update(msg)
	return m, cmd
}

func (m *Model) filtering() bool {
	return len(m.lists) > 0 && m.lists[m.active].FilterState() == list.Filtering
}

func (m *Model) listSize() (int, int) {
	return max(m.width-4, 0), max(m.height-10, 0)
}

func (m *Model) buildLists() {
	w, h := m.listSize()
	m.lists = make([]list.Model, len(tabs))
	for i, set := range tabs {
		m.lists[i] = newTrackList(set, m.result.Tracks(set), w, h)
	}
	m.active = 0
}

// startReconcile runs the engine in the background and streams its progress back as messages.
func (m *Model) startReconcile() tea.Cmd {
	m.view = ReconcileView
	m.progress = tasks.ProgressUpdate{}
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.done = make(chan Msg, 1)

	progress, done := m.progressChan, m.done
	engine, ctx, opts := m.engine, m.ctx, m.opts
	go func() {
		result, err := engine.Reconcile(ctx, progress, opts.Reference, opts.Local)
		done <- reconcileCompleteMsg(result, err)
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	if progress == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

// exportActive writes the active set with the configured export options.
func (m *Model) exportActive() tea.Cmd {
	opts := m.opts.Export
	opts.Sets = []tasks.ResultSet{tabs[m.active]}
	engine, ctx, result := m.engine, m.ctx, m.result

	return func() tea.Msg {
		export, err := engine.Export(ctx, nil, result, opts)
		return exportCompleteMsg(export, err)
	}
}

func (m *Model) setExportStatus(export *tasks.ExportResult, err error) {
	switch {
	case err != nil:
		m.status, m.statusErr = fmt.Sprintf("Export failed: %v", err), true
	case export.FailedExports > 0:
		m.status, m.statusErr = fmt.Sprintf("Export failed: %s", export.Results[0].ErrorMessage), true
	default:
		m.status, m.statusErr = fmt.Sprintf("✓ Exported %s", export.Results[0].Path), false
	}
}

func (m *Model) renderReconcile() string {
	title := styles.title.Render("Reconciling Catalogs")

	var phase string
	switch m.progress.Phase {
	case tasks.LoadReference:
		phase = fmt.Sprintf("Loading %s catalog...", m.opts.Reference.Label)
	case tasks.LoadLocal:
		phase = fmt.Sprintf("Loading %s catalog...", m.opts.Local.Label)
	case tasks.Classify:
		phase = fmt.Sprintf("Classifying tracks (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Starting..."
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s", title, phase, m.progress.Message, helpView)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Reconcile failed: %v\n\nPress r to retry, q to quit", m.err))
	}
	if m.result == nil || len(m.lists) == 0 {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.title.Render(fmt.Sprintf("%s vs %s", m.result.Reference.Label, m.result.Local.Label))
	stats := styles.help.Render(fmt.Sprintf("%d reference tracks • %d local tracks", m.result.Reference.Tracks, m.result.Local.Tracks))

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(stats + "\n\n")
	b.WriteString(m.renderTabs() + "\n\n")

	if len(m.lists[m.active].Items()) == 0 {
		b.WriteString(styles.warn.Render("No tracks in this set") + "\n")
	} else {
		b.WriteString(m.lists[m.active].View() + "\n")
	}

	if m.status != "" {
		style := styles.ok
		if m.statusErr {
			style = styles.err
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderTabs() string {
	parts := make([]string, len(tabs))
	for i, set := range tabs {
		label := fmt.Sprintf("%s (%d)", set.Label(), len(m.result.Tracks(set)))
		if i == m.active {
			parts[i] = styles.activeTab.Render(label)
		} else {
			parts[i] = styles.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
