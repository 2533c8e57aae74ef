package app

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Devdeep8/let-s-do-it/internal/countdown"
	"github.com/Devdeep8/let-s-do-it/internal/keys"
	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/quote"
	"github.com/Devdeep8/let-s-do-it/internal/recorder"
	"github.com/Devdeep8/let-s-do-it/internal/refresh"
	"github.com/Devdeep8/let-s-do-it/internal/roadmap"
	"github.com/Devdeep8/let-s-do-it/internal/ui"
	"github.com/Devdeep8/let-s-do-it/internal/ui/command"
	"github.com/Devdeep8/let-s-do-it/internal/ui/dashboard"
	"github.com/Devdeep8/let-s-do-it/internal/ui/entryform"
	helpview "github.com/Devdeep8/let-s-do-it/internal/ui/help"
	"github.com/Devdeep8/let-s-do-it/internal/ui/roadmapview"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewRoadmap
	ViewHelp
	ViewCommand
	ViewForm
)

// Options carries everything the root model needs. Targets are resolved
// once before the program starts.
type Options struct {
	Config   *model.AppConfig
	Recorder *recorder.Recorder
	Tracker  *roadmap.Tracker
	Targets  countdown.Targets
	Loop     *refresh.Loop
	Quotes   []quote.Quote

	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the root Bubble Tea model. It is the only place the day record
// and roadmap progress are mutated.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	recorder     *recorder.Recorder
	tracker      *roadmap.Tracker
	loop         *refresh.Loop
	handles      []*refresh.Handle
	quotes       *quote.Rotator
	record       model.DailyRecord
	progress     model.RoadmapProgress
	dashboard    dashboard.Model
	roadmapView  roadmapview.Model
	entryForm    entryform.Model
	helpView     helpview.Model
	commandView  command.Model
	now          time.Time
	status       string
	ready        bool
}

// New loads today's record and the roadmap progress, registers the
// refresh jobs and returns the root model.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = model.DefaultAppConfig()
	}

	rec, err := opts.Recorder.LoadOrInitialize(ctx, opts.Recorder.Today())
	if err != nil {
		return Model{}, err
	}
	progress, err := opts.Tracker.Load(ctx)
	if err != nil {
		return Model{}, err
	}

	k := keys.DefaultKeyMap()
	now := opts.Now()

	dash := dashboard.New(k, opts.Targets, dashboard.Config{
		BirthdayLabel:   cfg.Countdown.Birthday.Label,
		DisciplineLabel: cfg.Countdown.Discipline.Label,
		QuickAddML:      cfg.Water.QuickAddML,
	}, 80, 24)
	dash.SetNow(now)
	dash.SetRecord(rec)

	rotator := quote.NewRotator(opts.Quotes)
	dash.SetQuote(rotator.Current())

	rv := roadmapview.New(k, 80, 24)
	rv.SetProgress(progress)

	m := Model{
		currentView: ViewDashboard,
		keys:        k,
		recorder:    opts.Recorder,
		tracker:     opts.Tracker,
		loop:        opts.Loop,
		quotes:      rotator,
		record:      rec,
		progress:    progress,
		dashboard:   dash,
		roadmapView: rv,
		entryForm:   entryform.New(80, 24),
		helpView:    helpview.New(k, command.Strings(), 80, 24),
		commandView: command.New(command.Strings(), 80, 24),
		now:         now,
	}

	if opts.Loop != nil {
		if err := m.schedule(cfg); err != nil {
			return Model{}, err
		}
	}

	return m, nil
}

// schedule registers the countdown tick, quote rotation and midnight jobs.
func (m *Model) schedule(cfg *model.AppConfig) error {
	tick := m.loop.Every(cfg.TickInterval(), func(t time.Time) tea.Msg {
		return refresh.TickMsg{Time: t}
	})
	rotate := m.loop.Every(cfg.QuoteInterval(), func(t time.Time) tea.Msg {
		return refresh.QuoteMsg{Time: t}
	})
	midnight, err := m.loop.Cron(refresh.MidnightSpec, func(t time.Time) tea.Msg {
		return refresh.DayChangedMsg{Time: t}
	})
	if err != nil {
		tick.Cancel()
		rotate.Cancel()
		return err
	}
	m.handles = []*refresh.Handle{tick, rotate, midnight}
	return nil
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	if m.loop == nil {
		return nil
	}
	return m.loop.Start()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.dashboard.SetSize(contentWidth, contentHeight)
		m.roadmapView.SetSize(contentWidth, contentHeight)
		m.entryForm.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case refresh.TickMsg:
		m.now = msg.Time
		m.dashboard.SetNow(msg.Time)
		// Catches a midnight missed while the machine was suspended.
		m.reloadDay()
		return m, m.waitForNext()

	case refresh.QuoteMsg:
		m.dashboard.SetQuote(m.quotes.Next())
		return m, m.waitForNext()

	case refresh.DayChangedMsg:
		m.now = msg.Time
		m.dashboard.SetNow(msg.Time)
		m.reloadDay()
		return m, m.waitForNext()

	case dashboard.ToggleTaskMsg:
		m.toggleTask(msg.ID)
		return m, nil

	case dashboard.DeleteTaskMsg:
		m.deleteTask(msg.ID)
		return m, nil

	case dashboard.AddWaterMsg:
		m.addWater(msg.Amount)
		return m, nil

	case dashboard.NotesChangedMsg:
		m.updateNotes(msg.Notes)
		return m, nil

	case dashboard.NewTaskRequestMsg:
		return m, m.openTaskForm()

	case dashboard.WaterFormRequestMsg:
		return m, m.openWaterForm()

	case dashboard.OpenRoadmapMsg:
		m.currentView = ViewRoadmap
		return m, nil

	case entryform.TaskSubmittedMsg:
		m.currentView = m.previousView
		m.addTask(msg.Text, msg.Category)
		return m, nil

	case entryform.WaterSubmittedMsg:
		m.currentView = m.previousView
		m.addWater(msg.Amount)
		return m, nil

	case entryform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case roadmapview.SetTaskStateMsg:
		m.setRoadmapTask(msg.Stage, msg.Key, msg.Completed)
		return m, nil

	case roadmapview.BackMsg:
		m.currentView = ViewDashboard
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "esc":
			if m.currentView == ViewHelp || m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
		}
		if m.capturesKeys() {
			break
		}

		switch msg.String() {
		case "q":
			if m.currentView == ViewDashboard || m.currentView == ViewRoadmap {
				return m, m.quit()
			}

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case ":":
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturesKeys reports whether the active view needs every key, so global
// shortcuts must not fire.
func (m Model) capturesKeys() bool {
	switch m.currentView {
	case ViewForm, ViewCommand:
		return true
	case ViewDashboard:
		return m.dashboard.Editing()
	default:
		return false
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewRoadmap:
		m.roadmapView, cmd = m.roadmapView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewForm:
		m.entryForm, cmd = m.entryForm.Update(msg)
	}

	return m, cmd
}

// waitForNext keeps listening to the refresh loop.
func (m Model) waitForNext() tea.Cmd {
	if m.loop == nil {
		return nil
	}
	return m.loop.WaitForNext()
}

// quit cancels every refresh job exactly once, stops the scheduler and
// exits the program.
func (m *Model) quit() tea.Cmd {
	for _, h := range m.handles {
		h.Cancel()
	}
	if m.loop != nil {
		m.loop.Stop()
	}
	return tea.Quit
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(
		fmt.Sprintf("deva · %s", m.record.Date),
		fmt.Sprintf("DSA %.0f%% · %s", m.progress.OverallProgress, m.now.Format("15:04:05")),
	)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewRoadmap:
		return m.roadmapView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewForm:
		return m.entryForm.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.status != "" {
		return m.status
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "tab complete | enter execute | esc back"
	case ViewRoadmap:
		return "j/k move | space toggle | esc back | q quit"
	case ViewForm:
		return "enter submit | esc cancel"
	default:
		if m.dashboard.Editing() {
			return "typing saves automatically | esc done"
		}
		return "q quit | ? help | n task | x toggle | 1/2/w water | e notes | m roadmap"
	}
}

// reportError logs err and surfaces it in the status bar.
func (m *Model) reportError(err error) {
	log.Printf("app: %v", err)
	m.status = "error: " + err.Error()
}
