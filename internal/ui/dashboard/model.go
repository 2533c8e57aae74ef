package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Devdeep8/let-s-do-it/internal/countdown"
	"github.com/Devdeep8/let-s-do-it/internal/keys"
	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/quote"
	"github.com/Devdeep8/let-s-do-it/internal/theme"
	"github.com/Devdeep8/let-s-do-it/internal/ui"
)

// ToggleTaskMsg asks the parent to flip a task's completion.
type ToggleTaskMsg struct {
	ID string
}

// DeleteTaskMsg asks the parent to remove a task.
type DeleteTaskMsg struct {
	ID string
}

// AddWaterMsg asks the parent to log a drink.
type AddWaterMsg struct {
	Amount int
}

// NotesChangedMsg carries the notes text after every edit.
type NotesChangedMsg struct {
	Notes string
}

// NewTaskRequestMsg asks the parent to open the task form.
type NewTaskRequestMsg struct{}

// WaterFormRequestMsg asks the parent to open the custom water form.
type WaterFormRequestMsg struct{}

// OpenRoadmapMsg asks the parent to switch to the roadmap view.
type OpenRoadmapMsg struct{}

// recentWaterEntries is how many drinks the water panel lists.
const recentWaterEntries = 5

// Config holds the display settings for the dashboard.
type Config struct {
	BirthdayLabel   string
	DisciplineLabel string
	QuickAddML      []int
}

// Model is the main dashboard view.
type Model struct {
	keys      *keys.KeyMap
	cfg       Config
	targets   countdown.Targets
	now       time.Time
	record    model.DailyRecord
	quote     quote.Quote
	hasQuote  bool
	cursor    int
	editing   bool
	lastNotes string
	notes     textarea.Model
	waterBar  progress.Model
	goalBar   progress.Model
	width     int
	height    int
}

// New creates a dashboard view.
func New(k *keys.KeyMap, targets countdown.Targets, cfg Config, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "What's on your mind today?"
	ta.ShowLineNumbers = false
	ta.SetHeight(4)

	m := Model{
		keys:     k,
		cfg:      cfg,
		targets:  targets,
		now:      time.Now(),
		notes:    ta,
		waterBar: progress.New(progress.WithGradient("#74C0FC", "#1C7ED6")),
		goalBar:  progress.New(progress.WithDefaultGradient()),
	}
	m.SetSize(width, height)
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetRecord replaces the displayed day record. While the notes editor is
// open for the same day its contents are left alone.
func (m *Model) SetRecord(rec model.DailyRecord) {
	dayChanged := rec.Date != m.record.Date
	m.record = rec

	if dayChanged && m.editing {
		m.editing = false
		m.notes.Blur()
	}
	if !m.editing {
		m.notes.SetValue(rec.Notes)
		m.lastNotes = rec.Notes
	}

	if m.cursor >= len(rec.Tasks) {
		m.cursor = len(rec.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Record returns the displayed day record.
func (m Model) Record() model.DailyRecord {
	return m.record
}

// SetNow sets the instant countdowns are computed against.
func (m *Model) SetNow(now time.Time) {
	m.now = now
}

// SetQuote sets the quote shown under the countdowns.
func (m *Model) SetQuote(q quote.Quote, ok bool) {
	m.quote = q
	m.hasQuote = ok
}

// Editing reports whether the notes editor has key focus.
func (m Model) Editing() bool {
	return m.editing
}

// StartEditing gives the notes editor key focus.
func (m *Model) StartEditing() tea.Cmd {
	m.editing = true
	return m.notes.Focus()
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.record.Tasks) {
		return model.Task{}, false
	}
	return m.record.Tasks[m.cursor], true
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	col := ui.ColumnWidth(width, 2)
	m.waterBar.Width = max(col-8, 10)
	m.goalBar.Width = max(col-8, 10)
	m.notes.SetWidth(max(width-6, 10))
}

// Update handles key input for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.notes, cmd = m.notes.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.editing {
		return m.updateNotes(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.record.Tasks)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if t, ok := m.SelectedTask(); ok {
			return m, func() tea.Msg { return ToggleTaskMsg{ID: t.ID} }
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if t, ok := m.SelectedTask(); ok {
			return m, func() tea.Msg { return DeleteTaskMsg{ID: t.ID} }
		}

	case key.Matches(keyMsg, m.keys.NewTask):
		return m, func() tea.Msg { return NewTaskRequestMsg{} }

	case key.Matches(keyMsg, m.keys.QuickWater):
		return m, m.quickAdd(0)

	case key.Matches(keyMsg, m.keys.QuickWater2):
		return m, m.quickAdd(1)

	case key.Matches(keyMsg, m.keys.CustomWater):
		return m, func() tea.Msg { return WaterFormRequestMsg{} }

	case key.Matches(keyMsg, m.keys.EditNotes):
		return m, m.StartEditing()

	case key.Matches(keyMsg, m.keys.Roadmap):
		return m, func() tea.Msg { return OpenRoadmapMsg{} }
	}

	return m, nil
}

func (m Model) quickAdd(i int) tea.Cmd {
	if i >= len(m.cfg.QuickAddML) {
		return nil
	}
	amount := m.cfg.QuickAddML[i]
	return func() tea.Msg { return AddWaterMsg{Amount: amount} }
}

// updateNotes feeds a key to the notes editor and reports any change.
func (m Model) updateNotes(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.editing = false
		m.notes.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)

	value := m.notes.Value()
	if value == m.lastNotes {
		return m, cmd
	}
	m.lastNotes = value
	return m, tea.Batch(cmd, func() tea.Msg { return NotesChangedMsg{Notes: value} })
}

// View renders the dashboard.
func (m Model) View() string {
	col := ui.ColumnWidth(m.width, 2)

	countdowns := ui.Columns(m.width,
		m.panel(col, false, m.renderBirthday()),
		m.panel(col, false, m.renderDiscipline()),
	)
	trackers := ui.Columns(m.width,
		m.panel(col, !m.editing, m.renderTasks()),
		m.panel(col, false, m.renderWater()),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		countdowns,
		m.renderQuote(),
		trackers,
		m.panel(m.width, m.editing, m.renderNotes()),
	)
}

func (m Model) panel(width int, focused bool, content string) string {
	style := theme.PanelStyle
	if focused {
		style = theme.FocusedPanelStyle
	}
	return style.Width(max(width-2, 0)).Render(content)
}

func (m Model) renderBirthday() string {
	title := theme.PanelTitleStyle.Render(m.cfg.BirthdayLabel)
	remaining := countdown.Compute(m.targets.Birthday, m.now)

	if remaining.Expired() {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			theme.SuccessStyle.Render("🎉 Happy Birthday! 🎉"),
		)
	}

	totals := theme.HelpStyle.Render(fmt.Sprintf(
		"%s hours · %s minutes · %s seconds",
		humanize.Comma(remaining.TotalHours),
		humanize.Comma(remaining.TotalMinutes),
		humanize.Comma(remaining.TotalSeconds),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		renderRemaining(remaining),
		totals,
		theme.HelpStyle.Render("Target: "+formatTarget(m.targets.Birthday)),
	)
}

func (m Model) renderDiscipline() string {
	title := theme.PanelTitleStyle.Render(m.cfg.DisciplineLabel)
	remaining := countdown.Compute(m.targets.Discipline, m.now)
	pct := countdown.Progress(m.targets.DisciplineStart, m.targets.Discipline, m.now)

	status := renderRemaining(remaining)
	if remaining.Expired() {
		status = theme.SuccessStyle.Render("Goal date reached. Keep going!")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		status,
		m.goalBar.ViewAs(pct/100),
		theme.ProgressStyle(pct).Render(fmt.Sprintf("%.1f%% of the journey", pct))+
			theme.HelpStyle.Render("  ends "+formatTarget(m.targets.Discipline)),
	)
}

// renderRemaining renders "D days HH hrs MM min SS sec".
func renderRemaining(r model.TimeRemaining) string {
	unit := func(n int64, label string, pad bool) string {
		s := humanize.Comma(n)
		if pad {
			s = fmt.Sprintf("%02d", n)
		}
		return theme.BigNumberStyle.Render(s) + " " + theme.UnitStyle.Render(label)
	}
	return strings.Join([]string{
		unit(r.Days, "days", false),
		unit(r.Hours, "hrs", true),
		unit(r.Minutes, "min", true),
		unit(r.Seconds, "sec", true),
	}, "  ")
}

func formatTarget(t time.Time) string {
	if t.IsZero() {
		return "not set"
	}
	return t.Local().Format("Jan 2, 2006 • 3:04 PM MST")
}

func (m Model) renderQuote() string {
	if !m.hasQuote {
		return ""
	}
	text := fmt.Sprintf("“%s” — %s", m.quote.Text, m.quote.Author)
	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Padding(0, 2).
		Render(theme.QuoteStyle.Render(text))
}

func (m Model) renderTasks() string {
	title := theme.PanelTitleStyle.Render(fmt.Sprintf(
		"Today's Tasks (%d/%d)", m.record.CompletedTasks, m.record.TotalTasks,
	))

	if len(m.record.Tasks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			theme.HelpStyle.Render("No tasks yet. Press n to add one."),
		)
	}

	lines := []string{title}
	for i, t := range m.record.Tasks {
		lines = append(lines, m.renderTask(i, t))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderTask(index int, t model.Task) string {
	check := "[ ]"
	text := t.Text
	if t.Completed {
		check = theme.SuccessStyle.Render("[✓]")
		text = theme.DimmedStyle.Render(text)
	}
	icon := theme.CategoryStyle(t.Category).Render(theme.CategoryIcon(t.Category))
	line := fmt.Sprintf("%s %s %s", check, icon, text)

	if index == m.cursor && !m.editing {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func (m Model) renderWater() string {
	title := theme.PanelTitleStyle.Render(fmt.Sprintf(
		"Water %s / %s ml",
		humanize.Comma(int64(m.record.TotalWater)),
		humanize.Comma(int64(m.record.WaterGoal)),
	))

	lines := []string{title, m.waterBar.ViewAs(m.record.WaterPercent() / 100)}

	entries := m.record.WaterIntake
	if len(entries) > recentWaterEntries {
		entries = entries[len(entries)-recentWaterEntries:]
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		lines = append(lines, theme.ListItemStyle.Render(fmt.Sprintf(
			"%s  +%s ml", e.Timestamp.Local().Format("15:04"), humanize.Comma(int64(e.Amount)),
		)))
	}

	var hints []string
	for i, ml := range m.cfg.QuickAddML {
		if i > 1 {
			break
		}
		hints = append(hints, fmt.Sprintf("%d: +%d ml", i+1, ml))
	}
	hints = append(hints, "w: custom")
	lines = append(lines, theme.HelpStyle.Render(strings.Join(hints, "  ")))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderNotes() string {
	title := theme.PanelTitleStyle.Render("Notes")
	if m.editing {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.notes.View())
	}

	body := m.record.Notes
	if strings.TrimSpace(body) == "" {
		body = theme.HelpStyle.Render("Press e to write today's notes.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}
