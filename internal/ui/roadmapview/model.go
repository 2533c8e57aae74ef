package roadmapview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Devdeep8/let-s-do-it/internal/keys"
	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/roadmap"
	"github.com/Devdeep8/let-s-do-it/internal/theme"
)

// BackMsg signals the parent to navigate back to the dashboard.
type BackMsg struct{}

// SetTaskStateMsg asks the parent to mark a roadmap leaf.
type SetTaskStateMsg struct {
	Stage     string
	Key       string
	Completed bool
}

// position addresses one leaf in Schema.
type position struct {
	stage string
	key   string
}

// Model is the roadmap detail view.
type Model struct {
	keys     *keys.KeyMap
	progress model.RoadmapProgress
	leaves   []position
	cursor   int
	viewport viewport.Model
	overall  progress.Model
	stageBar progress.Model
	width    int
	height   int
}

// New creates a roadmap view.
func New(k *keys.KeyMap, width, height int) Model {
	var leaves []position
	for _, s := range roadmap.Schema {
		for _, l := range s.Leaves {
			leaves = append(leaves, position{stage: s.ID, key: l.Key})
		}
	}

	m := Model{
		keys:     k,
		progress: roadmap.NewProgress(),
		leaves:   leaves,
		viewport: viewport.New(width, height),
		overall:  progress.New(progress.WithDefaultGradient()),
		stageBar: progress.New(progress.WithSolidFill("#6BCB77")),
	}
	m.SetSize(width, height)
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetProgress replaces the displayed progress.
func (m *Model) SetProgress(p model.RoadmapProgress) {
	m.progress = p
	m.refresh()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.overall.Width = max(width-10, 10)
	m.stageBar.Width = max(width/3, 10)
	m.refresh()
}

// Update handles messages for the roadmap view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Roadmap):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.leaves)-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			pos := m.leaves[m.cursor]
			next := SetTaskStateMsg{
				Stage:     pos.stage,
				Key:       pos.key,
				Completed: !m.progress.Stages[pos.stage][pos.key],
			}
			return m, func() tea.Msg { return next }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the roadmap.
func (m Model) View() string {
	return m.viewport.View()
}

// refresh re-renders the content and scrolls the cursor into view.
func (m *Model) refresh() {
	content, cursorLine := m.renderContent()
	m.viewport.SetContent(content)

	switch {
	case cursorLine < m.viewport.YOffset:
		m.viewport.SetYOffset(cursorLine)
	case cursorLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}

// renderContent returns the full roadmap and the line the cursor is on.
func (m Model) renderContent() (string, int) {
	var lines []string
	cursorLine := 0

	lines = append(lines,
		theme.PanelTitleStyle.Render("DSA Learning Roadmap"),
		fmt.Sprintf("%s %s",
			m.overall.ViewAs(m.progress.OverallProgress/100),
			theme.ProgressStyle(m.progress.OverallProgress).Render(fmt.Sprintf("%.0f%%", m.progress.OverallProgress)),
		),
		"",
	)

	idx := 0
	for _, stage := range roadmap.Schema {
		pct := roadmap.StageCompletion(m.progress, stage.ID)
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render(stage.Title)+
				theme.HelpStyle.Render("  "+stage.Duration),
			fmt.Sprintf("%s %3.0f%%", m.stageBar.ViewAs(pct/100), pct),
		)
		for _, leaf := range stage.Leaves {
			check := "[ ]"
			label := leaf.Label
			if m.progress.Stages[stage.ID][leaf.Key] {
				check = theme.SuccessStyle.Render("[✓]")
				label = theme.DimmedStyle.Render(label)
			}
			line := check + " " + label
			if idx == m.cursor {
				cursorLine = len(lines)
				line = theme.SelectedItemStyle.Render(line)
			} else {
				line = theme.ListItemStyle.Render(line)
			}
			lines = append(lines, line)
			idx++
		}
		lines = append(lines, theme.QuoteStyle.Render("  "+stage.Note), "")
	}

	lines = append(lines, theme.PanelTitleStyle.Render("6-Month Timeline"))
	for _, ms := range roadmap.Timeline {
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Render(ms.Period)+"  "+ms.Summary,
			theme.HelpStyle.Render("  "+strings.Join(ms.Points, " · ")),
		)
	}
	lines = append(lines, "", theme.PanelTitleStyle.Render("Resources"))
	for _, r := range roadmap.Resources {
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			lipgloss.NewStyle().Bold(true).Render(r.Name),
			theme.HelpStyle.Render(r.Description),
			lipgloss.NewStyle().Foreground(theme.ColorBlue).Underline(true).Render(r.URL),
		))
	}

	return strings.Join(lines, "\n"), cursorLine
}
