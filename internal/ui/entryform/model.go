package entryform

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/recorder"
	"github.com/Devdeep8/let-s-do-it/internal/theme"
)

// TaskSubmittedMsg is dispatched when the task form completes.
type TaskSubmittedMsg struct {
	Text     string
	Category model.Category
}

// WaterSubmittedMsg is dispatched when the water form completes.
type WaterSubmittedMsg struct {
	Amount int
}

// CancelMsg is dispatched when the user aborts either form.
type CancelMsg struct{}

// Kind selects which form is showing.
type Kind int

const (
	KindTask Kind = iota
	KindWater
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text     string
	category string
	amount   string
}

// Model is the Bubble Tea model for the task and water entry forms.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	kind   Kind
	width  int
	height int
}

// New creates an entry form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{category: string(model.CategoryOther)},
		width:  width,
		height: height,
	}
}

// Kind returns the form currently showing.
func (m Model) Kind() Kind {
	return m.kind
}

// StartTask initializes the form for a new task.
func (m *Model) StartTask() tea.Cmd {
	m.kind = KindTask
	m.fb.text = ""
	m.fb.category = string(model.CategoryOther)
	m.form = m.buildTaskForm()
	return m.form.Init()
}

// StartWater initializes the form for a custom water amount.
func (m *Model) StartWater() tea.Cmd {
	m.kind = KindWater
	m.fb.amount = ""
	m.form = m.buildWaterForm()
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	// huh only aborts on ctrl+c, which the app reserves for quitting.
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		return m, m.handleSubmit()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.kind == KindWater {
		titleText = "Log Water"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildTaskForm() *huh.Form {
	opts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		label := fmt.Sprintf("%s %s", theme.CategoryIcon(c), strings.ToUpper(string(c[:1]))+string(c[1:]))
		opts[i] = huh.NewOption(label, string(c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("What do you want to get done today?").
				Value(&m.fb.text).
				Validate(validateRequired("Task")),
			huh.NewSelect[string]().
				Title("Category").
				Options(opts...).
				Value(&m.fb.category),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildWaterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount (ml)").
				Placeholder("e.g. 330").
				Value(&m.fb.amount).
				Validate(validateAmount),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	switch m.kind {
	case KindWater:
		amount, ok := recorder.ParseAmount(m.fb.amount)
		if !ok {
			return func() tea.Msg { return CancelMsg{} }
		}
		return func() tea.Msg { return WaterSubmittedMsg{Amount: amount} }
	default:
		submitted := TaskSubmittedMsg{
			Text:     strings.TrimSpace(m.fb.text),
			Category: model.ParseCategory(m.fb.category),
		}
		return func() tea.Msg { return submitted }
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateAmount(s string) error {
	if _, ok := recorder.ParseAmount(s); !ok {
		return errors.New("enter a positive whole number of millilitres")
	}
	return nil
}
