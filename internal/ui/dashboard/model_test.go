package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Devdeep8/let-s-do-it/internal/countdown"
	"github.com/Devdeep8/let-s-do-it/internal/keys"
	"github.com/Devdeep8/let-s-do-it/internal/model"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestDashboard() Model {
	targets := countdown.Targets{
		Birthday:        time.Date(2028, 11, 7, 18, 30, 0, 0, time.UTC),
		DisciplineStart: time.Date(2026, 6, 30, 18, 30, 0, 0, time.UTC),
		Discipline:      time.Date(2026, 12, 31, 18, 30, 0, 0, time.UTC),
	}
	m := New(keys.DefaultKeyMap(), targets, Config{
		BirthdayLabel:   "Birthday Countdown",
		DisciplineLabel: "Discipline Goal",
		QuickAddML:      []int{250, 500},
	}, 120, 40)
	m.SetNow(time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC))

	rec := model.NewDailyRecord("2026-10-16", 2000)
	rec.Tasks = []model.Task{
		{ID: "a", Text: "Read chapter", Category: model.CategoryLearning},
		{ID: "b", Text: "Ship feature", Category: model.CategoryDevelopment},
	}
	rec.Recompute()
	m.SetRecord(rec)
	return m
}

func TestToggleAndDeleteTargetCursor(t *testing.T) {
	m := newTestDashboard()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(runes("x"))
	if cmd == nil {
		t.Fatal("toggle produced no command")
	}
	if got, ok := cmd().(ToggleTaskMsg); !ok || got.ID != "b" {
		t.Errorf("toggle msg = %#v, want ToggleTaskMsg{b}", cmd())
	}

	_, cmd = m.Update(runes("d"))
	if got, ok := cmd().(DeleteTaskMsg); !ok || got.ID != "b" {
		t.Errorf("delete msg = %#v, want DeleteTaskMsg{b}", cmd())
	}
}

func TestQuickAddUsesConfiguredAmounts(t *testing.T) {
	m := newTestDashboard()

	tests := []struct {
		key  string
		want int
	}{
		{"1", 250},
		{"2", 500},
	}
	for _, tt := range tests {
		_, cmd := m.Update(runes(tt.key))
		if cmd == nil {
			t.Fatalf("%s: no command", tt.key)
		}
		got, ok := cmd().(AddWaterMsg)
		if !ok || got.Amount != tt.want {
			t.Errorf("%s: msg = %#v, want AddWaterMsg{%d}", tt.key, cmd(), tt.want)
		}
	}
}

func TestToggleWithNoTasksIsNoop(t *testing.T) {
	m := newTestDashboard()
	m.SetRecord(model.NewDailyRecord("2026-10-16", 2000))

	if _, cmd := m.Update(runes("x")); cmd != nil {
		t.Errorf("toggle on empty list returned %#v", cmd())
	}
}

func TestSetRecordClampsCursor(t *testing.T) {
	m := newTestDashboard()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	rec := m.Record().Clone()
	rec.Tasks = rec.Tasks[:1]
	rec.Recompute()
	m.SetRecord(rec)

	task, ok := m.SelectedTask()
	if !ok || task.ID != "a" {
		t.Errorf("SelectedTask = %v, %v; want a", task.ID, ok)
	}
}

func TestNotesEditEmitsChanges(t *testing.T) {
	m := newTestDashboard()

	m, _ = m.Update(runes("e"))
	if !m.Editing() {
		t.Fatal("e did not open the notes editor")
	}

	m, cmd := m.Update(runes("h"))
	if cmd == nil {
		t.Fatal("typing produced no command")
	}
	var got []NotesChangedMsg
	collect(cmd, func(msg tea.Msg) {
		if n, ok := msg.(NotesChangedMsg); ok {
			got = append(got, n)
		}
	})
	if len(got) != 1 || got[0].Notes != "h" {
		t.Errorf("notes messages = %+v, want one with %q", got, "h")
	}

	// Keys that would act on tasks go to the editor instead.
	_, cmd = m.Update(runes("x"))
	collect(cmd, func(msg tea.Msg) {
		if _, ok := msg.(ToggleTaskMsg); ok {
			t.Error("toggle fired while editing notes")
		}
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Editing() {
		t.Error("esc did not close the notes editor")
	}
}

func TestViewShowsCountdownAndTasks(t *testing.T) {
	m := newTestDashboard()
	out := m.View()

	for _, want := range []string{"Birthday Countdown", "Discipline Goal", "Read chapter", "Water 0 / 2,000 ml"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewShowsBirthdayWhenExpired(t *testing.T) {
	m := newTestDashboard()
	m.SetNow(time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC))

	if out := m.View(); !strings.Contains(out, "Happy Birthday") {
		t.Error("expired birthday countdown not shown")
	}
}

// collect runs cmd, expanding batches, and passes every message to fn.
// Blink and other timer commands are skipped.
func collect(cmd tea.Cmd, fn func(tea.Msg)) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			collect(c, fn)
		}
		return
	}
	fn(msg)
}
