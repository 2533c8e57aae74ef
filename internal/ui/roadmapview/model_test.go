package roadmapview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Devdeep8/let-s-do-it/internal/keys"
	"github.com/Devdeep8/let-s-do-it/internal/roadmap"
)

func TestToggleEmitsInvertedState(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("toggle produced no command")
	}
	got, ok := cmd().(SetTaskStateMsg)
	want := SetTaskStateMsg{Stage: "step1", Key: "fundamentals", Completed: true}
	if !ok || got != want {
		t.Fatalf("msg = %#v, want %#v", got, want)
	}

	p := roadmap.NewProgress()
	p.Stages["step1"]["fundamentals"] = true
	m.SetProgress(p)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if got := cmd().(SetTaskStateMsg); got.Completed {
		t.Errorf("second toggle Completed = true, want false")
	}
}

func TestCursorCrossesStages(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	for i := 0; i < 3; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	got := cmd().(SetTaskStateMsg)
	if got.Stage != "step2" || got.Key != "intermediateTopics" {
		t.Errorf("leaf = %s.%s, want step2.intermediateTopics", got.Stage, got.Key)
	}
}

func TestCursorStopsAtLastLeaf(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	for i := 0; i < 50; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if got := cmd().(SetTaskStateMsg); got.Key != "networking" {
		t.Errorf("last leaf = %s, want networking", got.Key)
	}
}

func TestBackEmitsBackMsg(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Errorf("esc msg = %#v, want BackMsg", cmd())
	}
}

func TestViewListsStages(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 120, 200)
	out := m.View()
	for _, stage := range roadmap.Schema {
		if !strings.Contains(out, stage.Title) {
			t.Errorf("view missing %q", stage.Title)
		}
	}
}
