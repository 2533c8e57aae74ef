package entryform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Devdeep8/let-s-do-it/internal/model"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"250", false},
		{" 330ml ", false},
		{"0", true},
		{"-5", true},
		{"lots", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := validateAmount(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateAmount(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	v := validateRequired("Task")
	if err := v("   "); err == nil {
		t.Error("blank text accepted")
	}
	if err := v("Read"); err != nil {
		t.Errorf("Read rejected: %v", err)
	}
}

func TestSubmitTask(t *testing.T) {
	m := New(80, 24)
	m.StartTask()
	m.fb.text = "  Review PR  "
	m.fb.category = string(model.CategoryDevelopment)

	got, ok := m.handleSubmit()().(TaskSubmittedMsg)
	if !ok {
		t.Fatal("submit did not produce TaskSubmittedMsg")
	}
	want := TaskSubmittedMsg{Text: "Review PR", Category: model.CategoryDevelopment}
	if got != want {
		t.Errorf("submitted %+v, want %+v", got, want)
	}
}

func TestSubmitWater(t *testing.T) {
	m := New(80, 24)
	m.StartWater()
	if m.Kind() != KindWater {
		t.Fatalf("Kind = %v, want KindWater", m.Kind())
	}
	m.fb.amount = "330 ml"

	got, ok := m.handleSubmit()().(WaterSubmittedMsg)
	if !ok || got.Amount != 330 {
		t.Errorf("submitted %#v, want WaterSubmittedMsg{330}", got)
	}
}

func TestStartResetsBindings(t *testing.T) {
	m := New(80, 24)
	m.fb.text = "left over"
	m.fb.category = string(model.CategoryPersonal)

	m.StartTask()
	if m.fb.text != "" || m.fb.category != string(model.CategoryOther) {
		t.Errorf("bindings not reset: %+v", *m.fb)
	}
}

func TestEscCancels(t *testing.T) {
	for _, start := range []func(*Model) tea.Cmd{(*Model).StartTask, (*Model).StartWater} {
		m := New(80, 24)
		start(&m)

		m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if cmd == nil {
			t.Fatal("esc returned no command")
		}
		if _, ok := cmd().(CancelMsg); !ok {
			t.Error("esc did not produce CancelMsg")
		}
		if m.form != nil {
			t.Error("form still active after esc")
		}
	}
}
