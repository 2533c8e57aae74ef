package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/ui/command"
)

// Every action runs synchronously inside Update. The recorder and tracker
// return the previous value when a write fails, so the displayed state
// always matches what was last persisted.

// applyRecord installs rec and reports err, if any.
func (m *Model) applyRecord(rec model.DailyRecord, err error) {
	if err != nil {
		m.reportError(err)
	} else {
		m.status = ""
	}
	m.record = rec
	m.dashboard.SetRecord(rec)
}

// addTask appends a task to today's record.
func (m *Model) addTask(text string, category model.Category) {
	m.applyRecord(m.recorder.AddTask(context.Background(), m.record, text, category))
}

// toggleTask flips a task between open and complete.
func (m *Model) toggleTask(id string) {
	m.applyRecord(m.recorder.ToggleTask(context.Background(), m.record, id))
}

// deleteTask removes a task from today's record.
func (m *Model) deleteTask(id string) {
	m.applyRecord(m.recorder.DeleteTask(context.Background(), m.record, id))
}

// addWater logs a drink.
func (m *Model) addWater(ml int) {
	m.applyRecord(m.recorder.AddWater(context.Background(), m.record, ml))
}

// addWaterInput logs a drink from free text such as "330ml".
func (m *Model) addWaterInput(raw string) {
	m.applyRecord(m.recorder.AddWaterInput(context.Background(), m.record, raw))
}

// updateNotes replaces today's notes.
func (m *Model) updateNotes(text string) {
	m.applyRecord(m.recorder.UpdateNotes(context.Background(), m.record, text))
}

// appendNote adds a line to today's notes.
func (m *Model) appendNote(line string) {
	notes := m.record.Notes
	if strings.TrimSpace(notes) != "" {
		notes += "\n"
	}
	m.updateNotes(notes + line)
}

// reloadDay switches to the record for the current day, creating it if
// needed.
func (m *Model) reloadDay() {
	day := m.recorder.Today()
	if day == m.record.Date {
		return
	}
	rec, err := m.recorder.LoadOrInitialize(context.Background(), day)
	if err != nil {
		m.reportError(err)
		return
	}
	m.applyRecord(rec, nil)
}

// setRoadmapTask marks a roadmap leaf.
func (m *Model) setRoadmapTask(stage, key string, completed bool) {
	p, err := m.tracker.SetTaskState(context.Background(), m.progress, stage, key, completed)
	if err != nil {
		m.reportError(err)
	} else {
		m.status = ""
	}
	m.progress = p
	m.roadmapView.SetProgress(p)
}

// resetRoadmap clears all roadmap progress.
func (m *Model) resetRoadmap() {
	p, err := m.tracker.Reset(context.Background())
	if err != nil {
		m.reportError(err)
		return
	}
	m.status = "roadmap progress reset"
	m.progress = p
	m.roadmapView.SetProgress(p)
}

// enterForm switches to the form view. Closing the form returns to the
// roadmap or the dashboard, never to an overlay.
func (m *Model) enterForm() {
	m.previousView = ViewDashboard
	if m.currentView == ViewRoadmap {
		m.previousView = ViewRoadmap
	}
	m.currentView = ViewForm
}

// openTaskForm switches to the new-task form.
func (m *Model) openTaskForm() tea.Cmd {
	m.enterForm()
	return m.entryForm.StartTask()
}

// openWaterForm switches to the custom water form.
func (m *Model) openWaterForm() tea.Cmd {
	m.enterForm()
	return m.entryForm.StartWater()
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(line string) tea.Cmd {
	name, arg, ok := command.Parse(line)
	if !ok {
		m.status = fmt.Sprintf("unknown command: %s", line)
		return nil
	}

	switch name {
	case command.NameDashboard:
		m.currentView = ViewDashboard
	case command.NameRoadmap:
		m.currentView = ViewRoadmap
	case command.NameTask:
		if arg == "" {
			return m.openTaskForm()
		}
		m.addTask(arg, model.CategoryOther)
	case command.NameWater:
		if arg == "" {
			return m.openWaterForm()
		}
		m.addWaterInput(arg)
	case command.NameNotes:
		if arg == "" {
			m.currentView = ViewDashboard
			return m.dashboard.StartEditing()
		}
		m.appendNote(arg)
	case command.NameResetRoadmap:
		m.resetRoadmap()
	case command.NameHelp:
		m.previousView = m.currentView
		m.currentView = ViewHelp
	case command.NameQuit:
		return m.quit()
	}
	return nil
}
