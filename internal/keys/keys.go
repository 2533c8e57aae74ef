package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Task actions
	Toggle  key.Binding
	Delete  key.Binding
	NewTask key.Binding

	// Water
	QuickWater  key.Binding
	QuickWater2 key.Binding
	CustomWater key.Binding

	// Notes editing
	EditNotes key.Binding

	// Roadmap detail
	Roadmap key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete task"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		QuickWater: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "quick water"),
		),
		QuickWater2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "quick water (large)"),
		),
		CustomWater: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "log water"),
		),
		EditNotes: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit notes"),
		),
		Roadmap: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "roadmap"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Toggle, k.NewTask,
		k.QuickWater, k.Roadmap, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Back, k.Quit},
		{k.Toggle, k.Delete, k.NewTask, k.EditNotes},
		{k.QuickWater, k.QuickWater2, k.CustomWater},
		{k.Roadmap, k.Command, k.Help},
	}
}
