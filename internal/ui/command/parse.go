package command

import "strings"

// Name identifies a palette command.
type Name string

const (
	NameDashboard    Name = "dashboard"
	NameRoadmap      Name = "roadmap"
	NameTask         Name = "task"
	NameWater        Name = "water"
	NameNotes        Name = "notes"
	NameResetRoadmap Name = "reset roadmap"
	NameHelp         Name = "help"
	NameQuit         Name = "quit"
)

// Names lists every command in the order the help view shows them.
var Names = []Name{
	NameDashboard,
	NameRoadmap,
	NameTask,
	NameWater,
	NameNotes,
	NameResetRoadmap,
	NameHelp,
	NameQuit,
}

var aliases = map[string]Name{
	"home": NameDashboard,
	"dsa":  NameRoadmap,
	"todo": NameTask,
	"q":    NameQuit,
	"exit": NameQuit,
}

// Strings returns Names as plain strings for completion and help.
func Strings() []string {
	out := make([]string, len(Names))
	for i, n := range Names {
		out[i] = string(n)
	}
	return out
}

// Parse splits a palette line into a command and its argument. The
// argument keeps its original case. ok is false for unknown commands.
func Parse(line string) (name Name, arg string, ok bool) {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)

	// Multi-word commands first.
	if lower == string(NameResetRoadmap) {
		return NameResetRoadmap, "", true
	}

	head, rest, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(rest)
	head = strings.ToLower(head)

	if n, found := aliases[head]; found {
		return n, arg, true
	}
	for _, n := range Names {
		if string(n) == head {
			return n, arg, true
		}
	}
	return "", "", false
}
