package provider

import "strings"

// TaskTable is an insertion-ordered table of named shell commands.
type TaskTable struct {
	names    []string
	commands map[string]string

	// extends marks commands composed onto nothing. They still run ahead of
	// a command the project already persists under the same name.
	extends map[string]bool
}

// Add sets name to command. A replaced command keeps its original position.
func (t *TaskTable) Add(name, command string) {
	t.set(name, command)
	delete(t.extends, name)
}

func (t *TaskTable) set(name, command string) {
	if t.commands == nil {
		t.commands = make(map[string]string)
	}
	if _, ok := t.commands[name]; !ok {
		t.names = append(t.names, name)
	}
	t.commands[name] = command
}

// Compose runs command before whatever name already holds, joined with &&.
// With nothing registered the command is also composed onto the persisted
// one when the table is installed; see Persisted.
func (t *TaskTable) Compose(name, command string) {
	if prior, ok := t.Get(name); ok && prior != "" {
		t.set(name, command+" && "+prior)
		return
	}
	t.set(name, command)
	if t.extends == nil {
		t.extends = make(map[string]bool)
	}
	t.extends[name] = true
}

// Extends reports whether the command under name was composed onto nothing
// and so belongs in front of a persisted command of the same name.
func (t *TaskTable) Extends(name string) bool {
	return t.extends[name]
}

// Persisted returns the command to store for name given the command the
// project already stores. Added commands replace it; composed ones run
// before it unless it already starts with them.
func (t *TaskTable) Persisted(name, current string) string {
	cmd, _ := t.Get(name)
	switch {
	case !t.Extends(name) || current == "":
		return cmd
	case current == cmd || strings.HasPrefix(current, cmd+" && "):
		return current
	default:
		return cmd + " && " + current
	}
}

// Get returns the command registered under name.
func (t *TaskTable) Get(name string) (string, bool) {
	cmd, ok := t.commands[name]
	return cmd, ok
}

// Names returns task names in registration order.
func (t *TaskTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of tasks.
func (t *TaskTable) Len() int {
	return len(t.names)
}
