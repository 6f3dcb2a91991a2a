package taskrunner

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tweedjs/tweed-cli/internal/provider"
)

// Make persists tasks as phony Makefile targets.
type Make struct {
	env   provider.Env
	table provider.TaskTable
}

// NewMake returns the Makefile task runner.
func NewMake(env provider.Env) *Make {
	return &Make{env: env}
}

func (m *Make) ID() string   { return "make" }
func (m *Make) Name() string { return "Makefile" }

func (m *Make) Add(name, command string) { m.table.Add(name, command) }

func (m *Make) Command(name string) (string, bool) { return m.table.Get(name) }

func (m *Make) Tasks() *provider.TaskTable { return &m.table }

func (m *Make) Usage(name string) string { return "make " + name }

// Install appends a target for every task to the Makefile. Targets the
// Makefile already defines are left alone, except that a composed task
// gets its command prepended to the existing recipe.
func (m *Make) Install(_ context.Context, dir string) error {
	path := filepath.Join(dir, "Makefile")

	var existing string
	if m.env.FS.Exists(path) {
		text, err := m.env.FS.ReadFile(path)
		if err != nil {
			return err
		}
		existing = text
	}
	defined := targets(existing)

	updated := existing
	var b strings.Builder
	for _, name := range m.table.Names() {
		cmd, _ := m.table.Get(name)
		switch {
		case defined[name] && m.table.Extends(name):
			m.env.Log.Fine("Prepending %s to the %s target", cmd, name)
			updated = prependRecipe(updated, name, cmd)
		case defined[name]:
			m.env.Log.Fine("The Makefile already has a %s target. Skipping.", name)
		default:
			fmt.Fprintf(&b, ".PHONY: %s\n%s:\n\t%s\n", name, name, cmd)
		}
	}
	if b.Len() == 0 {
		if updated == existing {
			return nil
		}
		return m.env.FS.WriteFile(path, updated)
	}

	if updated == "" {
		return m.env.FS.WriteFile(path, b.String())
	}
	return m.env.FS.WriteFile(path, strings.TrimRight(updated, "\n")+"\n\n"+b.String())
}

// prependRecipe inserts cmd as the first recipe line of the named target,
// unless it already is.
func prependRecipe(makefile, name, cmd string) string {
	lines := strings.Split(makefile, "\n")
	for i, line := range lines {
		if line == "" || line[0] == '\t' {
			continue
		}
		target, _, ok := strings.Cut(line, ":")
		if !ok || target != name {
			continue
		}
		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == cmd {
			return makefile
		}
		out := make([]string, 0, len(lines)+1)
		out = append(out, lines[:i+1]...)
		out = append(out, "\t"+cmd)
		out = append(out, lines[i+1:]...)
		return strings.Join(out, "\n")
	}
	return makefile
}

// targets returns the rule names defined at the start of a line.
func targets(makefile string) map[string]bool {
	found := make(map[string]bool)
	sc := bufio.NewScanner(strings.NewReader(makefile))
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '\t' || line[0] == '.' || line[0] == '#' {
			continue
		}
		name, _, ok := strings.Cut(line, ":")
		if !ok || strings.ContainsAny(name, "=$ ") {
			continue
		}
		found[name] = true
	}
	return found
}
