package taskrunner

import (
	"context"
	"path/filepath"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/provider"
)

// NPM persists tasks as package.json scripts.
type NPM struct {
	env   provider.Env
	table provider.TaskTable
}

// NewNPM returns the npm scripts task runner.
func NewNPM(env provider.Env) *NPM {
	return &NPM{env: env}
}

func (n *NPM) ID() string   { return "npm" }
func (n *NPM) Name() string { return "NPM scripts" }

func (n *NPM) Add(name, command string) { n.table.Add(name, command) }

func (n *NPM) Command(name string) (string, bool) { return n.table.Get(name) }

func (n *NPM) Tasks() *provider.TaskTable { return &n.table }

// Usage returns "npm run <name>", using npm's shorthands for test and start.
func (n *NPM) Usage(name string) string {
	switch name {
	case "test", "start":
		return "npm " + name
	default:
		return "npm run " + name
	}
}

// Install merges the task table into the manifest's scripts. Added tasks
// replace scripts of the same name, composed tasks run before them, and
// unrelated scripts are kept.
func (n *NPM) Install(_ context.Context, dir string) error {
	if n.table.Len() == 0 {
		n.env.Log.Fine("No scripts to add")
		return nil
	}
	return n.env.FS.Update(filepath.Join(dir, provider.ManifestFile), func(pkg filesystem.Document) error {
		scripts := filesystem.Section(pkg, "scripts")
		for _, name := range n.table.Names() {
			current, _ := scripts[name].(string)
			cmd := n.table.Persisted(name, current)
			n.env.Log.Fine("Adding script %s: %s", name, cmd)
			scripts[name] = cmd
		}
		return nil
	})
}
