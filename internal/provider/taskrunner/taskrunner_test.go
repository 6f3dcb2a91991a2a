package taskrunner

import (
	"context"
	"testing"

	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/provider/providertest"
)

func TestUsage(t *testing.T) {
	env := providertest.Env()
	tests := []struct {
		runner provider.TaskRunner
		task   string
		want   string
	}{
		{NewNPM(env), "dev", "npm run dev"},
		{NewNPM(env), "test", "npm test"},
		{NewNPM(env), "start", "npm start"},
		{NewMake(env), "dev", "make dev"},
		{NewMake(env), "test", "make test"},
	}
	for _, tt := range tests {
		if got := tt.runner.Usage(tt.task); got != tt.want {
			t.Errorf("%s Usage(%s) = %q, want %q", tt.runner.ID(), tt.task, got, tt.want)
		}
	}
}

func TestNPMInstall(t *testing.T) {
	env := providertest.Env()
	_ = env.FS.WriteFile("/p/package.json", `{"name": "demo", "scripts": {"lint": "eslint .", "build": "old"}}`)

	n := NewNPM(env)
	n.Add("build", "NODE_ENV=production webpack")
	n.Add("dev", "webpack-dev-server")

	if err := n.Install(context.Background(), "/p"); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	pkg, _ := env.FS.ReadStructured("/p/package.json")
	scripts := pkg["scripts"].(map[string]any)
	want := map[string]any{
		"lint":  "eslint .",
		"build": "NODE_ENV=production webpack",
		"dev":   "webpack-dev-server",
	}
	for k, v := range want {
		if scripts[k] != v {
			t.Errorf("scripts.%s = %v, want %v", k, scripts[k], v)
		}
	}
	if pkg["name"] != "demo" {
		t.Error("manifest name lost")
	}
}

func TestNPMInstallNothing(t *testing.T) {
	env := providertest.Env()
	if err := NewNPM(env).Install(context.Background(), "/p"); err != nil {
		t.Fatal(err)
	}
	if env.FS.Exists("/p/package.json") {
		t.Error("an empty table should not touch the manifest")
	}
}

func TestMakeInstall(t *testing.T) {
	env := providertest.Env()
	m := NewMake(env)
	m.Add("build", "NODE_ENV=production webpack")
	m.Add("test", "standard && jest")

	if err := m.Install(context.Background(), "/p"); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	got, _ := env.FS.ReadFile("/p/Makefile")
	want := ".PHONY: build\nbuild:\n\tNODE_ENV=production webpack\n" +
		".PHONY: test\ntest:\n\tstandard && jest\n"
	if got != want {
		t.Errorf("Makefile =\n%q\nwant\n%q", got, want)
	}
}

func TestMakeAppendsToExisting(t *testing.T) {
	env := providertest.Env()
	_ = env.FS.WriteFile("/p/Makefile", "CC = gcc\n\nclean:\n\trm -rf dist\n\n")

	m := NewMake(env)
	m.Add("clean", "rm -rf public/main.bundle.js")
	m.Add("dev", "webpack-dev-server")

	if err := m.Install(context.Background(), "/p"); err != nil {
		t.Fatal(err)
	}

	got, _ := env.FS.ReadFile("/p/Makefile")
	want := "CC = gcc\n\nclean:\n\trm -rf dist\n\n" +
		".PHONY: dev\ndev:\n\twebpack-dev-server\n"
	if got != want {
		t.Errorf("Makefile =\n%q\nwant\n%q", got, want)
	}

	// A second run finds every target defined.
	if err := m.Install(context.Background(), "/p"); err != nil {
		t.Fatal(err)
	}
	again, _ := env.FS.ReadFile("/p/Makefile")
	if again != got {
		t.Errorf("second install changed the Makefile:\n%q", again)
	}
}

func TestTargets(t *testing.T) {
	got := targets("VAR := x\n.PHONY: a\na:\n\techo\nb: a\n# c:\n")
	if !got["a"] || !got["b"] || got["c"] || got[".PHONY"] || got["VAR "] || len(got) != 2 {
		t.Errorf("targets() = %v", got)
	}
}

func TestNPMComposesOntoExistingScript(t *testing.T) {
	env := providertest.Env()
	_ = env.FS.WriteFile("/p/package.json", `{"name": "demo", "scripts": {"test": "mocha"}}`)

	n := NewNPM(env)
	n.Tasks().Compose("test", "standard")

	for run := 1; run <= 2; run++ {
		if err := n.Install(context.Background(), "/p"); err != nil {
			t.Fatalf("Install() run %d error: %v", run, err)
		}
		pkg, _ := env.FS.ReadStructured("/p/package.json")
		scripts := pkg["scripts"].(map[string]any)
		if got := scripts["test"]; got != "standard && mocha" {
			t.Errorf("run %d: scripts.test = %v, want %q", run, got, "standard && mocha")
		}
	}
}

func TestMakeComposesOntoExistingTarget(t *testing.T) {
	env := providertest.Env()
	_ = env.FS.WriteFile("/p/Makefile", ".PHONY: test\ntest: build\n\tmocha\n")

	m := NewMake(env)
	m.Tasks().Compose("test", "standard")
	m.Add("dev", "webpack-dev-server")

	want := ".PHONY: test\ntest: build\n\tstandard\n\tmocha\n\n" +
		".PHONY: dev\ndev:\n\twebpack-dev-server\n"
	for run := 1; run <= 2; run++ {
		if err := m.Install(context.Background(), "/p"); err != nil {
			t.Fatalf("Install() run %d error: %v", run, err)
		}
		got, _ := env.FS.ReadFile("/p/Makefile")
		if got != want {
			t.Errorf("run %d: Makefile =\n%q\nwant\n%q", run, got, want)
		}
	}
}
