package compiler

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/provider/providertest"
)

var (
	jest = provider.TestFramework{
		ID: "jest", Dir: "__tests__", FileSuffix: ".test",
		TestFunc: "test", Expect: "expect", Equal: "toEqual",
	}
	mocha = provider.TestFramework{
		ID: "mocha", Dir: "test", FileSuffix: "Test",
		TestFunc: "it", Expect: "expect", Equal: "to.deep.equal",
		Import: "import { expect } from 'chai'",
	}
)

func TestBabelInstall(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		want     any
	}{
		{name: "fresh", want: babelConfig},
		{name: "string extends", existing: `{"extends": "airbnb"}`, want: []any{babelConfig, "airbnb"}},
		{name: "list extends", existing: `{"extends": ["a", "b"]}`, want: []any{babelConfig, "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := providertest.Env()
			if tt.existing != "" {
				if err := env.FS.WriteFile("/p/.babelrc", tt.existing); err != nil {
					t.Fatal(err)
				}
			}
			pm := providertest.Packages()
			tasks := &providertest.Tasks{}

			if err := NewBabel(env).Install(context.Background(), "/p", pm, tasks); err != nil {
				t.Fatalf("Install() error: %v", err)
			}

			rc, err := env.FS.ReadStructured("/p/.babelrc")
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(rc["extends"], tt.want) {
				t.Errorf("extends = %#v, want %#v", rc["extends"], tt.want)
			}
			if got, _ := tasks.Command("build"); got != "babel src --out-dir dist" {
				t.Errorf("build task = %q", got)
			}
			if want := []string{"babel-cli", "tweed-babel-config"}; !reflect.DeepEqual(pm.Requests().Dev(), want) {
				t.Errorf("dev requests = %v, want %v", pm.Requests().Dev(), want)
			}
			ignore, _ := env.FS.ReadFile("/p/.gitignore")
			if !strings.Contains(ignore, "dist") {
				t.Errorf(".gitignore = %q, want dist listed", ignore)
			}
		})
	}
}

func TestBabelInstallWithoutTaskRunner(t *testing.T) {
	env := providertest.Env()
	if err := NewBabel(env).Install(context.Background(), "/p", providertest.Packages(), nil); err != nil {
		t.Fatalf("Install() error: %v", err)
	}
}

func TestTypeScriptInstall(t *testing.T) {
	env := providertest.Env()
	_ = env.FS.WriteFile("/p/tsconfig.json", `{"extends": "./base", "compilerOptions": {"strict": true}}`)
	tasks := &providertest.Tasks{}

	if err := NewTypeScript(env).Install(context.Background(), "/p", providertest.Packages(), tasks); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	cfg, _ := env.FS.ReadStructured("/p/tsconfig.json")
	if cfg["extends"] != "./base" {
		t.Errorf("extends = %v, want the existing value kept", cfg["extends"])
	}
	if opts, _ := cfg["compilerOptions"].(map[string]any); opts["strict"] != true {
		t.Errorf("compilerOptions = %v, want existing options kept", cfg["compilerOptions"])
	}
	if want := []any{"src/**/*.ts", "src/**/*.tsx"}; !reflect.DeepEqual(cfg["include"], want) {
		t.Errorf("include = %v", cfg["include"])
	}
	if got, _ := tasks.Command("build"); got != "tsc" {
		t.Errorf("build task = %q, want tsc", got)
	}
}

func TestManipulateBundlerConfig(t *testing.T) {
	env := providertest.Env()
	tests := []struct {
		compiler provider.Compiler
		loader   string
		exts     []string
		dev      []string
	}{
		{NewBabel(env), "babel-loader", []string{".js"}, []string{"babel-loader"}},
		{NewTypeScript(env), "ts-loader", []string{".js", ".ts", ".tsx"}, []string{"ts-loader"}},
	}

	for _, tt := range tests {
		t.Run(tt.compiler.ID(), func(t *testing.T) {
			cfg := &provider.BundlerConfig{Extensions: []string{".js"}}
			pm := providertest.Packages()
			tt.compiler.ManipulateBundlerConfig(cfg, pm)

			if len(cfg.Rules) != 1 || cfg.Rules[0].Loader != tt.loader {
				t.Errorf("Rules = %+v, want one %s rule", cfg.Rules, tt.loader)
			}
			if !reflect.DeepEqual(cfg.Extensions, tt.exts) {
				t.Errorf("Extensions = %v, want %v", cfg.Extensions, tt.exts)
			}
			if !reflect.DeepEqual(pm.Requests().Dev(), tt.dev) {
				t.Errorf("dev requests = %v, want %v", pm.Requests().Dev(), tt.dev)
			}
		})
	}
}

func TestTestScaffold(t *testing.T) {
	tests := []struct {
		name      string
		compiler  func(provider.Env) provider.Compiler
		framework provider.TestFramework
		pragma    string
		file      string
		prefix    string
		dev       []string
	}{
		{
			name:      "babel jest with pragma",
			compiler:  func(e provider.Env) provider.Compiler { return NewBabel(e) },
			framework: jest,
			pragma:    "/** @jsx Node */",
			file:      "/p/__tests__/App.test.js",
			prefix:    "/** @jsx Node */\nimport { Node } from 'tweed'\n",
			dev:       []string{"babel-jest"},
		},
		{
			name:      "babel mocha",
			compiler:  func(e provider.Env) provider.Compiler { return NewBabel(e) },
			framework: mocha,
			file:      "/p/test/AppTest.js",
			prefix:    "import { expect } from 'chai'\nimport { Node } from 'tweed'\n",
			dev:       []string{"babel-register"},
		},
		{
			name:      "typescript mocha",
			compiler:  func(e provider.Env) provider.Compiler { return NewTypeScript(e) },
			framework: mocha,
			file:      "/p/test/AppTest.tsx",
			prefix:    "import { expect } from 'chai'\nimport { VirtualNode } from 'tweed'\n",
			dev:       []string{"ts-node", "@types/mocha", "@types/chai"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := providertest.Env()
			pm := providertest.Packages()
			req := provider.TestScaffoldRequest{
				Framework: tt.framework,
				Dir:       "/p",
				Packages:  pm,
				Tasks:     &providertest.Tasks{},
			}
			if tt.pragma != "" {
				req.Linter = &providertest.Linter{Pragma: tt.pragma}
			}

			if err := tt.compiler(env).TestScaffold(context.Background(), req); err != nil {
				t.Fatalf("TestScaffold() error: %v", err)
			}

			got, err := env.FS.ReadFile(tt.file)
			if err != nil {
				t.Fatalf("reading %s: %v", tt.file, err)
			}
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("%s starts with:\n%s\nwant prefix:\n%s", tt.file, got, tt.prefix)
			}
			if !reflect.DeepEqual(pm.Requests().Dev(), tt.dev) {
				t.Errorf("dev requests = %v, want %v", pm.Requests().Dev(), tt.dev)
			}
		})
	}
}

func TestTypeScriptJestConfig(t *testing.T) {
	env := providertest.Env()
	_ = env.FS.WriteFile("/p/package.json", `{"name": "demo"}`)
	req := provider.TestScaffoldRequest{Framework: jest, Dir: "/p", Packages: providertest.Packages()}

	if err := NewTypeScript(env).TestScaffold(context.Background(), req); err != nil {
		t.Fatalf("TestScaffold() error: %v", err)
	}

	pkg, _ := env.FS.ReadStructured("/p/package.json")
	cfg, ok := pkg["jest"].(map[string]any)
	if !ok {
		t.Fatalf("jest = %v, want an object", pkg["jest"])
	}
	if cfg["testRegex"] != `/__tests__/.*\.(ts|tsx|js)$` {
		t.Errorf("testRegex = %v", cfg["testRegex"])
	}
	if pkg["name"] != "demo" {
		t.Error("existing manifest keys must be kept")
	}
	if !env.FS.Exists("/p/__tests__/App.test.tsx") {
		t.Error("starter test not written")
	}
}

func TestTypeScriptMochaTask(t *testing.T) {
	env := providertest.Env()
	tasks := &providertest.Tasks{}
	tasks.Add("test", "mocha")
	req := provider.TestScaffoldRequest{Framework: mocha, Dir: "/p", Packages: providertest.Packages(), Tasks: tasks}

	if err := NewTypeScript(env).TestScaffold(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if got, _ := tasks.Command("test"); got != "mocha --require ts-node/register test/**/*.ts*" {
		t.Errorf("test task = %q", got)
	}
}

func TestBabelMochaRequiresRegister(t *testing.T) {
	env := providertest.Env()
	_ = env.FS.WriteFile("/p/.mocharc.yml", "spec: test/**/*.js\n")
	req := provider.TestScaffoldRequest{Framework: mocha, Dir: "/p", Packages: providertest.Packages()}

	if err := NewBabel(env).TestScaffold(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	rc, err := env.FS.ReadStructured("/p/.mocharc.yml")
	if err != nil {
		t.Fatal(err)
	}
	if rc["require"] != "babel-register" || rc["spec"] != "test/**/*.js" {
		t.Errorf(".mocharc.yml = %v", rc)
	}
}

func TestExistingTestIsKept(t *testing.T) {
	env := providertest.Env()
	_ = env.FS.WriteFile("/p/__tests__/App.test.js", "// mine\n")
	req := provider.TestScaffoldRequest{Framework: jest, Dir: "/p", Packages: providertest.Packages()}

	if err := NewBabel(env).TestScaffold(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if got, _ := env.FS.ReadFile("/p/__tests__/App.test.js"); got != "// mine\n" {
		t.Errorf("existing test overwritten: %q", got)
	}
}

func TestStarterSources(t *testing.T) {
	env := providertest.Env()
	for _, c := range []provider.Compiler{NewBabel(env), NewTypeScript(env)} {
		main, err := c.Main()
		if err != nil || main == "" {
			t.Errorf("%s Main() = %q, %v", c.ID(), main, err)
		}
		app, err := c.App("")
		if err != nil || !strings.Contains(app, "export default class App") {
			t.Errorf("%s App() = %q, %v", c.ID(), app, err)
		}
	}
}

func TestBabelInstallIsRepeatable(t *testing.T) {
	env := providertest.Env()
	_ = env.FS.WriteFile("/p/.babelrc", `{"extends": "airbnb"}`)
	b := NewBabel(env)

	for i := 0; i < 2; i++ {
		if err := b.Install(context.Background(), "/p", providertest.Packages(), nil); err != nil {
			t.Fatal(err)
		}
	}
	rc, _ := env.FS.ReadStructured("/p/.babelrc")
	if want := []any{babelConfig, "airbnb"}; !reflect.DeepEqual(rc["extends"], want) {
		t.Errorf("extends = %#v, want %#v", rc["extends"], want)
	}
}
