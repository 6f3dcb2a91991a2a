package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
)

type stubLinter struct{ id string }

func (s stubLinter) ID() string                { return s.id }
func (s stubLinter) Name() string              { return strings.ToUpper(s.id) }
func (s stubLinter) JSXPragma(Compiler) string { return "" }
func (s stubLinter) Install(context.Context, string, pkgmanager.Installer, TaskRunner, Compiler, TestRunner) error {
	return nil
}

func TestLookup(t *testing.T) {
	linters := []Linter{stubLinter{"standard"}, stubLinter{"eslint"}}

	got, err := Lookup(FamilyLinter, linters, "eslint")
	if err != nil {
		t.Fatalf("Lookup(eslint) error: %v", err)
	}
	if got.ID() != "eslint" {
		t.Errorf("Lookup(eslint) = %s", got.ID())
	}

	got, err = Lookup(FamilyLinter, linters, None)
	if err != nil || got != nil {
		t.Errorf("Lookup(none) = %v, %v; want nil, nil", got, err)
	}
}

func TestLookupUnknown(t *testing.T) {
	linters := []Linter{stubLinter{"standard"}}

	_, err := Lookup(FamilyLinter, linters, "rust")
	var unknown *UnknownIDError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *UnknownIDError", err)
	}
	if unknown.ID != "rust" || unknown.Family != FamilyLinter {
		t.Errorf("unknown = %+v", unknown)
	}
	msg := err.Error()
	for _, want := range []string{`"rust"`, "standard", "'none'"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not mention %s", msg, want)
		}
	}
}

func TestRegistryValidate(t *testing.T) {
	tests := []struct {
		name    string
		linters []Linter
		wantErr bool
	}{
		{name: "unique", linters: []Linter{stubLinter{"standard"}, stubLinter{"eslint"}}},
		{name: "duplicate", linters: []Linter{stubLinter{"standard"}, stubLinter{"standard"}}, wantErr: true},
		{name: "empty id", linters: []Linter{stubLinter{""}}, wantErr: true},
		{name: "reserved", linters: []Linter{stubLinter{None}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Registry{Linters: tt.linters}
			if err := r.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInstallOrder(t *testing.T) {
	order := InstallOrder()
	if order[0] != FamilyCompiler || order[len(order)-1] != FamilyTaskRunner {
		t.Errorf("InstallOrder() = %v", order)
	}
}
