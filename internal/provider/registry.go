package provider

import (
	"fmt"
	"strings"
)

// None is the id that deselects an optional family.
const None = "none"

// Family names a provider family.
type Family string

// Provider families in installation order.
const (
	FamilyCompiler   Family = "compiler"
	FamilyBundler    Family = "bundler"
	FamilyTestRunner Family = "test runner"
	FamilyLinter     Family = "linter"
	FamilyTaskRunner Family = "task runner"
)

// InstallOrder is the fixed order in which families are installed.
func InstallOrder() []Family {
	return []Family{FamilyCompiler, FamilyBundler, FamilyTestRunner, FamilyLinter, FamilyTaskRunner}
}

// Registry holds the known providers of every family, in display order.
type Registry struct {
	Compilers   []Compiler
	Bundlers    []Bundler
	TaskRunners []TaskRunner
	TestRunners []TestRunner
	Linters     []Linter
}

// Validate rejects empty or duplicate ids within a family, and the reserved
// id "none".
func (r *Registry) Validate() error {
	checks := []struct {
		family Family
		ids    []string
	}{
		{FamilyCompiler, IDs(r.Compilers)},
		{FamilyBundler, IDs(r.Bundlers)},
		{FamilyTaskRunner, IDs(r.TaskRunners)},
		{FamilyTestRunner, IDs(r.TestRunners)},
		{FamilyLinter, IDs(r.Linters)},
	}
	for _, c := range checks {
		seen := make(map[string]bool)
		for _, id := range c.ids {
			switch {
			case id == "":
				return fmt.Errorf("provider: %s with an empty id", c.family)
			case id == None:
				return fmt.Errorf("provider: %s id %q is reserved", c.family, None)
			case seen[id]:
				return fmt.Errorf("provider: %s %s registered twice", c.family, id)
			}
			seen[id] = true
		}
	}
	return nil
}

// IDs returns the ids of providers in order.
func IDs[T Provider](providers []T) []string {
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID()
	}
	return ids
}

// Lookup resolves id within a family. None resolves to the zero value with a
// nil error; an unregistered id yields an *UnknownIDError.
func Lookup[T Provider](family Family, providers []T, id string) (T, error) {
	var zero T
	if id == None {
		return zero, nil
	}
	for _, p := range providers {
		if p.ID() == id {
			return p, nil
		}
	}
	return zero, &UnknownIDError{Family: family, ID: id, Valid: IDs(providers)}
}

// UnknownIDError reports an id that matches no provider of a family.
type UnknownIDError struct {
	Family Family
	ID     string
	Valid  []string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf(
		"unknown %s %q. The available %ss are: %s.\nPass '%s' to not include a %s.",
		e.Family, e.ID, e.Family, strings.Join(e.Valid, ", "), None, e.Family,
	)
}
