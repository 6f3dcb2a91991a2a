package manifest

import (
	"encoding/json"
	"fmt"
)

// Package is the subset of package.json the CLI reads.
type Package struct {
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	Private         bool              `json:"private,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// Parse decodes package.json data.
func Parse(data []byte) (*Package, error) {
	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	return &pkg, nil
}

// HasDev reports whether name is a development dependency.
func (p *Package) HasDev(name string) bool {
	_, ok := p.DevDependencies[name]
	return ok
}
