// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded into the binary; values missing from it fall
// back to the hard defaults in load.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName           string   `yaml:"cli_name"`
	DisplayName       string   `yaml:"display_name"`
	Description       string   `yaml:"description"`
	HomeDir           string   `yaml:"home_dir"`
	EnvPrefix         string   `yaml:"env_prefix"`
	PackageName       string   `yaml:"package_name"`
	CompanionPackages []string `yaml:"companion_packages"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:           "tweed",
			DisplayName:       "Tweed",
			Description:       "Scaffolds and augments Tweed projects",
			HomeDir:           ".tweed",
			EnvPrefix:         "TWEED",
			PackageName:       "tweed",
			CompanionPackages: []string{"tweed-cli", "tweed-router"},
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "tweed").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Tweed").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".tweed").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "TWEED").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// PackageName returns the runtime npm package every scaffolded project depends on.
func PackageName() string { load(); return defaults.PackageName }

// CompanionPackages returns the related npm packages reported by the version command.
func CompanionPackages() []string {
	load()
	return append([]string(nil), defaults.CompanionPackages...)
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "TWEED_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
