package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/tweedjs/tweed-cli/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyPackageManager = "package_manager"
	KeyCompiler       = "compiler"
	KeyBundler        = "bundler"
	KeyTaskRunner     = "task_runner"
	KeyTestRunner     = "test_runner"
	KeyLinter         = "linter"
	KeyInteractive    = "interactive"
	KeyBackup         = "backup"
)

// Keys lists every recognized setting in display order.
func Keys() []string {
	return []string{
		KeyPackageManager,
		KeyCompiler,
		KeyBundler,
		KeyTaskRunner,
		KeyTestRunner,
		KeyLinter,
		KeyInteractive,
		KeyBackup,
	}
}

// Config is a loaded settings file plus environment overrides.
type Config struct {
	v    *viper.Viper
	path string
}

// Dir returns the path to the config directory: $TWEED_HOME when set,
// ~/.tweed/ otherwise.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// Load reads <dir>/config.yaml and TWEED_* environment variables. A missing
// file is not an error; every key then takes its default.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, fileName+"."+fileType)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyPackageManager, "auto")
	v.SetDefault(KeyCompiler, "babel")
	v.SetDefault(KeyBundler, "webpack")
	v.SetDefault(KeyTaskRunner, "npm")
	v.SetDefault(KeyTestRunner, "none")
	v.SetDefault(KeyLinter, "none")
	v.SetDefault(KeyInteractive, true)
	v.SetDefault(KeyBackup, true)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	return &Config{v: v, path: path}, nil
}

// Path returns the settings file location.
func (c *Config) Path() string { return c.path }

// Get returns a setting as a string. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Bool returns a boolean setting.
func (c *Config) Bool(key string) bool {
	return c.v.GetBool(key)
}

// Set writes a key-value pair and saves the settings file.
func (c *Config) Set(key, value string) error {
	if !isKnown(key) {
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", filepath.Dir(c.path), err)
	}

	c.v.Set(key, value)

	if err := c.v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func isKnown(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
