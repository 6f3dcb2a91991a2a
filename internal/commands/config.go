package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tweedjs/tweed-cli/internal/config"
	"github.com/tweedjs/tweed-cli/internal/logger"
	"github.com/tweedjs/tweed-cli/internal/program"
)

const (
	optKey   = "key"
	optValue = "value"
)

// Config reads and writes user settings.
type Config struct {
	cfg *config.Config
	log *logger.Logger
}

// NewConfig returns the config command.
func NewConfig(cfg *config.Config, log *logger.Logger) *Config {
	return &Config{cfg: cfg, log: log}
}

func (c *Config) Name() string        { return "config" }
func (c *Config) Description() string { return "Shows or changes the default settings." }
func (c *Config) Usage() string       { return "config [key] [value]" }

func (c *Config) Options() []program.Option {
	return []program.Option{
		{Flags: "<key>", Description: "One of " + strings.Join(config.Keys(), ", ")},
		{Flags: "<value>", Description: "The new value; prints the current one when omitted"},
	}
}

func (c *Config) InitialOptions() program.Options {
	return program.Options{optKey: "", optValue: ""}
}

func (c *Config) ParseOption(args []string, req *program.Request) (int, program.Options, error) {
	if strings.HasPrefix(args[0], "-") {
		return 0, nil, nil
	}
	switch {
	case req.Options.String(optKey) == "":
		return 1, program.Options{optKey: args[0]}, nil
	case req.Options.String(optValue) == "":
		return 1, program.Options{optValue: args[0]}, nil
	}
	return 0, nil, nil
}

func (c *Config) Execute(_ context.Context, req *program.Request, _ *program.Program) error {
	key, value := req.Options.String(optKey), req.Options.String(optValue)
	out := c.log.Out()

	if key == "" {
		width := 0
		for _, k := range config.Keys() {
			width = max(width, lipgloss.Width(k))
		}
		for _, k := range config.Keys() {
			fmt.Fprintln(out, nameStyle.Render(pad(k, width))+"  "+versionStyle.Render(c.cfg.Get(k)))
		}
		c.log.Fine("Settings file: %s", c.cfg.Path())
		return nil
	}

	if !known(key) {
		return program.Abort("Unknown setting '%s'. The settings are: %s.", key, strings.Join(config.Keys(), ", "))
	}

	if value == "" {
		fmt.Fprintln(out, c.cfg.Get(key))
		return nil
	}

	if err := c.cfg.Set(key, value); err != nil {
		return err
	}
	c.log.Log("%s = %s", key, value)
	return nil
}

func known(key string) bool {
	for _, k := range config.Keys() {
		if k == key {
			return true
		}
	}
	return false
}
