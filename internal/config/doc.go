// Package config manages user-level settings stored at ~/.tweed/config.yaml.
// The settings supply the default provider choices, package manager, and
// interaction behavior of the "new" command. Environment variables with the
// TWEED_ prefix override the file.
package config
