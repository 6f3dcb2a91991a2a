// Package pkgmanager accumulates the npm packages requested while a project
// is scaffolded and installs them in one batch at the end. Two package
// managers share the Installer contract: npm and yarn.
package pkgmanager
