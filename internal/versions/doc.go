// Package versions reads and compares the semantic versions the CLI cares
// about: npm packages installed in a project and the host's Node.js.
package versions
