// Package prompt asks the user to confirm a resolved plan before anything
// is written.
package prompt
