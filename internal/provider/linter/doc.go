// Package linter implements the Standard Style linter.
package linter
