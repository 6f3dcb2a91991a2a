// Package compiler implements the Babel and TypeScript compilers.
package compiler
