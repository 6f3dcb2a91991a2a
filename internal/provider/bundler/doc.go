// Package bundler implements the Webpack bundler.
package bundler
