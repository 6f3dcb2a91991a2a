// Package scaffold renders starter sources from embedded templates. Each
// dialect (plain ES5, Babel, TypeScript) has its own template set: the entry
// point, the root App component, the App's starter test, and the component
// and test skeletons written by "tweed generate".
package scaffold
