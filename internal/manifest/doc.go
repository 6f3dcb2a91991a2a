// Package manifest parses and validates package.json, the manifest of a
// generated project. Validation runs against an embedded JSON Schema and
// reports issues instead of failing, so callers can surface them as
// warnings.
package manifest
