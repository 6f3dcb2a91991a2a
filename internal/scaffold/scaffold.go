package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
)

//go:embed templates
var templateFS embed.FS

// Dialect selects a template set.
type Dialect string

// Supported dialects. Babel and TypeScript match their compiler ids.
const (
	ES5        Dialect = "es5"
	Babel      Dialect = "babel"
	TypeScript Dialect = "typescript"
)

// Extension is the file extension of generated components.
func (d Dialect) Extension() string {
	if d == TypeScript {
		return "tsx"
	}
	return "js"
}

// Detect infers the dialect of the project rooted at dir from its compiler
// configuration files.
func Detect(f *filesystem.FileSystem, dir string) Dialect {
	switch {
	case f.Exists(filepath.Join(dir, "tsconfig.json")):
		return TypeScript
	case f.Exists(filepath.Join(dir, ".babelrc")):
		return Babel
	default:
		return ES5
	}
}

// Field is a mutating component field with an optional type annotation.
type Field struct {
	Name string
	Type string
}

var fieldSep = regexp.MustCompile(`\s*:\s*`)

// ParseField parses "name" or "name:type".
func ParseField(s string) Field {
	parts := fieldSep.Split(strings.TrimSpace(s), 2)
	f := Field{Name: parts[0]}
	if len(parts) == 2 {
		f.Type = parts[1]
	}
	return f
}

// Data holds the template variables.
type Data struct {
	// Pragma is a leading JSX pragma comment, e.g. "/** @jsx Node */".
	Pragma string
	// Head is an extra leading import, e.g. the assertion library.
	Head string

	Class      string
	Var        string // derived from Class when empty
	ImportPath string
	Fields     []Field

	TestFunc string
	Expect   string
	Equal    string
}

// Main renders the entry point.
func Main(d Dialect) (string, error) {
	return render(d, "main", Data{})
}

// App renders the root component.
func App(d Dialect, pragma string) (string, error) {
	return render(d, "app", Data{Pragma: pragma, Class: "App"})
}

// AppTest renders the starter test for the root component.
func AppTest(d Dialect, data Data) (string, error) {
	data.Class = "App"
	return render(d, "apptest", data)
}

// Component renders a generated component skeleton.
func Component(d Dialect, data Data) (string, error) {
	return render(d, "component", data)
}

// Test renders a generated component's test skeleton.
func Test(d Dialect, data Data) (string, error) {
	return render(d, "test", data)
}

func render(d Dialect, name string, data Data) (string, error) {
	tmplPath := path.Join("templates", string(d), name+".tmpl")
	raw, err := fs.ReadFile(templateFS, tmplPath)
	if err != nil {
		return "", fmt.Errorf("template set %q has no %s template: %w", d, name, err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	if data.Var == "" {
		data.Var = lowerFirst(data.Class)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", tmplPath, err)
	}
	return buf.String(), nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
