package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tweedjs/tweed-cli/internal/filesystem"
	"github.com/tweedjs/tweed-cli/internal/logger"
	"github.com/tweedjs/tweed-cli/internal/manifest"
	"github.com/tweedjs/tweed-cli/internal/program"
	"github.com/tweedjs/tweed-cli/internal/provider"
	"github.com/tweedjs/tweed-cli/internal/scaffold"
)

const (
	optClasspath = "classpath"
	optMutating  = "mutating"
	optTest      = "test"
)

// generatedPragma is the JSX pragma of generated Babel files in projects
// linted with standard.
const generatedPragma = "/** @jsx VirtualNode */"

// Generate writes component boilerplate into the project in WorkDir.
type Generate struct {
	fs          *filesystem.FileSystem
	log         *logger.Logger
	testRunners []provider.TestRunner
	workDir     string
}

// NewGenerate returns the generate command. testRunners are searched for
// the one the project depends on when a test file is requested.
func NewGenerate(f *filesystem.FileSystem, log *logger.Logger, testRunners []provider.TestRunner, workDir string) *Generate {
	return &Generate{fs: f, log: log, testRunners: testRunners, workDir: workDir}
}

func (c *Generate) Name() string        { return "generate" }
func (c *Generate) Description() string { return "Generate files containing tedious boilerplate." }
func (c *Generate) Usage() string       { return "generate <classpath> [-m <field>[:<type>]] [-t]" }

func (c *Generate) Options() []program.Option {
	return []program.Option{
		{Flags: "-m, --mutating <field>[:<type>]", Description: "Add a mutating field to the component"},
		{Flags: "-t, --test", Description: "Generate a corresponding test file"},
	}
}

func (c *Generate) InitialOptions() program.Options {
	return program.Options{optClasspath: "", optMutating: []string{}, optTest: false}
}

func (c *Generate) ParseOption(args []string, req *program.Request) (int, program.Options, error) {
	switch args[0] {
	case "-m", "--mutating":
		if len(args) < 2 || args[1] == "" || strings.HasPrefix(args[1], "-") {
			return 0, nil, program.Abort("The '%s' option should be followed by a field name", args[0])
		}
		fields := append(append([]string(nil), req.Options.Strings(optMutating)...), args[1])
		return 2, program.Options{optMutating: fields}, nil

	case "-t", "--test":
		return 1, program.Options{optTest: true}, nil
	}

	if !strings.HasPrefix(args[0], "-") && req.Options.String(optClasspath) == "" {
		return 1, program.Options{optClasspath: args[0]}, nil
	}
	return 0, nil, nil
}

var classpathSep = regexp.MustCompile(`[/\\.]`)

func (c *Generate) Execute(_ context.Context, req *program.Request, _ *program.Program) error {
	dialect := scaffold.Detect(c.fs, c.workDir)
	ext := dialect.Extension()

	classpath := req.Options.String(optClasspath)
	if classpath == "" {
		return program.Abort("%s", classpathHelp(ext))
	}

	segments := classpathSep.Split(classpath, -1)
	class := UpperCamelCase(segments[len(segments)-1])
	pkgs := nonEmpty(segments[:len(segments)-1])
	if class == "" {
		return program.Abort("'%s' does not name a class", classpath)
	}

	pkg, err := c.manifest()
	if err != nil {
		return err
	}

	var fields []scaffold.Field
	for _, m := range req.Options.Strings(optMutating) {
		fields = append(fields, scaffold.ParseField(m))
	}

	data := scaffold.Data{Class: class, Fields: fields}
	if dialect == scaffold.Babel && pkg.HasDev("standard") {
		data.Pragma = generatedPragma
	}

	target := filepath.Join(append(append([]string{c.workDir, "src"}, pkgs...), class+"."+ext)...)
	if err := c.generateFile(target, func() (string, error) { return scaffold.Component(dialect, data) }); err != nil {
		return err
	}

	if !req.Options.Bool(optTest) {
		return nil
	}

	fw, ok := c.framework(pkg)
	if !ok {
		return program.Abort("To include a test file you have to install %s", quotedIDs(c.testRunners))
	}

	data.ImportPath = importPath(pkgs, class)
	data.TestFunc = fw.TestFunc
	data.Expect = fw.Expect
	data.Equal = fw.Equal
	data.Head = fw.Import
	if dialect == scaffold.ES5 {
		data.Head = fw.Require
	}
	data.Fields = nil

	target = filepath.Join(append(append([]string{c.workDir, fw.Dir}, pkgs...), fw.FileName(class, ext))...)
	return c.generateFile(target, func() (string, error) { return scaffold.Test(dialect, data) })
}

// manifest reads the project's package.json. A missing file yields an empty
// package.
func (c *Generate) manifest() (*manifest.Package, error) {
	text, err := c.fs.ReadFile(filepath.Join(c.workDir, provider.ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return &manifest.Package{}, nil
	}
	if err != nil {
		return nil, err
	}
	return manifest.Parse([]byte(text))
}

// framework picks the test runner the project depends on. When several
// match, the last registered one wins.
func (c *Generate) framework(pkg *manifest.Package) (provider.TestFramework, bool) {
	var (
		fw provider.TestFramework
		ok bool
	)
	for _, tr := range c.testRunners {
		if pkg.HasDev(tr.ID()) {
			fw, ok = tr.Framework(), true
		}
	}
	return fw, ok
}

func (c *Generate) generateFile(target string, render func() (string, error)) error {
	rel, err := filepath.Rel(c.workDir, target)
	if err != nil {
		rel = target
	}

	if c.fs.Exists(target) {
		return program.Abort("%s already exists.", rel)
	}

	text, err := render()
	if err != nil {
		return err
	}
	if err := c.fs.WriteFile(target, text); err != nil {
		return err
	}
	c.log.Log("Generated %s", rel)
	return nil
}

var wordStart = regexp.MustCompile(`[A-Z]`)
var wordSep = regexp.MustCompile(`[-_]+`)

// UpperCamelCase turns "my-header", "my_header" or "myHeader" into
// "MyHeader". Every capital letter starts a new word.
func UpperCamelCase(name string) string {
	name = strings.ToLower(wordStart.ReplaceAllString(name, "_$0"))
	title := cases.Title(language.Und)

	var b strings.Builder
	for _, w := range wordSep.Split(name, -1) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// importPath is the module path of src/<pkgs>/<class> as seen from the
// matching test file, which sits one directory deeper per package.
func importPath(pkgs []string, class string) string {
	parts := make([]string, 0, 2*len(pkgs)+3)
	for i := 0; i < len(pkgs)+1; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, "src")
	parts = append(parts, pkgs...)
	parts = append(parts, class)
	return path.Join(parts...)
}

func nonEmpty(parts []string) []string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func quotedIDs(testRunners []provider.TestRunner) string {
	ids := provider.IDs(testRunners)
	for i, id := range ids {
		ids[i] = "'" + id + "'"
	}
	if len(ids) < 2 {
		return strings.Join(ids, "")
	}
	return strings.Join(ids[:len(ids)-1], ", ") + " or " + ids[len(ids)-1]
}

func classpathHelp(ext string) string {
	sep := string(filepath.Separator)
	example := func(arg string, file []string) string {
		return fmt.Sprintf("  %s tweed generate %s\n         %s src%s%s.%s\n",
			mutedStyle.Render("Example:"), emphStyle.Render(arg),
			mutedStyle.Render("→"), sep, emphStyle.Render(strings.Join(file, sep)), ext)
	}
	return failStyle.Render("Please provide a classpath with slash or period as delimiter.") + "\n\n" +
		example("Header", []string{"Header"}) + "\n" +
		example("pages.start.Testimonials", []string{"pages", "start", "Testimonials"}) + "\n" +
		example("data/client/APIEmployeeRepository", []string{"data", "client", "APIEmployeeRepository"})
}
