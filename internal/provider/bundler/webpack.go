package bundler

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/tweedjs/tweed-cli/internal/pkgmanager"
	"github.com/tweedjs/tweed-cli/internal/provider"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Webpack bundles the project with webpack and serves it with
// webpack-dev-server.
type Webpack struct {
	env provider.Env
}

// NewWebpack returns the Webpack bundler.
func NewWebpack(env provider.Env) *Webpack {
	return &Webpack{env: env}
}

func (w *Webpack) ID() string   { return "webpack" }
func (w *Webpack) Name() string { return "Webpack" }

// DefaultConfig is the configuration before a compiler adjusts it.
func DefaultConfig() *provider.BundlerConfig {
	return &provider.BundlerConfig{
		Entry:          "./src/main",
		OutputPath:     "public",
		OutputFilename: "main.bundle.js",
		Extensions:     []string{".js"},
	}
}

// Install writes webpack.config.js, shaped by compiler when one is selected,
// and a public/index.html page when none exists.
func (w *Webpack) Install(_ context.Context, dir string, pm pkgmanager.Installer, compiler provider.Compiler, tasks provider.TaskRunner) error {
	pm.Install(true, "webpack", "webpack-cli")

	cfg := DefaultConfig()
	if compiler != nil {
		w.env.Log.Fine("Adding %s to Webpack config", compiler.Name())
		compiler.ManipulateBundlerConfig(cfg, pm)
	}

	w.env.Log.Fine("Generating Webpack config file")
	text, err := Render(cfg)
	if err != nil {
		return err
	}
	if err := w.env.FS.WriteFile(filepath.Join(dir, "webpack.config.js"), text); err != nil {
		return err
	}

	if err := w.writeIndex(dir, cfg); err != nil {
		return err
	}

	bundle := filepath.ToSlash(filepath.Join(cfg.OutputPath, cfg.OutputFilename))
	if err := w.env.FS.AppendLines(filepath.Join(dir, ".gitignore"), bundle); err != nil {
		return err
	}

	if tasks != nil {
		pm.Install(true, "webpack-dev-server")
		tasks.Add("build", "NODE_ENV=production webpack")
		tasks.Add("dev", "webpack-dev-server --hot --content-base "+cfg.OutputPath+"/")
	}
	return nil
}

func (w *Webpack) writeIndex(dir string, cfg *provider.BundlerConfig) error {
	index := filepath.Join(dir, cfg.OutputPath, "index.html")
	if w.env.FS.Exists(index) {
		return nil
	}

	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "index.html.tmpl", map[string]string{
		"Title":  template.HTMLEscapeString(filepath.Base(dir)),
		"Script": cfg.OutputFilename,
	})
	if err != nil {
		return fmt.Errorf("rendering index.html: %w", err)
	}

	w.env.Log.Fine("Creating %s/index.html", cfg.OutputPath)
	return w.env.FS.WriteFile(index, buf.String())
}

// Render produces the webpack.config.js source for cfg.
func Render(cfg *provider.BundlerConfig) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "webpack.config.js.tmpl", cfg); err != nil {
		return "", fmt.Errorf("rendering webpack config: %w", err)
	}
	return buf.String(), nil
}
