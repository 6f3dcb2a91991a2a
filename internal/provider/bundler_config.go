package provider

// BundlerConfig is a bundler configuration under construction. Compilers
// mutate it through ManipulateBundlerConfig before the bundler renders it.
type BundlerConfig struct {
	Entry          string
	OutputPath     string
	OutputFilename string
	Rules          []LoaderRule
	Extensions     []string
}

// LoaderRule routes files matching Test through Loader.
type LoaderRule struct {
	// Test is a JavaScript regular expression source, without slashes.
	Test    string
	Loader  string
	Exclude string
}

// AddRule appends a loader rule.
func (c *BundlerConfig) AddRule(rule LoaderRule) {
	c.Rules = append(c.Rules, rule)
}

// AddExtensions appends resolvable extensions that are not yet listed.
func (c *BundlerConfig) AddExtensions(exts ...string) {
	for _, ext := range exts {
		if !c.HasExtension(ext) {
			c.Extensions = append(c.Extensions, ext)
		}
	}
}

// HasExtension reports whether ext is resolvable.
func (c *BundlerConfig) HasExtension(ext string) bool {
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
