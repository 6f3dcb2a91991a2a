package filesystem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"go.yaml.in/yaml/v3"
)

// Document is a decoded key-value document such as package.json.
type Document = map[string]any

// FileSystem performs file operations on absolute paths.
type FileSystem struct {
	fs billy.Filesystem
}

// New wraps an existing billy filesystem.
func New(fs billy.Filesystem) *FileSystem {
	return &FileSystem{fs: fs}
}

// OS returns a FileSystem rooted at the operating system root.
func OS() *FileSystem {
	return New(osfs.New(string(filepath.Separator)))
}

// Memory returns an empty in-memory FileSystem.
func Memory() *FileSystem {
	return New(memfs.New())
}

// Exists reports whether path exists.
func (f *FileSystem) Exists(path string) bool {
	_, err := f.fs.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func (f *FileSystem) IsDir(path string) bool {
	info, err := f.fs.Stat(path)
	return err == nil && info.IsDir()
}

// MakeDirectory creates path and any missing parents. Existing directories
// are left alone.
func (f *FileSystem) MakeDirectory(path string) error {
	if err := f.fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// ReadFile returns the contents of a text file.
func (f *FileSystem) ReadFile(path string) (string, error) {
	data, err := util.ReadFile(f.fs, path)
	if err != nil {
		return "", fmt.Errorf("reading file %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile writes text to path, creating parent directories as needed and
// replacing any existing content.
func (f *FileSystem) WriteFile(path, text string) error {
	if err := f.MakeDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	if err := util.WriteFile(f.fs, path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// ReadStructured decodes a JSON document, or a YAML one when the path ends
// in .yml or .yaml. JSON numbers are kept as json.Number so they are
// written back verbatim.
func (f *FileSystem) ReadStructured(path string) (Document, error) {
	data, err := util.ReadFile(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	doc := Document{}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if len(bytes.TrimSpace(data)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// ReadStructuredOrEmpty is ReadStructured, but a missing file yields an
// empty document.
func (f *FileSystem) ReadStructuredOrEmpty(path string) (Document, error) {
	if !f.Exists(path) {
		return Document{}, nil
	}
	return f.ReadStructured(path)
}

// WriteStructured encodes doc as two-space indented JSON, or as YAML when the
// path ends in .yml or .yaml. When the file already exists its keys keep
// their order and new keys follow in sorted order.
func (f *FileSystem) WriteStructured(path string, doc Document) error {
	var existing []byte
	if f.Exists(path) {
		data, err := util.ReadFile(f.fs, path)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", path, err)
		}
		existing = data
	}

	var buf bytes.Buffer
	if isYAML(path) {
		var prior yaml.Node
		_ = yaml.Unmarshal(existing, &prior)

		node, err := yamlNode(doc, yamlOrder(&prior))
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
	} else {
		var compact bytes.Buffer
		if err := encodeJSON(&compact, doc, jsonOrder(existing)); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if err := json.Indent(&buf, compact.Bytes(), "", "  "); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		buf.WriteByte('\n')
	}

	return f.WriteFile(path, buf.String())
}

// AppendLines appends each line not already present in the file at path,
// creating the file if needed. Existing content is never rewritten.
func (f *FileSystem) AppendLines(path string, lines ...string) error {
	content := ""
	if f.Exists(path) {
		existing, err := f.ReadFile(path)
		if err != nil {
			return err
		}
		content = existing
	}

	present := make(map[string]bool)
	for _, l := range strings.Split(content, "\n") {
		present[strings.TrimSpace(l)] = true
	}

	var missing []string
	for _, l := range lines {
		if present[l] {
			continue
		}
		present[l] = true
		missing = append(missing, l)
	}
	if len(missing) == 0 {
		return nil
	}

	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return f.WriteFile(path, content+strings.Join(missing, "\n")+"\n")
}

// Copy recursively copies the tree at src to dst. Regular files keep their
// permission bits and symlinks are recreated pointing at the same target.
func (f *FileSystem) Copy(src, dst string) error {
	info, err := f.fs.Lstat(src)
	if err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := f.copyEntry(src, dst, info); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

func (f *FileSystem) copyEntry(src, dst string, info os.FileInfo) error {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := f.fs.Readlink(src)
		if err != nil {
			return err
		}
		return f.fs.Symlink(target, dst)

	case info.IsDir():
		if err := f.fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := f.fs.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			name := entry.Name()
			if err := f.copyEntry(f.fs.Join(src, name), f.fs.Join(dst, name), entry); err != nil {
				return err
			}
		}
		return nil

	case info.Mode().IsRegular():
		return f.copyFile(src, dst, info.Mode().Perm())
	}

	// Sockets, devices and pipes are skipped.
	return nil
}

func (f *FileSystem) copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := f.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := f.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// Walk lists every regular file under root as a path relative to root, in
// lexical order.
func (f *FileSystem) Walk(root string) ([]string, error) {
	var files []string
	err := util.Walk(f.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// Update reads the document at path (empty when missing), applies fn, and
// writes the result back.
func (f *FileSystem) Update(path string, fn func(Document) error) error {
	doc, err := f.ReadStructuredOrEmpty(path)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return f.WriteStructured(path, doc)
}

// Section returns the object stored under key in doc, creating it (or
// replacing a non-object value) when needed.
func Section(doc Document, key string) Document {
	if m, ok := doc[key].(map[string]any); ok {
		return m
	}
	m := Document{}
	doc[key] = m
	return m
}
