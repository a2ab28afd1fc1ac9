package panel

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"text/template"
)

const (
	maxTemplateSize = 4096
	templateExt     = ".tmpl"
)

// Data is a key→value map for template substitution.
type Data map[string]any

// Cache stores compiled text/template panels loaded from an fs.FS.
// Paths are slash separated, relative to the FS root (e.g. "officer/panel3.tmpl").
type Cache struct {
	fsys      fs.FS
	templates map[string]*template.Template
	mu        sync.RWMutex
	lazy      bool
}

// NewCache creates a panel template cache.
// If lazy is false, every .tmpl file is compiled at creation time.
func NewCache(fsys fs.FS, lazy bool) (*Cache, error) {
	c := &Cache{
		fsys:      fsys,
		templates: make(map[string]*template.Template),
		lazy:      lazy,
	}

	if !lazy {
		if err := c.preload(); err != nil {
			return nil, fmt.Errorf("preloading panel templates: %w", err)
		}
	}

	return c, nil
}

// Get returns a compiled template by relative path.
func (c *Cache) Get(path string) (*template.Template, error) {
	if !fs.ValidPath(path) {
		return nil, fmt.Errorf("invalid template path: %s", path)
	}

	c.mu.RLock()
	tmpl, ok := c.templates[path]
	c.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	if !c.lazy {
		return nil, fmt.Errorf("template not found: %s", path)
	}

	return c.loadAndCache(path)
}

// Execute renders template with data. Surrounding whitespace is trimmed.
func (c *Cache) Execute(path string, data Data) (string, error) {
	tmpl, err := c.Get(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
		return "", fmt.Errorf("executing template %s: %w", path, err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// Exists returns true if the template is cached or present in the FS.
func (c *Cache) Exists(path string) bool {
	if !fs.ValidPath(path) {
		return false
	}

	c.mu.RLock()
	_, ok := c.templates[path]
	c.mu.RUnlock()
	if ok {
		return true
	}

	if c.lazy {
		_, err := fs.Stat(c.fsys, path)
		return err == nil
	}

	return false
}

// Len returns number of compiled templates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

func (c *Cache) preload() error {
	count := 0
	err := fs.WalkDir(c.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == "." {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), templateExt) {
			return nil
		}

		if _, err := c.loadFile(path); err != nil {
			slog.Warn("failed to load panel template", "path", path, "error", err)
			return nil // broken file must not disable the whole set
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking templates: %w", err)
	}

	slog.Debug("panel templates preloaded", "count", count)
	return nil
}

func (c *Cache) loadAndCache(path string) (*template.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tmpl, ok := c.templates[path]; ok {
		return tmpl, nil
	}

	return c.loadFile(path)
}

// loadFile compiles the template and stores it.
// Caller must hold c.mu write lock (or be called during init).
func (c *Cache) loadFile(path string) (*template.Template, error) {
	raw, err := fs.ReadFile(c.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(raw) > maxTemplateSize {
		return nil, fmt.Errorf("template too large (%d bytes, max %d): %s", len(raw), maxTemplateSize, path)
	}

	// missingkey=zero: absent variables render as "" instead of failing.
	tmpl, err := template.New(path).Option("missingkey=zero").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}

	c.templates[path] = tmpl
	return tmpl, nil
}
