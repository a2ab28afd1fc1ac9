package panel

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

//go:embed templates
var builtin embed.FS

// Manager resolves panel text by visitor role and dialog node.
type Manager struct {
	override *Cache // optional, from a directory on disk
	builtin  *Cache
}

// NewManager creates a Manager with built-in texts.
// If dir is not empty, templates from dir take precedence over built-in ones.
func NewManager(dir string, lazy bool) (*Manager, error) {
	sub, err := fs.Sub(builtin, "templates")
	if err != nil {
		return nil, fmt.Errorf("opening built-in templates: %w", err)
	}
	bc, err := NewCache(sub, false)
	if err != nil {
		return nil, fmt.Errorf("loading built-in templates: %w", err)
	}

	m := &Manager{builtin: bc}
	if dir == "" {
		return m, nil
	}

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("panel templates dir: %w", err)
	}
	oc, err := NewCache(os.DirFS(dir), lazy)
	if err != nil {
		return nil, fmt.Errorf("loading panel templates from %s: %w", dir, err)
	}
	m.override = oc
	return m, nil
}

// Text returns rendered text for role's node.
//
// Resolution order (override dir first, then built-in):
//  1. <role>/<node>.tmpl  (e.g. "officer/panel3.tmpl")
//  2. default/<node>.tmpl
//
// Returns Fallback if nothing found.
func (m *Manager) Text(role model.Role, node dialog.Node, data map[string]any) (string, error) {
	paths := [...]string{
		role.String() + "/" + string(node) + templateExt,
		"default/" + string(node) + templateExt,
	}

	for _, c := range [...]*Cache{m.override, m.builtin} {
		if c == nil {
			continue
		}
		for _, p := range paths {
			if c.Exists(p) {
				return c.Execute(p, Data(data))
			}
		}
	}

	return m.Fallback(node), nil
}

// Fallback returns a hardcoded text when no template is found.
func (m *Manager) Fallback(node dialog.Node) string {
	return "[" + string(node) + "]"
}
