package panel

import (
	"log/slog"
	"sync"

	"github.com/udisondev/frontdesk/internal/dialog"
)

// LogRenderer "displays" panels by logging them.
// Used by the headless runner instead of a UI.
type LogRenderer struct {
	mu      sync.Mutex
	visible map[uint32]dialog.Node
}

// NewLogRenderer creates renderer
func NewLogRenderer() *LogRenderer {
	return &LogRenderer{visible: make(map[uint32]dialog.Node)}
}

// ShowNode shows panel for visitor
func (r *LogRenderer) ShowNode(visitorID uint32, node dialog.Node, text string) {
	r.mu.Lock()
	r.visible[visitorID] = node
	r.mu.Unlock()

	slog.Info("panel shown", "visitorID", visitorID, "node", node, "text", text)
}

// Hide hides visitor panel
func (r *LogRenderer) Hide(visitorID uint32) {
	r.mu.Lock()
	_, ok := r.visible[visitorID]
	delete(r.visible, visitorID)
	r.mu.Unlock()

	if ok {
		slog.Debug("panel hidden", "visitorID", visitorID)
	}
}

// Visible returns node shown for visitor.
func (r *LogRenderer) Visible(visitorID uint32) (dialog.Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.visible[visitorID]
	return n, ok
}
