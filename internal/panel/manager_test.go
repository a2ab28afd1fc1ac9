package panel

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		fullPath := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
	return dir
}

func TestCache_LoadAndExecute(t *testing.T) {
	fsys := fstest.MapFS{
		"patron/greeting.tmpl": {Data: []byte(`Found {{index . "item"}}!` + "\n")},
		"broken.tmpl":          {Data: []byte(`{{index . `)},
		"notes.txt":            {Data: []byte(`ignored`)},
	}

	c, err := NewCache(fsys, false)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len(), "broken and non-template files skipped")

	out, err := c.Execute("patron/greeting.tmpl", Data{"item": "Umbrella"})
	require.NoError(t, err)
	assert.Equal(t, "Found Umbrella!", out)

	_, err = c.Get("missing.tmpl")
	assert.Error(t, err)
	_, err = c.Get("../etc/passwd")
	assert.Error(t, err)
}

func TestCache_Lazy(t *testing.T) {
	fsys := fstest.MapFS{
		"default/greeting.tmpl": {Data: []byte(`Hi`)},
	}

	c, err := NewCache(fsys, true)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Exists("default/greeting.tmpl"))

	out, err := c.Execute("default/greeting.tmpl", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hi", out)
	assert.Equal(t, 1, c.Len())
}

func TestManager_BuiltinTexts(t *testing.T) {
	m, err := NewManager("", false)
	require.NoError(t, err)

	for _, role := range model.Roles() {
		tree, err := dialog.TreeFor(role)
		require.NoError(t, err)

		text, err := m.Text(role, tree.Start(), map[string]any{"item": "Lamp", "itemDescription": "", "detail": ""})
		require.NoError(t, err)
		assert.NotEqual(t, m.Fallback(tree.Start()), text, role.String())
	}

	text, err := m.Text(model.RoleOfficer, dialog.NodePanel3, nil)
	require.NoError(t, err)
	assert.Equal(t, "Did you bring the item?", text)

	text, err = m.Text(model.RolePatron, dialog.NodeRefuse, map[string]any{"item": "Lamp"})
	require.NoError(t, err)
	assert.Equal(t, "I see. I will keep the Lamp with me then.", text)

	text, err = m.Text(model.RolePatron, dialog.NodeAccepted, map[string]any{"item": ""})
	require.NoError(t, err)
	assert.NotEqual(t, m.Fallback(dialog.NodeAccepted), text)
}

func TestManager_ResolutionOrder(t *testing.T) {
	dir := setupTestDir(t, map[string]string{
		"officer/panel3.tmpl":   "Custom panel 3",
		"default/question.tmpl": "Default question",
	})

	m, err := NewManager(dir, false)
	require.NoError(t, err)

	text, err := m.Text(model.RoleOfficer, dialog.NodePanel3, nil)
	require.NoError(t, err)
	assert.Equal(t, "Custom panel 3", text)

	// override default/ wins over built-in role template
	text, err = m.Text(model.RoleSearcher, dialog.NodeQuestion, map[string]any{"item": "Key"})
	require.NoError(t, err)
	assert.Equal(t, "Default question", text)

	// built-in
	text, err = m.Text(model.RoleOfficer, dialog.NodePanel6, nil)
	require.NoError(t, err)
	assert.Equal(t, "Be more careful next time.", text)

	// nothing anywhere
	text, err = m.Text(model.RolePatron, dialog.Node("nowhere"), nil)
	require.NoError(t, err)
	assert.Equal(t, "[nowhere]", text)
}

func TestManager_MissingDir(t *testing.T) {
	_, err := NewManager(filepath.Join(t.TempDir(), "absent"), false)
	assert.Error(t, err)
}

func TestLogRenderer(t *testing.T) {
	r := NewLogRenderer()
	r.ShowNode(5, dialog.NodePanel1, "hello")

	node, ok := r.Visible(5)
	require.True(t, ok)
	assert.Equal(t, dialog.NodePanel1, node)

	r.Hide(5)
	_, ok = r.Visible(5)
	assert.False(t, ok)
}
