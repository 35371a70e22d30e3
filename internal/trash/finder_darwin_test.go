package trash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babarot/putback/internal/pathenc"
)

// TestFinderEndToEnd talks to the real Finder, which asks for automation
// permission the first time. It only runs when PUTBACK_FINDER_E2E is set.
func TestFinderEndToEnd(t *testing.T) {
	if os.Getenv("PUTBACK_FINDER_E2E") == "" {
		t.Skip("set PUTBACK_FINDER_E2E=1 to run against Finder")
	}
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	dir := tempDir(t)
	p := createTestFile(t, dir, `a"b,`)

	items, ok, err := NewContext(WithMethod(MethodAutomationScript)).DeleteAllWithInfo([]pathenc.Bytes{p})
	require.NoError(t, err)
	assert.NoFileExists(t, p.OSPath())
	if ok {
		require.Len(t, items, 1)
		assert.True(t, strings.Contains(items[0].ID.String(), "/.Trash"), "id = %s", items[0].ID)
		t.Cleanup(func() { os.RemoveAll(items[0].ID.OSPath()) })
	} else {
		t.Cleanup(func() { os.RemoveAll(filepath.Join(home, ".Trash", `a"b,`)) })
	}
}
