package trash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babarot/putback/internal/pathenc"
	"github.com/babarot/putback/internal/trash/xdg"
)

func newXDGContext(t *testing.T) (Context, string) {
	t.Helper()
	base := tempDir(t)
	svc, err := xdg.NewService(xdg.Config{
		HomeTrashDir:   filepath.Join(base, "Trash"),
		ForceHomeTrash: true,
	})
	require.NoError(t, err)

	work := filepath.Join(base, "work")
	require.NoError(t, os.Mkdir(work, 0755))
	return NewContext(WithMethod(MethodServiceCall), WithService(svc)), work
}

func TestServiceCallNonTextName(t *testing.T) {
	c, work := newXDGContext(t)

	name := "\x83s \x80%80"
	src := filepath.Join(work, name)
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Skipf("file system rejects non-UTF-8 names: %v", err)
	}
	p := pathenc.FromOS(src)

	item, ok, err := c.DeleteWithInfo(p)
	require.NoError(t, err, "a non-text name must not produce an encoding error")
	require.True(t, ok)

	assert.NoFileExists(t, src)
	assert.Equal(t, pathenc.Bytes(name), item.Name)
	assert.Equal(t, pathenc.FromOS(work), item.OriginalParent)
	assert.FileExists(t, item.ID.OSPath())

	info, err := xdg.Lookup(item.ID.OSPath())
	require.NoError(t, err)
	assert.Equal(t, p, info.AbsolutePath())
}

func TestServiceCallXDGBatch(t *testing.T) {
	c, work := newXDGContext(t)
	paths := []pathenc.Bytes{
		createTestFile(t, work, "one"),
		createTestFile(t, work, "two"),
	}
	missing := pathenc.FromOS(filepath.Join(work, "three"))

	_, _, err := c.DeleteAllWithInfo(append(paths, missing))
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Index)
	assert.ErrorIs(t, err, os.ErrNotExist)
	for _, p := range paths {
		assert.NoFileExists(t, p.OSPath())
	}
}
