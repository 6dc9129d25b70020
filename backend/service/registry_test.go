package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pdf-voice/backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o640))
}

func TestFileRegistry_ListDistinctInUploadOrder(t *testing.T) {
	reg := NewFileRegistry(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"b.pdf", "a.pdf", "b.pdf", "c.pdf"} {
		_, err := reg.RegisterFile(ctx, 1, name, "/data/1/"+name)
		require.NoError(t, err)
	}
	_, err := reg.RegisterFile(ctx, 2, "z.pdf", "/data/2/z.pdf")
	require.NoError(t, err)

	names, err := reg.ListFiles(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.pdf", "a.pdf", "c.pdf"}, names)

	empty, err := reg.ListFiles(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFileRegistry_ResolveUsesNewestRow(t *testing.T) {
	reg := NewFileRegistry(newTestDB(t))
	ctx := context.Background()

	_, err := reg.RegisterFile(ctx, 1, "doc.pdf", "/old/doc.pdf")
	require.NoError(t, err)
	_, err = reg.RegisterFile(ctx, 1, "doc.pdf", "/new/doc.pdf")
	require.NoError(t, err)

	path, err := reg.ResolvePath(ctx, 1, "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/new/doc.pdf", path)

	_, err = reg.ResolvePath(ctx, 2, "doc.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRegistry_RemoveFile(t *testing.T) {
	db := newTestDB(t)
	reg := NewFileRegistry(db)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "1", "doc.pdf")
	writeFile(t, path)

	_, err := reg.RegisterFile(ctx, 1, "doc.pdf", path)
	require.NoError(t, err)
	_, err = reg.RegisterFile(ctx, 1, "doc.pdf", path)
	require.NoError(t, err)

	require.NoError(t, reg.RemoveFile(ctx, 1, "doc.pdf"))

	_, err = reg.ResolvePath(ctx, 1, "doc.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	files, err := model.GetFiles(db, 1, "doc.pdf")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileRegistry_RemoveUnknown(t *testing.T) {
	reg := NewFileRegistry(newTestDB(t))
	err := reg.RemoveFile(context.Background(), 1, "ghost.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRegistry_RemoveToleratesMissingFile(t *testing.T) {
	reg := NewFileRegistry(newTestDB(t))
	ctx := context.Background()

	_, err := reg.RegisterFile(ctx, 1, "gone.pdf", filepath.Join(t.TempDir(), "gone.pdf"))
	require.NoError(t, err)

	require.NoError(t, reg.RemoveFile(ctx, 1, "gone.pdf"))
	_, err = reg.ResolvePath(ctx, 1, "gone.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRegistry_RemoveRollsBackWhenFileStays(t *testing.T) {
	reg := NewFileRegistry(newTestDB(t))
	ctx := context.Background()

	// a non-empty directory cannot be removed with os.Remove
	stuck := filepath.Join(t.TempDir(), "stuck.pdf")
	writeFile(t, filepath.Join(stuck, "inner"))

	_, err := reg.RegisterFile(ctx, 1, "stuck.pdf", stuck)
	require.NoError(t, err)

	err = reg.RemoveFile(ctx, 1, "stuck.pdf")
	require.Error(t, err)

	path, err := reg.ResolvePath(ctx, 1, "stuck.pdf")
	require.NoError(t, err)
	assert.Equal(t, stuck, path)
}

func TestFileRegistry_OtherUsersUntouched(t *testing.T) {
	reg := NewFileRegistry(newTestDB(t))
	ctx := context.Background()
	dir := t.TempDir()
	pathA := filepath.Join(dir, "1", "report.pdf")
	pathB := filepath.Join(dir, "2", "report.pdf")
	writeFile(t, pathA)
	writeFile(t, pathB)

	_, err := reg.RegisterFile(ctx, 1, "report.pdf", pathA)
	require.NoError(t, err)
	_, err = reg.RegisterFile(ctx, 2, "report.pdf", pathB)
	require.NoError(t, err)

	require.NoError(t, reg.RemoveFile(ctx, 1, "report.pdf"))

	got, err := reg.ResolvePath(ctx, 2, "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, pathB, got)
	_, err = os.Stat(pathB)
	assert.NoError(t, err)
}
