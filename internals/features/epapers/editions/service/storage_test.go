package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ArtifactStore {
	t.Helper()
	store := NewArtifactStore(t.TempDir())
	require.NoError(t, store.EnsureDirs())
	return store
}

func TestArtifactNaming(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	assert.Equal(t, "11111111-2222-3333-4444-555555555555-1.jpg", PageFilename(id, 1))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555-12.jpg", PageFilename(id, 12))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555_thumb.jpg", ThumbnailFilename(id))
	assert.Equal(t, "crop_abc123.jpg", CropFilename("abc123"))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555-edisi_senin.pdf",
		SourceFilename(id, "edisi senin.pdf"))
}

func TestSourceFilenameSanitizes(t *testing.T) {
	id := uuid.New()
	// Separators are replaced, so the name cannot traverse out of the bucket.
	name := SourceFilename(id, "../../etc/passwd")
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "\\")
}

func TestWebPathRoundTrip(t *testing.T) {
	store := newTestStore(t)

	web := store.WebPath(BucketPages, "a-1.jpg")
	assert.Equal(t, "/uploads/pages/a-1.jpg", web)

	abs := store.AbsFromWebPath(web)
	assert.Equal(t, filepath.Join(store.BaseDir, "pages", "a-1.jpg"), abs)
}

func TestAbsFromWebPathRejectsEscapes(t *testing.T) {
	store := newTestStore(t)

	assert.Empty(t, store.AbsFromWebPath("/etc/passwd"))
	assert.Empty(t, store.AbsFromWebPath("/uploads/../etc/passwd"))
	assert.Empty(t, store.AbsFromWebPath("/uploads/pages/../../secret"))
	assert.Empty(t, store.AbsFromWebPath(""))
}

func TestWriteAndRemove(t *testing.T) {
	store := newTestStore(t)

	web, err := store.Write(BucketCrops, "crop_t.jpg", []byte("jpeg bytes"))
	require.NoError(t, err)

	abs := store.AbsFromWebPath(web)
	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)

	require.NoError(t, store.Remove(web))
	_, err = os.Stat(abs)
	assert.True(t, os.IsNotExist(err))

	// Removing again is not an error.
	assert.NoError(t, store.Remove(web))
	// Neither is removing something that never existed.
	assert.NoError(t, store.Remove("/uploads/pages/ghost.jpg"))
	assert.NoError(t, store.RemoveAbs(filepath.Join(store.BaseDir, "pages", "ghost.jpg")))
}
