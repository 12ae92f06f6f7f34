package service

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSource(t *testing.T) {
	pdf := &SourcePDF{AbsPath: "/tmp/x.pdf", WebPath: "/uploads/papers/x.pdf"}
	images := []SourceImage{{Filename: "p1.png", Data: []byte("...")}}

	t.Run("pdf wins over images", func(t *testing.T) {
		src, err := ResolveSource(pdf, images)
		require.NoError(t, err)
		assert.IsType(t, SourcePDF{}, src)
	})

	t.Run("images alone", func(t *testing.T) {
		src, err := ResolveSource(nil, images)
		require.NoError(t, err)
		assert.IsType(t, SourceImages{}, src)
	})

	t.Run("neither", func(t *testing.T) {
		_, err := ResolveSource(nil, nil)
		assert.ErrorIs(t, err, ErrNoSource)
	})
}

func TestRasterizeImageBatchSkipsBadImages(t *testing.T) {
	store := newTestStore(t)
	baseID := uuid.New()

	good := pngBytes(t, solidImage(800, 1000, color.White))
	files := []SourceImage{
		{Filename: "a.png", Data: good},
		{Filename: "b.png", Data: good},
		{Filename: "broken.png", Data: []byte("garbage")},
		{Filename: "c.png", Data: good},
		{Filename: "d.png", Data: good},
	}

	artifacts := RasterizeImageBatch(store, baseID, files)
	require.Len(t, artifacts, 4)

	// Numbering stays dense over the survivors.
	for i, a := range artifacts {
		assert.Equal(t, i+1, a.Number)
		assert.Equal(t, store.WebPath(BucketPages, PageFilename(baseID, i+1)), a.WebPath)

		_, err := os.Stat(store.AbsFromWebPath(a.WebPath))
		assert.NoError(t, err)
	}

	// The failed image left nothing on disk.
	entries, err := os.ReadDir(filepath.Join(store.BaseDir, BucketPages))
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestRasterizeImageBatchAllBad(t *testing.T) {
	store := newTestStore(t)

	artifacts := RasterizeImageBatch(store, uuid.New(), []SourceImage{
		{Filename: "x.png", Data: []byte("not an image")},
	})
	assert.Empty(t, artifacts)
}

func TestGenerateThumbnail(t *testing.T) {
	store := newTestStore(t)
	baseID := uuid.New()

	artifacts := RasterizeImageBatch(store, baseID, []SourceImage{
		{Filename: "p1.png", Data: pngBytes(t, solidImage(800, 1000, color.White))},
	})
	require.Len(t, artifacts, 1)

	thumb := generateThumbnail(store, baseID, artifacts)
	require.NotNil(t, thumb)
	assert.Equal(t, store.WebPath(BucketThumbnails, ThumbnailFilename(baseID)), *thumb)

	img, err := loadImageFile(store.AbsFromWebPath(*thumb))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 533, img.Bounds().Dy())
}

func TestGenerateThumbnailToleratesFailure(t *testing.T) {
	store := newTestStore(t)

	assert.Nil(t, generateThumbnail(store, uuid.New(), nil), "no pages, no thumbnail")

	// Unreadable page 1: the edition just goes without a thumbnail.
	missing := []PageArtifact{{Number: 1, WebPath: "/uploads/pages/missing.jpg"}}
	assert.Nil(t, generateThumbnail(store, uuid.New(), missing))
}

func TestCropPageImage(t *testing.T) {
	store := newTestStore(t)
	baseID := uuid.New()

	artifacts := RasterizeImageBatch(store, baseID, []SourceImage{
		{Filename: "p1.png", Data: pngBytes(t, solidImage(800, 1000, color.White))},
	})
	require.Len(t, artifacts, 1)
	pagePath := artifacts[0].WebPath

	t.Run("valid rect", func(t *testing.T) {
		webPath, err := CropPageImage(store, pagePath, 10, 20, 300, 200, "tok1")
		require.NoError(t, err)
		assert.Equal(t, store.WebPath(BucketCrops, "crop_tok1.jpg"), webPath)

		img, err := loadImageFile(store.AbsFromWebPath(webPath))
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	})

	t.Run("out of bounds", func(t *testing.T) {
		cases := [][4]int{
			{700, 0, 200, 100}, // extends past the right edge
			{0, 950, 100, 100}, // extends past the bottom edge
			{-5, 0, 100, 100},  // negative origin
			{0, 0, 0, 100},     // zero width
		}
		for i, rc := range cases {
			_, err := CropPageImage(store, pagePath, rc[0], rc[1], rc[2], rc[3], fmt.Sprintf("bad%d", i))
			assert.ErrorIs(t, err, ErrCropOutOfBounds)
		}
	})

	t.Run("missing page image", func(t *testing.T) {
		_, err := CropPageImage(store, "/uploads/pages/ghost.jpg", 0, 0, 10, 10, "tok2")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCropOutOfBounds)
	})
}
