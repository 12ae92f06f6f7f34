package service

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func createPagesTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Exec(`CREATE TABLE edition_pages (
		edition_page_id TEXT PRIMARY KEY,
		edition_page_edition_id TEXT NOT NULL,
		edition_page_number INTEGER NOT NULL,
		edition_page_image_path TEXT NOT NULL,
		edition_page_created_at DATETIME
	)`).Error)
}

func createEditionsTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Exec(`CREATE TABLE editions (
		edition_id TEXT PRIMARY KEY,
		edition_total_pages INTEGER NOT NULL DEFAULT 0,
		edition_thumbnail_path TEXT,
		edition_updated_at DATETIME
	)`).Error)
}

func bucketFileCount(t *testing.T, store *ArtifactStore, bucket string) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(store.BaseDir, bucket))
	require.NoError(t, err)
	return len(entries)
}

func TestIngestImagesBackfillsEdition(t *testing.T) {
	db := newTestDB(t)
	createPagesTable(t, db)
	createEditionsTable(t, db)
	store := newTestStore(t)

	editionID := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO editions (edition_id) VALUES (?)`, editionID.String(),
	).Error)

	ing := NewIngestor(db, store)
	result, err := ing.Ingest(context.Background(), editionID, SourceImages{Files: []SourceImage{
		{Filename: "p1.png", Data: pngBytes(t, solidImage(800, 1000, color.White))},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalPages)
	require.NotNil(t, result.ThumbnailPath)

	var pageRows int64
	require.NoError(t, db.Table("edition_pages").Count(&pageRows).Error)
	assert.EqualValues(t, 1, pageRows)

	var row struct {
		EditionTotalPages    int
		EditionThumbnailPath *string
	}
	require.NoError(t, db.Table("editions").
		Where("edition_id = ?", editionID.String()).
		Take(&row).Error)
	assert.Equal(t, 1, row.EditionTotalPages)
	require.NotNil(t, row.EditionThumbnailPath)
	assert.Equal(t, *result.ThumbnailPath, *row.EditionThumbnailPath)
}

func TestIngestBackfillFailureCleansUp(t *testing.T) {
	db := newTestDB(t)
	// Page inserts succeed, but the editions table is missing, so the
	// backfill UPDATE fails after the rows and files exist.
	createPagesTable(t, db)
	store := newTestStore(t)

	ing := NewIngestor(db, store)
	_, err := ing.Ingest(context.Background(), uuid.New(), SourceImages{Files: []SourceImage{
		{Filename: "p1.png", Data: pngBytes(t, solidImage(800, 1000, color.White))},
	}})
	require.Error(t, err)

	// No orphans: page rows, page files and the thumbnail are all gone.
	var pageRows int64
	require.NoError(t, db.Table("edition_pages").Count(&pageRows).Error)
	assert.EqualValues(t, 0, pageRows)
	assert.Zero(t, bucketFileCount(t, store, BucketPages))
	assert.Zero(t, bucketFileCount(t, store, BucketThumbnails))
}

func TestIngestPageInsertFailureCleansUp(t *testing.T) {
	db := newTestDB(t)
	// No tables at all: the batch insert itself fails.
	store := newTestStore(t)

	ing := NewIngestor(db, store)
	_, err := ing.Ingest(context.Background(), uuid.New(), SourceImages{Files: []SourceImage{
		{Filename: "p1.png", Data: pngBytes(t, solidImage(800, 1000, color.White))},
	}})
	require.Error(t, err)
	assert.Zero(t, bucketFileCount(t, store, BucketPages))
	assert.Zero(t, bucketFileCount(t, store, BucketThumbnails))
}
