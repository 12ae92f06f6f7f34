// internals/features/epapers/editions/service/ingest.go
package service

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "koranku_backend/internals/features/epapers/editions/model"
)

// PageArtifact is one rasterized page file, numbered by source order.
type PageArtifact struct {
	Number  int
	WebPath string
}

// IngestResult backfills the edition row after rasterization.
type IngestResult struct {
	TotalPages    int
	ThumbnailPath *string // nil when no page survived
}

// Ingestor turns a resolved Source into page files, a thumbnail and
// page rows, then backfills the edition's count and thumbnail.
type Ingestor struct {
	DB    *gorm.DB
	Store *ArtifactStore
}

func NewIngestor(db *gorm.DB, store *ArtifactStore) *Ingestor {
	return &Ingestor{DB: db, Store: store}
}

// Ingest runs the pipeline for one edition. On a total failure (PDF
// branch or DB insert), every file written so far is removed before the
// error is returned so the caller can drop the pending edition row.
func (ing *Ingestor) Ingest(ctx context.Context, editionID uuid.UUID, src Source) (*IngestResult, error) {
	baseID := uuid.New()

	var artifacts []PageArtifact
	switch s := src.(type) {
	case SourcePDF:
		pages, err := RasterizePDF(ing.Store, baseID, s.AbsPath)
		if err != nil {
			return nil, err
		}
		artifacts = pages
	case SourceImages:
		artifacts = RasterizeImageBatch(ing.Store, baseID, s.Files)
	default:
		return nil, ErrNoSource
	}

	thumbPath := generateThumbnail(ing.Store, baseID, artifacts)

	result := &IngestResult{TotalPages: len(artifacts), ThumbnailPath: thumbPath}

	if len(artifacts) > 0 {
		rows := make([]model.EditionPageModel, 0, len(artifacts))
		for _, a := range artifacts {
			rows = append(rows, model.EditionPageModel{
				EditionPageEditionID: editionID,
				EditionPageNumber:    a.Number,
				EditionPageImagePath: a.WebPath,
			})
		}
		if err := ing.DB.WithContext(ctx).Create(&rows).Error; err != nil {
			ing.cleanupArtifacts(artifacts, thumbPath)
			return nil, fmt.Errorf("insert page rows: %w", err)
		}
	}

	if err := ing.DB.WithContext(ctx).Model(&model.EditionModel{}).
		Where("edition_id = ?", editionID).
		Updates(map[string]any{
			"edition_total_pages":    result.TotalPages,
			"edition_thumbnail_path": result.ThumbnailPath,
		}).Error; err != nil {
		// A failed backfill is a total failure too: the page rows just
		// inserted and every written file go with it.
		if len(artifacts) > 0 {
			ing.DB.WithContext(ctx).
				Where("edition_page_edition_id = ?", editionID).
				Delete(&model.EditionPageModel{})
		}
		ing.cleanupArtifacts(artifacts, thumbPath)
		return nil, fmt.Errorf("backfill edition: %w", err)
	}

	return result, nil
}

func (ing *Ingestor) cleanupArtifacts(artifacts []PageArtifact, thumbPath *string) {
	for _, a := range artifacts {
		_ = ing.Store.Remove(a.WebPath)
	}
	if thumbPath != nil {
		_ = ing.Store.Remove(*thumbPath)
	}
}

/* =========================
   Rasterization stages
   ========================= */

// RasterizePDF renders the whole document and writes the page files.
// Pages may be scaled up to the 1200×1600 box. Any failure removes the
// files already written and aborts.
func RasterizePDF(store *ArtifactStore, baseID uuid.UUID, absPath string) ([]PageArtifact, error) {
	images, err := renderPDFPages(absPath)
	if err != nil {
		return nil, err
	}

	artifacts := make([]PageArtifact, 0, len(images))
	for i, img := range images {
		n := i + 1
		webPath, err := writePageFile(store, baseID, n, fitPage(img, true))
		if err != nil {
			for _, a := range artifacts {
				_ = store.Remove(a.WebPath)
			}
			return nil, err
		}
		artifacts = append(artifacts, PageArtifact{Number: n, WebPath: webPath})
	}
	return artifacts, nil
}

// RasterizeImageBatch processes raw uploads in order. A failing image
// is logged and skipped, its partial output removed; numbering stays
// dense over the survivors.
func RasterizeImageBatch(store *ArtifactStore, baseID uuid.UUID, files []SourceImage) []PageArtifact {
	artifacts := make([]PageArtifact, 0, len(files))
	pageNum := 1
	for i, f := range files {
		img, err := decodeImage(f.Data)
		if err != nil {
			log.Printf("[INGEST] skip image %d (%s): %v", i+1, f.Filename, err)
			continue
		}

		processed := fitPage(flattenOnWhite(img), false)
		webPath, err := writePageFile(store, baseID, pageNum, processed)
		if err != nil {
			log.Printf("[INGEST] skip image %d (%s): %v", i+1, f.Filename, err)
			continue
		}

		artifacts = append(artifacts, PageArtifact{Number: pageNum, WebPath: webPath})
		pageNum++
	}
	return artifacts
}

func writePageFile(store *ArtifactStore, baseID uuid.UUID, n int, img image.Image) (string, error) {
	name := PageFilename(baseID, n)
	abs := store.AbsPath(BucketPages, name)
	if err := saveJPEG(img, abs); err != nil {
		_ = store.RemoveAbs(abs)
		return "", fmt.Errorf("write page %d: %w", n, err)
	}
	return store.WebPath(BucketPages, name), nil
}

// generateThumbnail derives the 400×533 cover thumbnail from page 1.
// Thumbnail failures are tolerated: the edition just has no thumbnail.
func generateThumbnail(store *ArtifactStore, baseID uuid.UUID, artifacts []PageArtifact) *string {
	if len(artifacts) == 0 {
		return nil
	}

	first := store.AbsFromWebPath(artifacts[0].WebPath)
	img, err := loadImageFile(first)
	if err != nil {
		log.Printf("[INGEST] thumbnail source unreadable: %v", err)
		return nil
	}

	name := ThumbnailFilename(baseID)
	abs := store.AbsPath(BucketThumbnails, name)
	if err := saveJPEG(makeThumbnail(img), abs); err != nil {
		log.Printf("[INGEST] thumbnail write failed: %v", err)
		_ = store.RemoveAbs(abs)
		return nil
	}
	webPath := store.WebPath(BucketThumbnails, name)
	return &webPath
}
