// internals/features/epapers/editions/model/edition_page_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// EditionPageModel is one rasterized page image. Pages are created in a
// single batch during ingestion with dense 1-based numbering, never
// updated, and removed only by edition deletion.
type EditionPageModel struct {
	EditionPageID uuid.UUID `json:"edition_page_id" gorm:"column:edition_page_id;type:uuid;default:gen_random_uuid();primaryKey"`

	EditionPageEditionID uuid.UUID `json:"edition_page_edition_id" gorm:"column:edition_page_edition_id;type:uuid;not null;index:idx_edition_page_edition;uniqueIndex:uq_edition_page_number"`
	EditionPageNumber    int       `json:"edition_page_number"     gorm:"column:edition_page_number;not null;uniqueIndex:uq_edition_page_number"`
	EditionPageImagePath string    `json:"edition_page_image_path" gorm:"column:edition_page_image_path;type:varchar(255);not null"`

	EditionPageCreatedAt time.Time `json:"edition_page_created_at" gorm:"column:edition_page_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (EditionPageModel) TableName() string { return "edition_pages" }
