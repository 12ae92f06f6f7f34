// internals/features/epapers/editions/model/edition_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Edition status lifecycle
const (
	EditionStatusDraft     = "draft"
	EditionStatusLive      = "live"
	EditionStatusPublished = "published"
	EditionStatusArchived  = "archived"
)

type EditionModel struct {
	// PK
	EditionID uuid.UUID `json:"edition_id" gorm:"column:edition_id;type:uuid;default:gen_random_uuid();primaryKey"`

	EditionTitle       string  `json:"edition_title"                 gorm:"column:edition_title;type:varchar(255);not null"`
	EditionDescription *string `json:"edition_description,omitempty" gorm:"column:edition_description"`
	EditionSlug        string  `json:"edition_slug"                  gorm:"column:edition_slug;type:varchar(160);uniqueIndex:uq_edition_slug"`

	// Artifact paths (web-servable, nullable until ingestion backfills)
	EditionPDFPath       *string `json:"edition_pdf_path,omitempty"       gorm:"column:edition_pdf_path;type:varchar(255)"`
	EditionThumbnailPath *string `json:"edition_thumbnail_path,omitempty" gorm:"column:edition_thumbnail_path;type:varchar(255)"`

	// 0 until ingestion completes, then equals the count of page rows
	EditionTotalPages int `json:"edition_total_pages" gorm:"column:edition_total_pages;not null;default:0"`

	EditionStatus      string     `json:"edition_status" gorm:"column:edition_status;type:varchar(20);not null;default:'draft';index:idx_edition_status"`
	EditionPublishDate *time.Time `json:"edition_publish_date,omitempty" gorm:"column:edition_publish_date;type:timestamptz"`
	EditionIsPublic    bool       `json:"edition_is_public" gorm:"column:edition_is_public;not null;default:true"`
	EditionIsFree      bool       `json:"edition_is_free"   gorm:"column:edition_is_free;not null;default:false"`

	EditionCreatedBy uuid.UUID `json:"edition_created_by" gorm:"column:edition_created_by;type:uuid;not null;index:idx_edition_created_by"`

	EditionCreatedAt time.Time  `json:"edition_created_at" gorm:"column:edition_created_at;type:timestamptz;not null;autoCreateTime"`
	EditionUpdatedAt *time.Time `json:"edition_updated_at" gorm:"column:edition_updated_at;type:timestamptz;autoUpdateTime"`
}

func (EditionModel) TableName() string { return "editions" }

// EditionCategoryModel links an edition to a category (m2m).
type EditionCategoryModel struct {
	EditionCategoryEditionID  uuid.UUID `json:"edition_category_edition_id"  gorm:"column:edition_category_edition_id;type:uuid;not null;primaryKey"`
	EditionCategoryCategoryID uuid.UUID `json:"edition_category_category_id" gorm:"column:edition_category_category_id;type:uuid;not null;primaryKey"`

	EditionCategoryCreatedAt time.Time `json:"edition_category_created_at" gorm:"column:edition_category_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (EditionCategoryModel) TableName() string { return "edition_categories" }
