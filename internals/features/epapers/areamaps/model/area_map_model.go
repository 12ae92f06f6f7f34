// internals/features/epapers/areamaps/model/area_map_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Area kinds. The kind decides which target field is meaningful:
// link → AreaMapLinkURL, page_nav → AreaMapLinkPageNumber, ad → AreaMapAdID.
// The schema keeps the flat nullable columns; the DTO construction path
// enforces the pairing.
const (
	AreaTypeLink    = "link"
	AreaTypePageNav = "page_nav"
	AreaTypeAd      = "ad"
)

type AreaMapModel struct {
	AreaMapID uuid.UUID `json:"area_map_id" gorm:"column:area_map_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// FKs
	AreaMapEditionID uuid.UUID `json:"area_map_edition_id" gorm:"column:area_map_edition_id;type:uuid;not null;index:idx_area_map_edition"`
	AreaMapPageID    uuid.UUID `json:"area_map_page_id"    gorm:"column:area_map_page_id;type:uuid;not null;index:idx_area_map_page"`

	AreaMapType string `json:"area_map_type" gorm:"column:area_map_type;type:varchar(20);not null"`

	// Ordered polygon vertices, [{"x":..,"y":..}, ...], ≥3 points,
	// in page-image pixel space.
	AreaMapCoordinates datatypes.JSON `json:"area_map_coordinates" gorm:"column:area_map_coordinates;type:jsonb;not null"`

	AreaMapLinkURL        *string    `json:"area_map_link_url,omitempty"         gorm:"column:area_map_link_url;type:varchar(512)"`
	AreaMapLinkPageNumber *int       `json:"area_map_link_page_number,omitempty" gorm:"column:area_map_link_page_number"`
	AreaMapAdID           *uuid.UUID `json:"area_map_ad_id,omitempty"            gorm:"column:area_map_ad_id;type:uuid;index:idx_area_map_ad"`
	AreaMapTooltipText    *string    `json:"area_map_tooltip_text,omitempty"     gorm:"column:area_map_tooltip_text;type:varchar(255)"`

	AreaMapIsActive bool `json:"area_map_is_active" gorm:"column:area_map_is_active;not null;default:true"`

	AreaMapCreatedAt time.Time  `json:"area_map_created_at" gorm:"column:area_map_created_at;type:timestamptz;not null;autoCreateTime"`
	AreaMapUpdatedAt *time.Time `json:"area_map_updated_at" gorm:"column:area_map_updated_at;type:timestamptz;autoUpdateTime"`
}

func (AreaMapModel) TableName() string { return "area_maps" }
