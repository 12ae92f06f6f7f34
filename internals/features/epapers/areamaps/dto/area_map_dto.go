// internals/features/epapers/areamaps/dto/area_map_dto.go
package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "koranku_backend/internals/features/epapers/areamaps/model"
	service "koranku_backend/internals/features/epapers/areamaps/service"
)

/* =========================
   REQUEST
   ========================= */

type AreaMapCreateRequest struct {
	EditionID uuid.UUID `json:"e_paper_id" validate:"required"`
	PageID    uuid.UUID `json:"page_id"    validate:"required"`

	AreaType    string          `json:"area_type"   validate:"required,oneof=link page_nav ad"`
	Coordinates []service.Point `json:"coordinates" validate:"required,min=3"`

	LinkURL        *string    `json:"link_url,omitempty"`
	LinkPageNumber *int       `json:"link_page_number,omitempty"`
	AdID           *uuid.UUID `json:"ad_id,omitempty"`
	TooltipText    *string    `json:"tooltip_text,omitempty"`
}

func (r *AreaMapCreateRequest) Normalize() {
	r.AreaType = strings.TrimSpace(strings.ToLower(r.AreaType))
	if r.LinkURL != nil {
		v := strings.TrimSpace(*r.LinkURL)
		if v == "" {
			r.LinkURL = nil
		} else {
			r.LinkURL = &v
		}
	}
	if r.TooltipText != nil {
		v := strings.TrimSpace(*r.TooltipText)
		if v == "" {
			r.TooltipText = nil
		} else {
			r.TooltipText = &v
		}
	}
}

// ValidateKindTarget enforces the tagged-variant pairing the flat
// schema does not: link needs a URL, page_nav a page number, ad an ad
// id. The persisted row stays flat with nullable columns.
func (r *AreaMapCreateRequest) ValidateKindTarget() error {
	switch r.AreaType {
	case model.AreaTypeLink:
		if r.LinkURL == nil {
			return fmt.Errorf("area type %q requires link_url", r.AreaType)
		}
	case model.AreaTypePageNav:
		if r.LinkPageNumber == nil || *r.LinkPageNumber < 1 {
			return fmt.Errorf("area type %q requires a positive link_page_number", r.AreaType)
		}
	case model.AreaTypeAd:
		if r.AdID == nil {
			return fmt.Errorf("area type %q requires ad_id", r.AreaType)
		}
	}
	return nil
}

func (r *AreaMapCreateRequest) ToModel() (*model.AreaMapModel, error) {
	coords, err := json.Marshal(r.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("marshal coordinates: %w", err)
	}
	return &model.AreaMapModel{
		AreaMapEditionID:      r.EditionID,
		AreaMapPageID:         r.PageID,
		AreaMapType:           r.AreaType,
		AreaMapCoordinates:    datatypes.JSON(coords),
		AreaMapLinkURL:        r.LinkURL,
		AreaMapLinkPageNumber: r.LinkPageNumber,
		AreaMapAdID:           r.AdID,
		AreaMapTooltipText:    r.TooltipText,
		AreaMapIsActive:       true,
	}, nil
}

type AreaMapBatchCreateRequest struct {
	Areas []AreaMapCreateRequest `json:"areas" validate:"required,min=1,dive"`
}

type AreaMapUpdateRequest struct {
	AreaType       *string         `json:"area_type,omitempty" validate:"omitempty,oneof=link page_nav ad"`
	Coordinates    []service.Point `json:"coordinates,omitempty" validate:"omitempty,min=3"`
	LinkURL        *string         `json:"link_url,omitempty"`
	LinkPageNumber *int            `json:"link_page_number,omitempty"`
	AdID           *uuid.UUID      `json:"ad_id,omitempty"`
	TooltipText    *string         `json:"tooltip_text,omitempty"`
	IsActive       *bool           `json:"is_active,omitempty"`
}

// ToUpdates builds the partial column map; empty means nothing to do.
func (r *AreaMapUpdateRequest) ToUpdates() (map[string]any, error) {
	updates := map[string]any{}
	if r.AreaType != nil {
		updates["area_map_type"] = strings.TrimSpace(strings.ToLower(*r.AreaType))
	}
	if r.Coordinates != nil {
		coords, err := json.Marshal(r.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("marshal coordinates: %w", err)
		}
		updates["area_map_coordinates"] = datatypes.JSON(coords)
	}
	if r.LinkURL != nil {
		updates["area_map_link_url"] = *r.LinkURL
	}
	if r.LinkPageNumber != nil {
		updates["area_map_link_page_number"] = *r.LinkPageNumber
	}
	if r.AdID != nil {
		updates["area_map_ad_id"] = *r.AdID
	}
	if r.TooltipText != nil {
		updates["area_map_tooltip_text"] = *r.TooltipText
	}
	if r.IsActive != nil {
		updates["area_map_is_active"] = *r.IsActive
	}
	return updates, nil
}

type HitTestRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

/* =========================
   RESPONSE
   ========================= */

// AreaMapWithAd joins the linked advertisement's display fields onto a
// page-level read.
type AreaMapWithAd struct {
	model.AreaMapModel
	AdImage *string `json:"ad_image,omitempty" gorm:"column:ad_image"`
	AdLink  *string `json:"ad_link,omitempty"  gorm:"column:ad_link"`
}

// AreaMapWithPageNumber carries the owning page's number on
// edition-level reads.
type AreaMapWithPageNumber struct {
	model.AreaMapModel
	PageNumber int `json:"page_number" gorm:"column:page_number"`
}

type AreaMapStats struct {
	TotalAreas int64 `json:"total_areas"`
	LinkAreas  int64 `json:"link_areas"`
	AdAreas    int64 `json:"ad_areas"`
	NavAreas   int64 `json:"nav_areas"`
}

// DecodeCoordinates unpacks a persisted vertex list.
func DecodeCoordinates(raw datatypes.JSON) ([]service.Point, error) {
	var pts []service.Point
	if err := json.Unmarshal(raw, &pts); err != nil {
		return nil, fmt.Errorf("decode coordinates: %w", err)
	}
	return pts, nil
}
