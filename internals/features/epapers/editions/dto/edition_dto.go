// internals/features/epapers/editions/dto/edition_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	areaMapDto "koranku_backend/internals/features/epapers/areamaps/dto"
	model "koranku_backend/internals/features/epapers/editions/model"
)

/* =========================
   REQUEST
   ========================= */

// EditionCreateRequest carries the multipart form fields; the files
// (`pdf`, `images`) are read straight from the multipart form.
type EditionCreateRequest struct {
	Title       string   `form:"title" validate:"required,min=1,max=255"`
	Description *string  `form:"description"`
	Status      string   `form:"status" validate:"omitempty,oneof=draft live published archived"`
	IsPublic    *bool    `form:"is_public"`
	IsFree      *bool    `form:"is_free"`
	Categories  []string `form:"categories"`
}

func (r *EditionCreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Status = strings.TrimSpace(strings.ToLower(r.Status))
	if r.Status == "" {
		r.Status = model.EditionStatusDraft
	}
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		if v == "" {
			r.Description = nil
		} else {
			r.Description = &v
		}
	}
}

// CategoryIDs parses the raw category form values, skipping blanks and
// malformed ids the way the dashboard sends them.
func (r *EditionCreateRequest) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Categories))
	for _, raw := range r.Categories {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *EditionCreateRequest) ToModel(createdBy uuid.UUID) *model.EditionModel {
	isPublic := true
	if r.IsPublic != nil {
		isPublic = *r.IsPublic
	}
	isFree := false
	if r.IsFree != nil {
		isFree = *r.IsFree
	}
	return &model.EditionModel{
		EditionTitle:       r.Title,
		EditionDescription: r.Description,
		EditionStatus:      r.Status,
		EditionIsPublic:    isPublic,
		EditionIsFree:      isFree,
		EditionCreatedBy:   createdBy,
	}
}

type EditionUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=draft live published archived"`
	IsPublic    *bool   `json:"is_public,omitempty"`
	IsFree      *bool   `json:"is_free,omitempty"`
}

// ToUpdates builds the partial column map; empty means nothing to do.
func (r *EditionUpdateRequest) ToUpdates() map[string]any {
	updates := map[string]any{}
	if r.Title != nil {
		updates["edition_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		updates["edition_description"] = *r.Description
	}
	if r.Status != nil {
		updates["edition_status"] = strings.TrimSpace(strings.ToLower(*r.Status))
	}
	if r.IsPublic != nil {
		updates["edition_is_public"] = *r.IsPublic
	}
	if r.IsFree != nil {
		updates["edition_is_free"] = *r.IsFree
	}
	return updates
}

/* =========================
   RESPONSE
   ========================= */

// EditionListItem is one row of the listing, enriched with the page
// count and the first page image.
type EditionListItem struct {
	model.EditionModel
	PageCount      int64   `json:"page_count"       gorm:"column:page_count"`
	FirstPageImage *string `json:"first_page_image" gorm:"column:first_page_image"`
}

// AccessInfo mirrors the evaluator's decision on the read payload.
type AccessInfo struct {
	CanAccess    bool   `json:"can_access"`
	AccessType   string `json:"access_type"`
	PagesAllowed int    `json:"pages_allowed"`
	PagesTotal   int    `json:"pages_total"`
	IsSubscriber bool   `json:"is_subscriber"`
	IsFreePlan   bool   `json:"is_free_plan"`
}

// PageWithAreaMaps is one visible page carrying its active hotspots.
type PageWithAreaMaps struct {
	model.EditionPageModel
	AreaMaps []areaMapDto.AreaMapWithAd `json:"area_maps"`
}

// EditionDetailResponse: hidden pages are omitted entirely, never
// flagged — the payload carries no recoverable trace of them.
type EditionDetailResponse struct {
	model.EditionModel
	Pages      []PageWithAreaMaps `json:"pages"`
	TotalPages int                `json:"total_pages"`
	AccessInfo AccessInfo         `json:"access_info"`

	PagesLimited bool   `json:"pages_limited,omitempty"`
	Message      string `json:"message,omitempty"`
}
