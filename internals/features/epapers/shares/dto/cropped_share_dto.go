// internals/features/epapers/shares/dto/cropped_share_dto.go
package dto

import (
	"encoding/json"

	"gorm.io/datatypes"
)

/* =========================
   REQUEST
   ========================= */

// CropRegion is a rectangle in source-page pixel space.
type CropRegion struct {
	X      int `json:"x"      validate:"min=0"`
	Y      int `json:"y"      validate:"min=0"`
	Width  int `json:"width"  validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
}

func (r CropRegion) ToJSON() datatypes.JSON {
	b, _ := json.Marshal(r)
	return datatypes.JSON(b)
}

type CroppedShareCreateRequest struct {
	EditionID string     `json:"e_paper_id" validate:"required,uuid"`
	PageID    string     `json:"page_id"    validate:"required,uuid"`
	Crop      CropRegion `json:"crop"       validate:"required"`
}

/* =========================
   RESPONSE
   ========================= */

type CroppedShareResponse struct {
	Token     string `json:"share_token"`
	ShareURL  string `json:"share_url"`
	ImagePath string `json:"image_path"`
	ExpiresAt string `json:"expires_at"`
}
