// internals/features/publishing/ads/model/advertisement_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AdvertisementModel is the linkage target for ad-kind area maps. The
// ad placement CRUD itself lives in the dashboard collaborator; page
// reads only join image path and link URL.
type AdvertisementModel struct {
	AdvertisementID uuid.UUID `json:"advertisement_id" gorm:"column:advertisement_id;type:uuid;default:gen_random_uuid();primaryKey"`

	AdvertisementTitle     string  `json:"advertisement_title"      gorm:"column:advertisement_title;type:varchar(255);not null"`
	AdvertisementImagePath *string `json:"advertisement_image_path" gorm:"column:advertisement_image_path;type:varchar(255)"`
	AdvertisementLinkURL   *string `json:"advertisement_link_url"   gorm:"column:advertisement_link_url;type:varchar(512)"`
	AdvertisementIsActive  bool    `json:"advertisement_is_active"  gorm:"column:advertisement_is_active;not null;default:true"`

	AdvertisementCreatedAt time.Time `json:"advertisement_created_at" gorm:"column:advertisement_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (AdvertisementModel) TableName() string { return "advertisements" }
