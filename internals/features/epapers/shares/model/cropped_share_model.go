// internals/features/epapers/shares/model/cropped_share_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ShareTTL is how long a cropped share stays retrievable. No renewal.
const ShareTTL = 30 * 24 * time.Hour

// CroppedShareModel is a derived sub-image of a page, addressable by an
// opaque token. Never updated after creation.
type CroppedShareModel struct {
	CroppedShareID uuid.UUID `json:"cropped_share_id" gorm:"column:cropped_share_id;type:uuid;default:gen_random_uuid();primaryKey"`

	CroppedShareEditionID uuid.UUID `json:"cropped_share_edition_id" gorm:"column:cropped_share_edition_id;type:uuid;not null;index:idx_cropped_share_edition"`
	CroppedSharePageID    uuid.UUID `json:"cropped_share_page_id"    gorm:"column:cropped_share_page_id;type:uuid;not null"`

	// {"x":..,"y":..,"width":..,"height":..} in source-page pixel space
	CroppedShareCrop datatypes.JSON `json:"cropped_share_crop" gorm:"column:cropped_share_crop;type:jsonb;not null"`

	CroppedShareImagePath string `json:"cropped_share_image_path" gorm:"column:cropped_share_image_path;type:varchar(255);not null"`

	// Opaque public lookup key
	CroppedShareToken string `json:"cropped_share_token" gorm:"column:cropped_share_token;type:varchar(64);not null;uniqueIndex:uq_cropped_share_token"`
	CroppedShareURL   string `json:"cropped_share_url"   gorm:"column:cropped_share_url;type:varchar(255);not null"`

	CroppedShareExpiresAt time.Time `json:"cropped_share_expires_at" gorm:"column:cropped_share_expires_at;type:timestamptz;not null;index:idx_cropped_share_expires"`
	CroppedShareCreatedBy uuid.UUID `json:"cropped_share_created_by" gorm:"column:cropped_share_created_by;type:uuid;not null"`
	CroppedShareCreatedAt time.Time `json:"cropped_share_created_at" gorm:"column:cropped_share_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (CroppedShareModel) TableName() string { return "cropped_shares" }

// IsExpired reports whether the share is past its expiry at the given
// instant. Retrievable iff now < expires_at.
func (m *CroppedShareModel) IsExpired(now time.Time) bool {
	return !now.Before(m.CroppedShareExpiresAt)
}
