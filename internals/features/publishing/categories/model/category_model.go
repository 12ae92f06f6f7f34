// internals/features/publishing/categories/model/category_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type CategoryModel struct {
	CategoryID   uuid.UUID `json:"category_id"   gorm:"column:category_id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryName string    `json:"category_name" gorm:"column:category_name;type:varchar(100);not null"`
	CategorySlug string    `json:"category_slug" gorm:"column:category_slug;type:varchar(120);uniqueIndex:uq_category_slug"`

	CategoryCreatedAt time.Time `json:"category_created_at" gorm:"column:category_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (CategoryModel) TableName() string { return "categories" }
