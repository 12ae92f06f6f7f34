// internals/features/epapers/access/model/access_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses that count as active
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusTrialing = "trialing"
)

// SettingKeySubscriptionMode is the global flag gating edition reads.
const SettingKeySubscriptionMode = "subscription_mode_enabled"

// SettingModel is a plain key/value row. The billing dashboard owns the
// writes; this core only reads.
type SettingModel struct {
	SettingKey   string `json:"setting_key"   gorm:"column:setting_key;type:varchar(100);primaryKey"`
	SettingValue string `json:"setting_value" gorm:"column:setting_value;type:varchar(255);not null"`

	SettingUpdatedAt *time.Time `json:"setting_updated_at" gorm:"column:setting_updated_at;type:timestamptz;autoUpdateTime"`
}

func (SettingModel) TableName() string { return "settings" }

type SubscriptionPlanModel struct {
	SubscriptionPlanID     uuid.UUID `json:"subscription_plan_id"      gorm:"column:subscription_plan_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubscriptionPlanName   string    `json:"subscription_plan_name"    gorm:"column:subscription_plan_name;type:varchar(100);not null"`
	SubscriptionPlanIsFree bool      `json:"subscription_plan_is_free" gorm:"column:subscription_plan_is_free;not null;default:false"`

	SubscriptionPlanCreatedAt time.Time `json:"subscription_plan_created_at" gorm:"column:subscription_plan_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (SubscriptionPlanModel) TableName() string { return "subscription_plans" }

// SubscriptionModel rows are written by the billing collaborator
// (checkout webhooks, settings CRUD); the core only reads them.
type SubscriptionModel struct {
	SubscriptionID     uuid.UUID `json:"subscription_id"      gorm:"column:subscription_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubscriptionUserID uuid.UUID `json:"subscription_user_id" gorm:"column:subscription_user_id;type:uuid;not null;index:idx_subscription_user"`
	SubscriptionPlanID uuid.UUID `json:"subscription_plan_id" gorm:"column:subscription_plan_id;type:uuid;not null"`

	SubscriptionStatus           string     `json:"subscription_status" gorm:"column:subscription_status;type:varchar(20);not null"`
	SubscriptionCurrentPeriodEnd *time.Time `json:"subscription_current_period_end,omitempty" gorm:"column:subscription_current_period_end;type:timestamptz"`

	SubscriptionCreatedAt time.Time `json:"subscription_created_at" gorm:"column:subscription_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (SubscriptionModel) TableName() string { return "subscriptions" }
