// internals/features/epapers/access/service/readers.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "koranku_backend/internals/features/epapers/access/model"
)

/* =========================
   DB-backed readers
   ========================= */

type DBSettingsReader struct {
	DB *gorm.DB
}

// GetBool reads a settings row. A missing key is false, not an error.
func (r *DBSettingsReader) GetBool(ctx context.Context, key string) (bool, error) {
	var s model.SettingModel
	err := r.DB.WithContext(ctx).
		Where("setting_key = ?", key).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.SettingValue == "true", nil
}

type DBSubscriptionReader struct {
	DB *gorm.DB
}

// ActiveSubscription returns the caller's newest subscription with
// status in {active, trialing} and a period end that is NULL or in the
// future, joined to its plan for the free flag. Nil when none qualifies.
func (r *DBSubscriptionReader) ActiveSubscription(ctx context.Context, userID uuid.UUID, now time.Time) (*ActiveSubscription, error) {
	var row struct {
		SubscriptionPlanIsFree bool
	}
	err := r.DB.WithContext(ctx).
		Table("subscriptions AS s").
		Select("p.subscription_plan_is_free").
		Joins("JOIN subscription_plans AS p ON p.subscription_plan_id = s.subscription_plan_id").
		Where("s.subscription_user_id = ?", userID).
		Where("s.subscription_status IN ?", []string{
			model.SubscriptionStatusActive,
			model.SubscriptionStatusTrialing,
		}).
		Where("s.subscription_current_period_end IS NULL OR s.subscription_current_period_end > ?", now).
		Order("s.subscription_created_at DESC").
		Limit(1).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ActiveSubscription{PlanIsFree: row.SubscriptionPlanIsFree}, nil
}

// NewEvaluator builds the request-time evaluator over the DB readers.
func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{
		Settings:      &DBSettingsReader{DB: db},
		Subscriptions: &DBSubscriptionReader{DB: db},
	}
}
