// internals/features/epapers/access/service/evaluator.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	model "koranku_backend/internals/features/epapers/access/model"
)

// FreePreviewPages is how many pages an authenticated caller without an
// active subscription may see when subscription mode is on.
const FreePreviewPages = 3

// PagesUnlimited marks an unrestricted page allowance.
const PagesUnlimited = -1

// Access types — the four terminal classifications (free_plan and
// premium share the unlimited row of the decision table).
const (
	AccessOpen            = "open"
	AccessUnauthenticated = "unauthenticated"
	AccessNoSubscription  = "no_subscription"
	AccessFreePlan        = "free_plan"
	AccessPremium         = "premium"
)

// Decision is the transient per-request access classification. It is
// recomputed on every page-list read; never cached across requests.
type Decision struct {
	CanAccess    bool
	IsSubscriber bool
	IsFreePlan   bool
	AccessType   string
	PagesAllowed int // PagesUnlimited for no cap
}

// ActiveSubscription is the slice of subscription state the evaluator
// needs: status already filtered to {active, trialing} and a live
// period, plus the plan's free flag.
type ActiveSubscription struct {
	PlanIsFree bool
}

// SettingsReader reads one global flag. Injected so tests substitute a
// fixed value without a datastore.
type SettingsReader interface {
	GetBool(ctx context.Context, key string) (bool, error)
}

// SubscriptionReader resolves the caller's active subscription, nil
// when there is none.
type SubscriptionReader interface {
	ActiveSubscription(ctx context.Context, userID uuid.UUID, now time.Time) (*ActiveSubscription, error)
}

// Evaluate classifies the caller. Pure: a function of the mode flag,
// caller presence and subscription state only.
//
//	mode=false            → open, unlimited
//	mode=true, no caller  → unauthenticated, 0 pages
//	mode=true, no sub     → no_subscription, FreePreviewPages
//	mode=true, active sub → premium/free_plan, unlimited
func Evaluate(modeEnabled bool, callerID *uuid.UUID, sub *ActiveSubscription) Decision {
	if !modeEnabled {
		return Decision{
			CanAccess:    true,
			AccessType:   AccessOpen,
			PagesAllowed: PagesUnlimited,
		}
	}

	if callerID == nil {
		return Decision{
			CanAccess:    false,
			AccessType:   AccessUnauthenticated,
			PagesAllowed: 0,
		}
	}

	if sub == nil {
		return Decision{
			CanAccess:    false,
			AccessType:   AccessNoSubscription,
			PagesAllowed: FreePreviewPages,
		}
	}

	accessType := AccessPremium
	if sub.PlanIsFree {
		accessType = AccessFreePlan
	}
	return Decision{
		CanAccess:    true,
		IsSubscriber: true,
		IsFreePlan:   sub.PlanIsFree,
		AccessType:   accessType,
		PagesAllowed: PagesUnlimited,
	}
}

// Evaluator wires the two readers in front of Evaluate.
type Evaluator struct {
	Settings      SettingsReader
	Subscriptions SubscriptionReader
}

// Check runs the full classification for a request. A read error on
// either collaborator degrades to the most restrictive answer for that
// branch rather than failing the request (matching the read path's
// "denial is not an error" contract).
func (e *Evaluator) Check(ctx context.Context, callerID *uuid.UUID, now time.Time) Decision {
	modeEnabled, err := e.Settings.GetBool(ctx, model.SettingKeySubscriptionMode)
	if err != nil {
		modeEnabled = false
	}
	if !modeEnabled || callerID == nil {
		return Evaluate(modeEnabled, callerID, nil)
	}

	sub, err := e.Subscriptions.ActiveSubscription(ctx, *callerID, now)
	if err != nil {
		sub = nil
	}
	return Evaluate(modeEnabled, callerID, sub)
}
