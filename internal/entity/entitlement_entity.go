// FILE: internal/entity/entitlement_entity.go
package entity

import "time"

type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// Unlimited marks a limit with no cap.
const Unlimited = -1

const (
	FreeMaxCardsPerGeneration    = 5
	FreeMaxSavedSets             = 3
	FreeMaxLifetimeGenerated     = 15
	PremiumMaxCardsPerGeneration = 10
)

type TierLimits struct {
	MaxCardsPerGeneration int
	MaxSavedSets          int
	MaxLifetimeGenerated  int
}

// Entitlement is the resolved tier plus the limits it implies. The remote
// tier lookup is authoritative whenever reachable; Unconfirmed flags an
// optimistic client-side upgrade that has not yet been verified remotely.
type Entitlement struct {
	Identity    string
	Tier        Tier
	Limits      TierLimits
	Unconfirmed bool
	ExpiresAt   *time.Time
}

func LimitsFor(tier Tier) TierLimits {
	if tier == TierPremium {
		return TierLimits{
			MaxCardsPerGeneration: PremiumMaxCardsPerGeneration,
			MaxSavedSets:          Unlimited,
			MaxLifetimeGenerated:  Unlimited,
		}
	}
	return TierLimits{
		MaxCardsPerGeneration: FreeMaxCardsPerGeneration,
		MaxSavedSets:          FreeMaxSavedSets,
		MaxLifetimeGenerated:  FreeMaxLifetimeGenerated,
	}
}

func DefaultEntitlement(identity string) *Entitlement {
	return &Entitlement{
		Identity: identity,
		Tier:     TierFree,
		Limits:   LimitsFor(TierFree),
	}
}
