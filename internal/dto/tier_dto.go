package dto

import "time"

type TierLimitsResponse struct {
	MaxCardsPerGeneration int `json:"max_cards_per_generation"`
	MaxSavedSets          int `json:"max_saved_sets"`
	MaxLifetimeGenerated  int `json:"max_lifetime_generated"`
}

type EntitlementResponse struct {
	Identity    string             `json:"identity"`
	Tier        string             `json:"tier"`
	Limits      TierLimitsResponse `json:"limits"`
	Unconfirmed bool               `json:"unconfirmed"`
	ExpiresAt   *time.Time         `json:"expires_at,omitempty"`
}
