package model

import "time"

// EntitlementCache holds the last known tier per identity. It is a cache of
// the remote tier lookup, not a source of truth: the unconfirmed flag marks
// optimistic upgrades awaiting remote verification.
type EntitlementCache struct {
	Identity    string `gorm:"type:varchar(255);primaryKey"`
	Tier        string `gorm:"type:varchar(16);not null;default:free"`
	Unconfirmed bool   `gorm:"not null;default:false"`
	ExpiresAt   *time.Time
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (EntitlementCache) TableName() string {
	return "entitlement_cache"
}
