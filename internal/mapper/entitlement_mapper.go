package mapper

import (
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/model"
)

type EntitlementMapper struct{}

func NewEntitlementMapper() *EntitlementMapper {
	return &EntitlementMapper{}
}

func (m *EntitlementMapper) ToEntity(c *model.EntitlementCache) *entity.Entitlement {
	if c == nil {
		return nil
	}
	tier := entity.Tier(c.Tier)
	return &entity.Entitlement{
		Identity:    c.Identity,
		Tier:        tier,
		Limits:      entity.LimitsFor(tier),
		Unconfirmed: c.Unconfirmed,
		ExpiresAt:   c.ExpiresAt,
	}
}

func (m *EntitlementMapper) ToModel(e *entity.Entitlement) *model.EntitlementCache {
	if e == nil {
		return nil
	}
	return &model.EntitlementCache{
		Identity:    e.Identity,
		Tier:        string(e.Tier),
		Unconfirmed: e.Unconfirmed,
		ExpiresAt:   e.ExpiresAt,
	}
}
