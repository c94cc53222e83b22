package service

import (
	"context"
	"time"

	"ai-studybuddy-be/internal/apperr"
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/pkg/logger"
	"ai-studybuddy-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// TierLookup is the remote tier collaborator. Satisfied by tierapi.Client.
type TierLookup interface {
	GetTier(ctx context.Context, identity string) (string, error)
}

type IEntitlementService interface {
	// ResolveTier returns the caller's entitlement. The remote lookup is
	// authoritative when reachable; otherwise the last cached entitlement
	// is returned (free if none). It never fails: resolution is advisory
	// for gating, not required for display.
	ResolveTier(ctx context.Context, identity string) *entity.Entitlement
	CheckGenerationAllowed(totalGenerated int, ent *entity.Entitlement) error
	CheckSaveAllowed(savedSetCount int, ent *entity.Entitlement) error
	// ApplyUpgrade optimistically switches the identity to premium with an
	// expiry window. The result is flagged unconfirmed until the next
	// authoritative tier lookup confirms or rolls it back.
	ApplyUpgrade(ctx context.Context, identity, billingPeriod string) (*entity.Entitlement, error)
}

type entitlementService struct {
	tierLookup TierLookup
	entRepo    contract.EntitlementRepository
	memCache   *cache.Cache
	logger     logger.ILogger
}

func NewEntitlementService(tierLookup TierLookup, entRepo contract.EntitlementRepository, sysLogger logger.ILogger) IEntitlementService {
	return &entitlementService{
		tierLookup: tierLookup,
		entRepo:    entRepo,
		memCache:   cache.New(5*time.Minute, 10*time.Minute),
		logger:     sysLogger,
	}
}

func (s *entitlementService) ResolveTier(ctx context.Context, identity string) *entity.Entitlement {
	if identity == "" {
		return entity.DefaultEntitlement(identity)
	}

	tierStr, err := s.tierLookup.GetTier(ctx, identity)
	if err != nil {
		s.logger.Warn("entitlement", "Tier lookup failed, falling back to cache", map[string]interface{}{
			"identity": identity,
			"error":    err.Error(),
		})
		return s.cached(ctx, identity)
	}

	tier := entity.TierFree
	if tierStr == string(entity.TierPremium) {
		tier = entity.TierPremium
	}

	ent := &entity.Entitlement{
		Identity: identity,
		Tier:     tier,
		Limits:   entity.LimitsFor(tier),
	}

	// Reconcile an optimistic upgrade: the authoritative answer either
	// confirms it (premium) or rolls it back (free). Either way the
	// unconfirmed flag is cleared by the overwrite below.
	if prev, repoErr := s.entRepo.Find(ctx, identity); repoErr == nil && prev != nil && prev.Unconfirmed {
		if prev.Tier == entity.TierPremium && tier == entity.TierFree {
			s.logger.Warn("entitlement", "Optimistic upgrade rolled back by remote tier", map[string]interface{}{
				"identity": identity,
			})
		}
	}

	s.memCache.Set(identity, ent, cache.DefaultExpiration)
	if err := s.entRepo.Upsert(ctx, ent); err != nil {
		s.logger.Warn("entitlement", "Failed to persist entitlement cache", map[string]interface{}{
			"identity": identity,
			"error":    err.Error(),
		})
	}
	return ent
}

func (s *entitlementService) cached(ctx context.Context, identity string) *entity.Entitlement {
	if x, found := s.memCache.Get(identity); found {
		return x.(*entity.Entitlement)
	}

	ent, err := s.entRepo.Find(ctx, identity)
	if err != nil || ent == nil {
		return entity.DefaultEntitlement(identity)
	}

	// An expired optimistic window lapses to free.
	if ent.Tier == entity.TierPremium && ent.ExpiresAt != nil && time.Now().After(*ent.ExpiresAt) {
		return entity.DefaultEntitlement(identity)
	}
	return ent
}

func (s *entitlementService) CheckGenerationAllowed(totalGenerated int, ent *entity.Entitlement) error {
	if ent.Limits.MaxLifetimeGenerated == entity.Unlimited {
		return nil
	}
	if totalGenerated >= ent.Limits.MaxLifetimeGenerated {
		return apperr.Newf(apperr.KindLimitReached,
			"free tier generation limit of %d cards reached", ent.Limits.MaxLifetimeGenerated)
	}
	return nil
}

func (s *entitlementService) CheckSaveAllowed(savedSetCount int, ent *entity.Entitlement) error {
	if ent.Limits.MaxSavedSets == entity.Unlimited {
		return nil
	}
	if savedSetCount >= ent.Limits.MaxSavedSets {
		return apperr.Newf(apperr.KindLimitReached,
			"free tier is limited to %d saved sets", ent.Limits.MaxSavedSets)
	}
	return nil
}

func (s *entitlementService) ApplyUpgrade(ctx context.Context, identity, billingPeriod string) (*entity.Entitlement, error) {
	if identity == "" {
		return nil, apperr.New(apperr.KindMissingIdentity, "identity is required to upgrade")
	}

	var expiresAt time.Time
	switch billingPeriod {
	case BillingPeriodMonthly:
		expiresAt = time.Now().AddDate(0, 0, 30)
	case BillingPeriodYearly:
		expiresAt = time.Now().AddDate(0, 0, 365)
	default:
		return nil, apperr.Newf(apperr.KindValidation, "unknown billing period %q", billingPeriod)
	}

	ent := &entity.Entitlement{
		Identity:    identity,
		Tier:        entity.TierPremium,
		Limits:      entity.LimitsFor(entity.TierPremium),
		Unconfirmed: true,
		ExpiresAt:   &expiresAt,
	}

	s.memCache.Set(identity, ent, cache.DefaultExpiration)
	if err := s.entRepo.Upsert(ctx, ent); err != nil {
		return nil, err
	}

	s.logger.Info("entitlement", "Applied optimistic premium upgrade", map[string]interface{}{
		"identity":       identity,
		"billing_period": billingPeriod,
		"expires_at":     expiresAt,
	})
	return ent, nil
}
