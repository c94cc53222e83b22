package service

import (
	"context"
	"testing"
	"time"

	"ai-studybuddy-be/internal/apperr"
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/repository/contract"
	"ai-studybuddy-be/internal/repository/implementation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntitlementFixture(t *testing.T, lookup *fakeTierLookup) (IEntitlementService, contract.EntitlementRepository) {
	t.Helper()
	repo := implementation.NewEntitlementRepository(newTestDB(t))
	return NewEntitlementService(lookup, repo, nopLogger{}), repo
}

func TestResolveTierUsesRemoteAnswer(t *testing.T) {
	svc, _ := newEntitlementFixture(t, &fakeTierLookup{tier: "premium"})

	ent := svc.ResolveTier(context.Background(), "pro@example.com")
	assert.Equal(t, entity.TierPremium, ent.Tier)
	assert.Equal(t, entity.Unlimited, ent.Limits.MaxSavedSets)
	assert.Equal(t, entity.Unlimited, ent.Limits.MaxLifetimeGenerated)
	assert.False(t, ent.Unconfirmed)
}

func TestResolveTierDefaultsToFree(t *testing.T) {
	svc, _ := newEntitlementFixture(t, &fakeTierLookup{err: apperr.New(apperr.KindNetworkUnavailable, "down")})

	ent := svc.ResolveTier(context.Background(), "new@example.com")
	assert.Equal(t, entity.TierFree, ent.Tier)
	assert.Equal(t, entity.FreeMaxSavedSets, ent.Limits.MaxSavedSets)
}

func TestResolveTierFallsBackToCachedAnswer(t *testing.T) {
	lookup := &fakeTierLookup{tier: "premium"}
	svc, _ := newEntitlementFixture(t, lookup)

	ent := svc.ResolveTier(context.Background(), "pro@example.com")
	require.Equal(t, entity.TierPremium, ent.Tier)

	// The tier service goes dark; the last known answer still applies.
	lookup.tier = ""
	lookup.err = apperr.New(apperr.KindNetworkUnavailable, "down")

	ent = svc.ResolveTier(context.Background(), "pro@example.com")
	assert.Equal(t, entity.TierPremium, ent.Tier)
}

func TestResolveTierWithoutIdentityIsFree(t *testing.T) {
	svc, _ := newEntitlementFixture(t, &fakeTierLookup{tier: "premium"})

	ent := svc.ResolveTier(context.Background(), "")
	assert.Equal(t, entity.TierFree, ent.Tier)
}

func TestCheckGenerationAllowed(t *testing.T) {
	svc, _ := newEntitlementFixture(t, &fakeTierLookup{tier: "free"})

	free := entity.DefaultEntitlement("student@example.com")
	premium := &entity.Entitlement{
		Identity: "pro@example.com",
		Tier:     entity.TierPremium,
		Limits:   entity.LimitsFor(entity.TierPremium),
	}

	tests := []struct {
		name      string
		total     int
		ent       *entity.Entitlement
		wantError bool
	}{
		{name: "free under limit", total: 10, ent: free, wantError: false},
		{name: "free at limit", total: entity.FreeMaxLifetimeGenerated, ent: free, wantError: true},
		{name: "free over limit", total: 20, ent: free, wantError: true},
		{name: "premium unlimited", total: 500, ent: premium, wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckGenerationAllowed(tt.total, tt.ent)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, apperr.IsKind(err, apperr.KindLimitReached))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.NoError(t, svc.CheckGenerationAllowed(0, free), "nothing generated yet")
}

func TestCheckSaveAllowed(t *testing.T) {
	svc, _ := newEntitlementFixture(t, &fakeTierLookup{tier: "free"})

	free := entity.DefaultEntitlement("student@example.com")
	assert.NoError(t, svc.CheckSaveAllowed(entity.FreeMaxSavedSets-1, free))

	err := svc.CheckSaveAllowed(entity.FreeMaxSavedSets, free)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindLimitReached))

	premium := &entity.Entitlement{Limits: entity.LimitsFor(entity.TierPremium)}
	assert.NoError(t, svc.CheckSaveAllowed(1000, premium))
}

func TestApplyUpgradeIsOptimisticAndUnconfirmed(t *testing.T) {
	svc, repo := newEntitlementFixture(t, &fakeTierLookup{tier: "free"})

	ent, err := svc.ApplyUpgrade(context.Background(), "student@example.com", BillingPeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, entity.TierPremium, ent.Tier)
	assert.True(t, ent.Unconfirmed)
	require.NotNil(t, ent.ExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *ent.ExpiresAt, time.Minute)

	persisted, err := repo.Find(context.Background(), "student@example.com")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, entity.TierPremium, persisted.Tier)
	assert.True(t, persisted.Unconfirmed)
}

func TestApplyUpgradeYearlyWindow(t *testing.T) {
	svc, _ := newEntitlementFixture(t, &fakeTierLookup{tier: "free"})

	ent, err := svc.ApplyUpgrade(context.Background(), "student@example.com", BillingPeriodYearly)
	require.NoError(t, err)
	require.NotNil(t, ent.ExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 365), *ent.ExpiresAt, time.Minute)
}

func TestApplyUpgradeValidation(t *testing.T) {
	svc, _ := newEntitlementFixture(t, &fakeTierLookup{tier: "free"})

	_, err := svc.ApplyUpgrade(context.Background(), "", BillingPeriodMonthly)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindMissingIdentity))

	_, err = svc.ApplyUpgrade(context.Background(), "student@example.com", "weekly")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpgradeRolledBackByAuthoritativeAnswer(t *testing.T) {
	lookup := &fakeTierLookup{tier: "free"}
	svc, repo := newEntitlementFixture(t, lookup)

	_, err := svc.ApplyUpgrade(context.Background(), "student@example.com", BillingPeriodMonthly)
	require.NoError(t, err)

	// The next authoritative lookup says free, so the optimistic upgrade
	// is rolled back and the unconfirmed flag cleared.
	ent := svc.ResolveTier(context.Background(), "student@example.com")
	assert.Equal(t, entity.TierFree, ent.Tier)
	assert.False(t, ent.Unconfirmed)

	persisted, err := repo.Find(context.Background(), "student@example.com")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, entity.TierFree, persisted.Tier)
	assert.False(t, persisted.Unconfirmed)
}

func TestUpgradeConfirmedByAuthoritativeAnswer(t *testing.T) {
	lookup := &fakeTierLookup{tier: "free"}
	svc, _ := newEntitlementFixture(t, lookup)

	_, err := svc.ApplyUpgrade(context.Background(), "student@example.com", BillingPeriodMonthly)
	require.NoError(t, err)

	lookup.tier = "premium"
	ent := svc.ResolveTier(context.Background(), "student@example.com")
	assert.Equal(t, entity.TierPremium, ent.Tier)
	assert.False(t, ent.Unconfirmed)
}
