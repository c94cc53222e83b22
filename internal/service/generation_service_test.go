package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-studybuddy-be/internal/apperr"
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/repository/implementation"
	"ai-studybuddy-be/internal/repository/memory"
	"ai-studybuddy-be/pkg/cardgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longNote = "Machine learning is a subset of AI. Neural networks mimic brains. Decision trees split data."

func newGenerationFixture(t *testing.T, provider cardgen.Provider, tier string) (IGenerationService, *memory.SessionRepository) {
	t.Helper()
	db := newTestDB(t)
	sessions := memory.NewSessionRepository()
	entitlement := NewEntitlementService(
		&fakeTierLookup{tier: tier},
		implementation.NewEntitlementRepository(db),
		nopLogger{},
	)
	return NewGenerationService(provider, sessions, entitlement, nopLogger{}), sessions
}

func providerItems(n int) []cardgen.Item {
	items := make([]cardgen.Item, n)
	for i := range items {
		items[i] = cardgen.Item{
			Question:   "What does the note say about topic " + string(rune('A'+i)) + "?",
			Answer:     "It explains topic " + string(rune('A'+i)) + " in some detail.",
			Difficulty: "easy",
			Type:       "definition",
		}
	}
	return items
}

func TestGenerateRejectsShortText(t *testing.T) {
	svc, sessions := newGenerationFixture(t, &fakeProvider{items: providerItems(3)}, "free")

	_, err := svc.Generate(context.Background(), "student@example.com", "too short")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInputTooShort))

	_, ok := sessions.Get("student@example.com")
	assert.False(t, ok, "a rejected generation must not create a session")
}

func TestGenerateLengthCheckCountsCharacters(t *testing.T) {
	svc, _ := newGenerationFixture(t, &fakeProvider{items: providerItems(3)}, "free")

	// 15 characters but 45 bytes; the minimum is in characters.
	_, err := svc.Generate(context.Background(), "student@example.com", strings.Repeat("学", 15))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInputTooShort))

	session, err := svc.Generate(context.Background(), "student@example.com", strings.Repeat("学", MinNoteLength))
	require.NoError(t, err)
	assert.NotEmpty(t, session.Flashcards)
}

func TestGenerateTrimsWhitespaceBeforeLengthCheck(t *testing.T) {
	svc, _ := newGenerationFixture(t, &fakeProvider{items: providerItems(3)}, "free")

	padded := "   short text padded with blanks                              "
	_, err := svc.Generate(context.Background(), "student@example.com", padded)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInputTooShort))
}

func TestGenerateCapsCardsAtTierLimit(t *testing.T) {
	svc, _ := newGenerationFixture(t, &fakeProvider{items: providerItems(8)}, "free")

	session, err := svc.Generate(context.Background(), "student@example.com", longNote)
	require.NoError(t, err)
	require.Len(t, session.Flashcards, entity.FreeMaxCardsPerGeneration)

	for i, card := range session.Flashcards {
		assert.Equal(t, i+1, card.Id, "card ids must be sequential and 1-based")
		assert.False(t, card.IsFlipped)
	}
	assert.Equal(t, 0, session.CurrentIndex)
	assert.Equal(t, entity.FreeMaxCardsPerGeneration, session.TotalGenerated)
}

func TestGenerateFallsBackOnProviderError(t *testing.T) {
	svc, _ := newGenerationFixture(t, &fakeProvider{err: errors.New("provider down")}, "free")

	session, err := svc.Generate(context.Background(), "student@example.com", longNote)
	require.NoError(t, err, "provider failure must degrade, not fail")
	require.NotEmpty(t, session.Flashcards)

	for _, card := range session.Flashcards {
		assert.NotEmpty(t, card.Question)
		assert.NotEmpty(t, card.Answer)
	}
}

func TestGenerateFallsBackOnEmptyProviderResult(t *testing.T) {
	svc, _ := newGenerationFixture(t, &fakeProvider{items: nil}, "free")

	session, err := svc.Generate(context.Background(), "student@example.com", longNote)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Flashcards)
}

func TestGenerateCounterAccumulatesAcrossSessions(t *testing.T) {
	svc, _ := newGenerationFixture(t, &fakeProvider{items: providerItems(4)}, "premium")

	first, err := svc.Generate(context.Background(), "student@example.com", longNote)
	require.NoError(t, err)
	assert.Equal(t, 4, first.TotalGenerated)

	second, err := svc.Generate(context.Background(), "student@example.com", longNote)
	require.NoError(t, err)
	assert.Equal(t, 8, second.TotalGenerated, "the lifetime counter survives session replacement")
}

func TestGenerateEnforcesLifetimeLimit(t *testing.T) {
	svc, sessions := newGenerationFixture(t, &fakeProvider{items: providerItems(5)}, "free")
	identity := "student@example.com"

	// Three full free-tier generations reach the lifetime cap.
	for i := 0; i < 3; i++ {
		_, err := svc.Generate(context.Background(), identity, longNote)
		require.NoError(t, err)
	}

	before, _ := sessions.Get(identity)
	_, err := svc.Generate(context.Background(), identity, longNote)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindLimitReached))

	after, _ := sessions.Get(identity)
	assert.Same(t, before, after, "a rejected generation must leave the session untouched")
}

func TestGenerateLifetimeLimitSurvivesSessionEviction(t *testing.T) {
	svc, sessions := newGenerationFixture(t, &fakeProvider{items: providerItems(5)}, "free")
	identity := "student@example.com"

	for i := 0; i < 3; i++ {
		_, err := svc.Generate(context.Background(), identity, longNote)
		require.NoError(t, err)
	}

	// The session entry going away, whether deleted or expired out of the
	// cache, does not reset the lifetime counter.
	sessions.Delete(identity)
	require.Equal(t, 3*entity.FreeMaxCardsPerGeneration, sessions.TotalGenerated(identity))

	_, err := svc.Generate(context.Background(), identity, longNote)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindLimitReached))
}

func TestGeneratePremiumHasNoLifetimeLimit(t *testing.T) {
	svc, _ := newGenerationFixture(t, &fakeProvider{items: providerItems(10)}, "premium")

	for i := 0; i < 5; i++ {
		s, err := svc.Generate(context.Background(), "pro@example.com", longNote)
		require.NoError(t, err)
		assert.Equal(t, (i+1)*entity.PremiumMaxCardsPerGeneration, s.TotalGenerated)
	}
}

func TestGenerateRejectsConcurrentRequest(t *testing.T) {
	provider := &fakeProvider{
		items:   providerItems(3),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, _ := newGenerationFixture(t, provider, "free")
	identity := "student@example.com"

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), identity, longNote)
		done <- err
	}()
	<-provider.started

	// The in-flight gate rejects before the provider is ever consulted.
	_, err := svc.Generate(context.Background(), identity, longNote)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	close(provider.release)
	require.NoError(t, <-done)
}
