package service

import (
	"testing"

	"ai-studybuddy-be/internal/apperr"
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture(t *testing.T, cards int) (IReviewService, *memory.SessionRepository) {
	t.Helper()
	sessions := memory.NewSessionRepository()
	seedSession(sessions, "student@example.com", cards)
	return NewReviewService(sessions, nopLogger{}), sessions
}

func TestFlipTogglesCurrentCard(t *testing.T) {
	svc, _ := newReviewFixture(t, 3)
	identity := "student@example.com"

	session, err := svc.Flip(identity)
	require.NoError(t, err)
	assert.True(t, session.Flashcards[0].IsFlipped)

	session, err = svc.Flip(identity)
	require.NoError(t, err)
	assert.False(t, session.Flashcards[0].IsFlipped, "a second flip shows the question again")
}

func TestNavigationClampsAtDeckEdges(t *testing.T) {
	svc, _ := newReviewFixture(t, 3)
	identity := "student@example.com"

	session, err := svc.Previous(identity)
	require.NoError(t, err)
	assert.Equal(t, 0, session.CurrentIndex, "previous at the first card stays put")

	for i := 0; i < 5; i++ {
		session, err = svc.Next(identity)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, session.CurrentIndex, "next at the last card stays put")
}

func TestShufflePreservesCardsAndResetsPosition(t *testing.T) {
	svc, sessions := newReviewFixture(t, 10)
	identity := "student@example.com"

	// Move away from the start and flip one card so both kinds of state
	// can be checked after the shuffle.
	for i := 0; i < 4; i++ {
		_, err := svc.Next(identity)
		require.NoError(t, err)
	}
	_, err := svc.Flip(identity)
	require.NoError(t, err)
	before, _ := sessions.Get(identity)
	flippedId := before.Flashcards[before.CurrentIndex].Id

	session, err := svc.Shuffle(identity)
	require.NoError(t, err)
	assert.Equal(t, 0, session.CurrentIndex)
	require.Len(t, session.Flashcards, 10)

	seen := make(map[int]entity.Flashcard, 10)
	for _, card := range session.Flashcards {
		seen[card.Id] = card
	}
	assert.Len(t, seen, 10, "every card id survives the shuffle exactly once")
	assert.True(t, seen[flippedId].IsFlipped, "flip state travels with the card through a shuffle")
}

func TestMarkStatusRecordsVerdictAndAdvances(t *testing.T) {
	svc, _ := newReviewFixture(t, 3)
	identity := "student@example.com"

	session, completed, err := svc.MarkStatus(identity, entity.CardStatusKnown)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, 1, session.CurrentIndex)
	assert.Equal(t, entity.CardStatusKnown, session.CardStatuses[1])

	session, completed, err = svc.MarkStatus(identity, entity.CardStatusStudy)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, entity.CardStatusStudy, session.CardStatuses[2])
}

func TestMarkStatusReportsCompletionOnLastCard(t *testing.T) {
	svc, _ := newReviewFixture(t, 2)
	identity := "student@example.com"

	_, completed, err := svc.MarkStatus(identity, entity.CardStatusKnown)
	require.NoError(t, err)
	require.False(t, completed)

	session, completed, err := svc.MarkStatus(identity, entity.CardStatusStudy)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, 1, session.CurrentIndex, "completion does not advance past the deck")
	assert.Len(t, session.CardStatuses, 2)
}

func TestMarkStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newReviewFixture(t, 2)

	_, _, err := svc.MarkStatus("student@example.com", entity.CardStatus("maybe"))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestReviewRequiresActiveSession(t *testing.T) {
	svc := NewReviewService(memory.NewSessionRepository(), nopLogger{})

	_, err := svc.Flip("nobody@example.com")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, _, err = svc.MarkStatus("nobody@example.com", entity.CardStatusKnown)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
