package service

import (
	"errors"
	"math/rand"

	"ai-studybuddy-be/internal/apperr"
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/pkg/logger"
	"ai-studybuddy-be/internal/repository/memory"
	"ai-studybuddy-be/pkg/store"
)

type IReviewService interface {
	// Flip toggles the current card between question and answer.
	Flip(identity string) (*store.Session, error)
	// Next and Previous move the review position, clamped at the deck
	// edges: stepping past either end leaves the position unchanged.
	Next(identity string) (*store.Session, error)
	Previous(identity string) (*store.Session, error)
	// Shuffle randomly permutes card order and resets the position to the
	// start. Each card keeps its id, content and flip state through the
	// permutation.
	Shuffle(identity string) (*store.Session, error)
	// MarkStatus records a verdict on the current card and advances.
	// Marking the last card reports completion instead of advancing.
	MarkStatus(identity string, status entity.CardStatus) (*store.Session, bool, error)
}

type reviewService struct {
	sessions *memory.SessionRepository
	logger   logger.ILogger
}

func NewReviewService(sessions *memory.SessionRepository, sysLogger logger.ILogger) IReviewService {
	return &reviewService{
		sessions: sessions,
		logger:   sysLogger,
	}
}

func (s *reviewService) Flip(identity string) (*store.Session, error) {
	return s.mutate(identity, func(session *store.Session) error {
		card := session.CurrentCard()
		if card == nil {
			return apperr.New(apperr.KindValidation, "no card to flip")
		}
		card.IsFlipped = !card.IsFlipped
		return nil
	})
}

func (s *reviewService) Next(identity string) (*store.Session, error) {
	return s.mutate(identity, func(session *store.Session) error {
		if session.CurrentIndex < len(session.Flashcards)-1 {
			session.CurrentIndex++
		}
		return nil
	})
}

func (s *reviewService) Previous(identity string) (*store.Session, error) {
	return s.mutate(identity, func(session *store.Session) error {
		if session.CurrentIndex > 0 {
			session.CurrentIndex--
		}
		return nil
	})
}

func (s *reviewService) Shuffle(identity string) (*store.Session, error) {
	return s.mutate(identity, func(session *store.Session) error {
		rand.Shuffle(len(session.Flashcards), func(i, j int) {
			session.Flashcards[i], session.Flashcards[j] = session.Flashcards[j], session.Flashcards[i]
		})
		session.CurrentIndex = 0
		return nil
	})
}

func (s *reviewService) MarkStatus(identity string, status entity.CardStatus) (*store.Session, bool, error) {
	if status != entity.CardStatusKnown && status != entity.CardStatusStudy {
		return nil, false, apperr.Newf(apperr.KindValidation, "unknown card status %q", status)
	}

	completed := false
	session, err := s.mutate(identity, func(session *store.Session) error {
		card := session.CurrentCard()
		if card == nil {
			return apperr.New(apperr.KindValidation, "no card to mark")
		}

		// The verdict keys on card id, so it stays bound to the card
		// through later shuffles.
		session.CardStatuses[card.Id] = status

		if session.CurrentIndex >= len(session.Flashcards)-1 {
			completed = true
			return nil
		}
		session.CurrentIndex++
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if completed {
		s.logger.Info("review", "Review pass completed", map[string]interface{}{
			"identity": identity,
			"cards":    len(session.Flashcards),
		})
	}
	return session, completed, nil
}

func (s *reviewService) mutate(identity string, fn func(*store.Session) error) (*store.Session, error) {
	session, err := s.sessions.Mutate(identity, fn)
	if err != nil {
		if errors.Is(err, memory.ErrNoSession) {
			return nil, apperr.New(apperr.KindNotFound, "no active session, generate or load a set first")
		}
		return nil, err
	}
	return session, nil
}
