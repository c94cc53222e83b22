package service

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"ai-studybuddy-be/internal/apperr"
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/pkg/logger"
	"ai-studybuddy-be/internal/repository/memory"
	"ai-studybuddy-be/pkg/cardgen"
	"ai-studybuddy-be/pkg/store"
)

// MinNoteLength is the shortest note text generation accepts.
const MinNoteLength = 30

type IGenerationService interface {
	// Generate builds a new review session from note text. Provider failure
	// or an empty result falls back to deterministic pattern cards, so a
	// valid request always yields a session. The previous session is
	// replaced wholesale; only the lifetime counter carries over.
	Generate(ctx context.Context, identity, text string) (*store.Session, error)
	ActiveSession(identity string) (*store.Session, bool)
}

type generationService struct {
	provider    cardgen.Provider
	sessions    *memory.SessionRepository
	entitlement IEntitlementService
	logger      logger.ILogger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewGenerationService(
	provider cardgen.Provider,
	sessions *memory.SessionRepository,
	entitlement IEntitlementService,
	sysLogger logger.ILogger,
) IGenerationService {
	return &generationService{
		provider:    provider,
		sessions:    sessions,
		entitlement: entitlement,
		logger:      sysLogger,
		inFlight:    make(map[string]bool),
	}
}

func (s *generationService) Generate(ctx context.Context, identity, text string) (*store.Session, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinNoteLength {
		return nil, apperr.Newf(apperr.KindInputTooShort,
			"note text is too short, provide at least %d characters", MinNoteLength)
	}

	prevTotal := s.sessions.TotalGenerated(identity)
	ent := s.entitlement.ResolveTier(ctx, identity)
	if err := s.entitlement.CheckGenerationAllowed(prevTotal, ent); err != nil {
		return nil, err
	}

	if err := s.acquire(identity); err != nil {
		return nil, err
	}
	defer s.release(identity)

	items, err := s.provider.GenerateCards(ctx, &cardgen.Request{
		Text:     text,
		MaxCards: ent.Limits.MaxCardsPerGeneration,
		Identity: identity,
	})
	if err != nil || len(items) == 0 {
		if err != nil {
			s.logger.Warn("generation", "Provider failed, using pattern fallback", map[string]interface{}{
				"identity": identity,
				"error":    err.Error(),
			})
		}
		items = cardgen.PatternFallback(text)
	}

	cards := mapItems(items, ent.Limits.MaxCardsPerGeneration)

	session := store.NewSession(identity, cards, prevTotal, text)
	s.sessions.Save(session)

	s.logger.Info("generation", "Generated flashcards", map[string]interface{}{
		"identity":        identity,
		"cards":           len(cards),
		"total_generated": session.TotalGenerated,
	})
	return session, nil
}

func (s *generationService) ActiveSession(identity string) (*store.Session, bool) {
	return s.sessions.Get(identity)
}

// acquire gates re-entry: a generation issued while a previous one is
// outstanding for the same identity is rejected, not queued.
func (s *generationService) acquire(identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[identity] {
		return apperr.New(apperr.KindValidation, "a generation is already in progress")
	}
	s.inFlight[identity] = true
	return nil
}

func (s *generationService) release(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, identity)
}

// mapItems turns raw provider items into flashcards: sequential 1-based
// ids, trimmed text, defaulted difficulty/type, capped at maxCards. Items
// missing either field were already discarded at the parse boundary, but
// the fallback path goes through here too, so check again.
func mapItems(items []cardgen.Item, maxCards int) []entity.Flashcard {
	cards := make([]entity.Flashcard, 0, len(items))
	for _, item := range items {
		question := strings.TrimSpace(item.Question)
		answer := strings.TrimSpace(item.Answer)
		if question == "" || answer == "" {
			continue
		}

		difficulty := entity.Difficulty(item.Difficulty)
		if !entity.ValidDifficulty(difficulty) {
			difficulty = entity.DifficultyMedium
		}
		cardType := entity.CardType(item.Type)
		if !entity.ValidCardType(cardType) {
			cardType = entity.CardTypeGeneral
		}

		cards = append(cards, entity.Flashcard{
			Id:         len(cards) + 1,
			Question:   question,
			Answer:     answer,
			Difficulty: difficulty,
			Type:       cardType,
		})
		if len(cards) >= maxCards {
			break
		}
	}
	return cards
}
