package store

import (
	"time"

	"ai-studybuddy-be/internal/entity"
)

// Session represents the active review session state in memory: the
// currently generated (or loaded) flashcard sequence plus per-card review
// state. A session is replaced wholesale whenever a generation completes or
// a saved set is loaded; it is never partially merged with its predecessor.
type Session struct {
	Identity     string                    `json:"identity"`
	Flashcards   []entity.Flashcard        `json:"flashcards"`
	CurrentIndex int                       `json:"current_index"`
	CardStatuses map[int]entity.CardStatus `json:"card_statuses"`

	// TotalGenerated counts cards produced by generation over the process
	// lifetime. It survives session replacement; loading a saved set does
	// not touch it.
	TotalGenerated int `json:"total_generated"`

	GeneratedAt time.Time `json:"generated_at"`
	SourceText  string    `json:"source_text"`
}

func NewSession(identity string, cards []entity.Flashcard, prevTotal int, sourceText string) *Session {
	return &Session{
		Identity:       identity,
		Flashcards:     cards,
		CurrentIndex:   0,
		CardStatuses:   make(map[int]entity.CardStatus),
		TotalGenerated: prevTotal + len(cards),
		GeneratedAt:    time.Now(),
		SourceText:     sourceText,
	}
}

// CurrentCard returns the card at CurrentIndex, or nil for an empty session.
func (s *Session) CurrentCard() *entity.Flashcard {
	if len(s.Flashcards) == 0 || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Flashcards) {
		return nil
	}
	return &s.Flashcards[s.CurrentIndex]
}
