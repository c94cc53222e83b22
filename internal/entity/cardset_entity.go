// FILE: internal/entity/cardset_entity.go
package entity

import "time"

// CardSet is a named, persisted collection of flashcards. Remote sets carry
// the server-assigned Id; local-fallback sets are identified by Title
// (unique per identity in the local store) and have an empty Id.
type CardSet struct {
	Id           string
	Identity     string
	Title        string
	OriginalText string
	Flashcards   []Flashcard
	CardStatuses map[int]CardStatus
	// TotalCards is the authoritative display count. List views return
	// metadata-only summaries without card bodies, so this must not be
	// derived from len(Flashcards) after creation time.
	TotalCards    int
	TierRequired  Tier
	CreatedAt     time.Time
	StoredLocally bool
}

type CardSetSummary struct {
	Id            string
	Title         string
	TotalCards    int
	TierRequired  Tier
	CreatedAt     time.Time
	IsLocked      bool
	StoredLocally bool
}
