// FILE: internal/entity/flashcard_entity.go
package entity

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type CardType string

const (
	CardTypeDefinition  CardType = "definition"
	CardTypeExplanation CardType = "explanation"
	CardTypeAnalysis    CardType = "analysis"
	CardTypeComparison  CardType = "comparison"
	CardTypeGeneral     CardType = "general"
)

// CardStatus is the review verdict a user records on a card.
type CardStatus string

const (
	CardStatusKnown CardStatus = "known"
	CardStatusStudy CardStatus = "study"
)

// Flashcard ids are 1-based and unique within their set; shuffling reorders
// position, never the id-content binding. IsFlipped is session-local state
// and is never persisted as authoritative.
type Flashcard struct {
	Id         int
	Question   string
	Answer     string
	Difficulty Difficulty
	Type       CardType
	IsFlipped  bool
}

func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func ValidCardType(t CardType) bool {
	switch t {
	case CardTypeDefinition, CardTypeExplanation, CardTypeAnalysis, CardTypeComparison, CardTypeGeneral:
		return true
	}
	return false
}
