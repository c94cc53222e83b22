package mapper

import (
	"encoding/json"

	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CardSetMapper struct{}

func NewCardSetMapper() *CardSetMapper {
	return &CardSetMapper{}
}

func (m *CardSetMapper) ToEntity(c *model.CardSet) *entity.CardSet {
	if c == nil {
		return nil
	}

	var cards []entity.Flashcard
	if len(c.Flashcards) > 0 {
		// Local rows are written by this process, so a decode failure means
		// corruption; surface an empty deck rather than failing the read.
		_ = json.Unmarshal(c.Flashcards, &cards)
	}

	statuses := make(map[int]entity.CardStatus)
	if len(c.CardStatuses) > 0 {
		_ = json.Unmarshal(c.CardStatuses, &statuses)
	}

	return &entity.CardSet{
		Id:            "", // local sets are identified by title, not a server id
		Identity:      c.Identity,
		Title:         c.Title,
		OriginalText:  c.OriginalText,
		Flashcards:    cards,
		CardStatuses:  statuses,
		TotalCards:    c.TotalCards,
		TierRequired:  entity.Tier(c.TierRequired),
		CreatedAt:     c.CreatedAt,
		StoredLocally: true,
	}
}

func (m *CardSetMapper) ToModel(c *entity.CardSet) (*model.CardSet, error) {
	if c == nil {
		return nil, nil
	}

	// Flip state is session-transient and never persisted.
	cards := make([]entity.Flashcard, len(c.Flashcards))
	copy(cards, c.Flashcards)
	for i := range cards {
		cards[i].IsFlipped = false
	}

	cardsJSON, err := json.Marshal(cards)
	if err != nil {
		return nil, err
	}
	statusesJSON, err := json.Marshal(c.CardStatuses)
	if err != nil {
		return nil, err
	}

	return &model.CardSet{
		Id:           uuid.New(),
		Identity:     c.Identity,
		Title:        c.Title,
		OriginalText: c.OriginalText,
		Flashcards:   datatypes.JSON(cardsJSON),
		CardStatuses: datatypes.JSON(statusesJSON),
		TotalCards:   c.TotalCards,
		TierRequired: string(c.TierRequired),
		CreatedAt:    c.CreatedAt,
	}, nil
}

func (m *CardSetMapper) ToSummary(c *model.CardSet) *entity.CardSetSummary {
	if c == nil {
		return nil
	}
	return &entity.CardSetSummary{
		Id:            "",
		Title:         c.Title,
		TotalCards:    c.TotalCards,
		TierRequired:  entity.Tier(c.TierRequired),
		CreatedAt:     c.CreatedAt,
		IsLocked:      false, // tier gating exists only on the remote path
		StoredLocally: true,
	}
}

func (m *CardSetMapper) ToSummaries(sets []*model.CardSet) []*entity.CardSetSummary {
	summaries := make([]*entity.CardSetSummary, len(sets))
	for i, c := range sets {
		summaries[i] = m.ToSummary(c)
	}
	return summaries
}
