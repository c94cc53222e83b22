package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CardSet struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Identity     string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_card_sets_identity_title"`
	Title        string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_card_sets_identity_title"`
	OriginalText string         `gorm:"type:text"`
	Flashcards   datatypes.JSON `gorm:"not null"`
	CardStatuses datatypes.JSON
	TotalCards   int       `gorm:"not null"`
	TierRequired string    `gorm:"type:varchar(16);not null;default:free"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (CardSet) TableName() string {
	return "card_sets"
}
