package dto

import "time"

type SaveCardSetRequest struct {
	Title string `json:"title"`
}

type SaveCardSetResponse struct {
	Id            string `json:"id,omitempty"`
	Title         string `json:"title"`
	TotalCards    int    `json:"total_cards"`
	StoredLocally bool   `json:"stored_locally"`
}

type CardSetSummaryResponse struct {
	Id            string    `json:"id,omitempty"`
	Title         string    `json:"title"`
	TotalCards    int       `json:"total_cards"`
	TierRequired  string    `json:"tier_required"`
	IsLocked      bool      `json:"is_locked"`
	StoredLocally bool      `json:"stored_locally"`
	CreatedAt     time.Time `json:"created_at"`
}

type CardSetListResponse struct {
	Sets      []CardSetSummaryResponse `json:"flashcard_sets"`
	TotalSets int                      `json:"total_sets"`
	Storage   string                   `json:"storage"`
}
