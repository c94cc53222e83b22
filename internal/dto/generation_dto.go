package dto

import "time"

type GenerateRequest struct {
	Text string `json:"text"`
}

type FlashcardResponse struct {
	Id         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
	Type       string `json:"type"`
	IsFlipped  bool   `json:"is_flipped"`
}

type SessionResponse struct {
	Flashcards       []FlashcardResponse `json:"flashcards"`
	CurrentIndex     int                 `json:"current_index"`
	CardStatuses     map[int]string      `json:"card_statuses"`
	TotalGenerated   int                 `json:"total_generated"`
	GeneratedAt      time.Time           `json:"generated_at"`
	SourceTextLength int                 `json:"source_text_length"`
}
