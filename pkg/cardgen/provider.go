package cardgen

import (
	"context"
)

// Request is the single request/response contract with the question
// generation collaborator. Not streaming.
type Request struct {
	Text     string
	MaxCards int
	Identity string
}

// Item is one raw question/answer pair as reported by a provider.
// Difficulty and Type are optional; callers must not trust their presence.
type Item struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty,omitempty"`
	Type       string `json:"type,omitempty"`
}

// Provider defines the contract for any question-generation backend.
type Provider interface {
	GenerateCards(ctx context.Context, req *Request) ([]Item, error)
}
