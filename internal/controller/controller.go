package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-studybuddy-be/internal/dto"
	"ai-studybuddy-be/pkg/store"
)

// HeaderIdentity carries the caller's identity (an email address). There is
// no authentication surface; the header is trusted as-is.
const HeaderIdentity = "X-Identity"

func identityFrom(ctx *fiber.Ctx) string {
	return ctx.Get(HeaderIdentity)
}

func toSessionResponse(session *store.Session) dto.SessionResponse {
	cards := make([]dto.FlashcardResponse, len(session.Flashcards))
	for i, c := range session.Flashcards {
		cards[i] = dto.FlashcardResponse{
			Id:         c.Id,
			Question:   c.Question,
			Answer:     c.Answer,
			Difficulty: string(c.Difficulty),
			Type:       string(c.Type),
			IsFlipped:  c.IsFlipped,
		}
	}
	statuses := make(map[int]string, len(session.CardStatuses))
	for id, status := range session.CardStatuses {
		statuses[id] = string(status)
	}
	return dto.SessionResponse{
		Flashcards:       cards,
		CurrentIndex:     session.CurrentIndex,
		CardStatuses:     statuses,
		TotalGenerated:   session.TotalGenerated,
		GeneratedAt:      session.GeneratedAt,
		SourceTextLength: len(session.SourceText),
	}
}
