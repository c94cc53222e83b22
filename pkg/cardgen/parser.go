package cardgen

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrMalformedResponse marks a provider reply that could not be parsed into
// question/answer pairs. Callers must treat it as "no cards", never as a
// partial result.
var ErrMalformedResponse = errors.New("malformed generation response")

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	bareJSONRe   = regexp.MustCompile(`(?s)\{.*"flashcards".*\}`)
)

type itemsEnvelope struct {
	Flashcards []Item `json:"flashcards"`
}

// ExtractItems parses the model's free-form reply at the boundary. The
// reply shape is duck-typed (fenced JSON, bare JSON, stray prose), so
// everything is validated here: items missing a question or an answer are
// discarded, the rest downstream can trust.
func ExtractItems(raw string) ([]Item, error) {
	payload := ""
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		payload = m[1]
	} else if m := bareJSONRe.FindString(raw); m != "" {
		payload = m
	}
	if payload == "" {
		return nil, ErrMalformedResponse
	}

	var envelope itemsEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return nil, ErrMalformedResponse
	}

	items := make([]Item, 0, len(envelope.Flashcards))
	for _, item := range envelope.Flashcards {
		item.Question = strings.TrimSpace(item.Question)
		item.Answer = strings.TrimSpace(item.Answer)
		if item.Question == "" || item.Answer == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
