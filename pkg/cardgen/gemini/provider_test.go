package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-studybuddy-be/pkg/cardgen"
)

func newProviderWithReply(t *testing.T, replyText string) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": replyText}},
				}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	return &GeminiProvider{
		APIKey:    "test-key",
		ModelName: "gemini-1.5-flash",
		BaseURL:   srv.URL,
		Client:    &http.Client{Timeout: time.Second},
	}
}

func TestGenerateCardsRequiresAPIKey(t *testing.T) {
	provider := NewGeminiProvider("", "gemini-1.5-flash")

	_, err := provider.GenerateCards(context.Background(), &cardgen.Request{Text: "notes", MaxCards: 5})
	if err == nil {
		t.Fatal("expected an error without an api key")
	}
}

func TestGenerateCardsFiltersAndCaps(t *testing.T) {
	reply := "```json\n" + `{"flashcards":[
		{"question":"What is machine learning?","answer":"A field of AI that learns patterns from training data."},
		{"question":"what IS machine learning??","answer":"A duplicate phrasing of the first question entirely."},
		{"question":"Bad","answer":"too short"},
		{"question":"How do neural networks learn?","answer":"They adjust weights through backpropagation over many examples."},
		{"question":"Why do decision trees split data?","answer":"Each split reduces impurity so leaves become more homogeneous."}
	]}` + "\n```"
	provider := newProviderWithReply(t, reply)

	items, err := provider.GenerateCards(context.Background(), &cardgen.Request{Text: "notes about ML", MaxCards: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want the requested cap of 2", len(items))
	}
	for _, item := range items {
		if item.Difficulty == "" {
			t.Errorf("difficulty should be assessed when absent: %+v", item)
		}
	}
}

func TestGenerateCardsMalformedReply(t *testing.T) {
	provider := newProviderWithReply(t, "I would rather chat about the weather.")

	_, err := provider.GenerateCards(context.Background(), &cardgen.Request{Text: "notes", MaxCards: 5})
	if err == nil {
		t.Fatal("expected an error for a reply without JSON")
	}
}

func TestGenerateCardsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider := &GeminiProvider{
		APIKey:    "test-key",
		ModelName: "gemini-1.5-flash",
		BaseURL:   srv.URL,
		Client:    &http.Client{Timeout: time.Second},
	}

	_, err := provider.GenerateCards(context.Background(), &cardgen.Request{Text: "notes", MaxCards: 5})
	if err == nil {
		t.Fatal("expected an error for an upstream failure")
	}
}
