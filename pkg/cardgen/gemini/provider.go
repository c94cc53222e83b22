package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-studybuddy-be/pkg/cardgen"
)

const maxPromptChars = 1500

type GeminiProvider struct {
	APIKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

// Ensure GeminiProvider implements Provider
var _ cardgen.Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	return &GeminiProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		BaseURL:   "https://generativelanguage.googleapis.com/v1beta",
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiParts struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiParts `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) GenerateCards(ctx context.Context, req *cardgen.Request) ([]cardgen.Item, error) {
	if g.APIKey == "" {
		return nil, errors.New("gemini api key not configured")
	}

	content := req.Text
	if len(content) > maxPromptChars {
		content = content[:maxPromptChars]
	}

	prompt := fmt.Sprintf(`Based on the following study material, generate exactly %d flashcards.

Study Material:
%s

Requirements:
1. Each flashcard should have a clear question and answer.
2. Questions test understanding, not just memorization.
3. Answers concise (50-200 words), cover key concepts.
4. Use varied question types: What, How, Why, When, Where.

Respond ONLY with valid JSON:
{ "flashcards": [{ "question": "Q?", "answer": "A." }] }`, req.MaxCards, content)

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiParts{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, g.ModelName)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("x-goog-api-key", g.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(bodyBytes, &geminiResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, cardgen.ErrMalformedResponse
	}

	items, err := cardgen.ExtractItems(geminiResp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}

	// Quality filter plus near-duplicate suppression.
	seen := make(map[string]bool)
	filtered := make([]cardgen.Item, 0, len(items))
	for _, item := range items {
		if !cardgen.IsQualityQuestion(item.Question, item.Answer) {
			continue
		}
		key := cardgen.NormalizeQuestion(item.Question)
		if seen[key] {
			continue
		}
		seen[key] = true
		if item.Difficulty == "" {
			item.Difficulty = cardgen.AssessDifficulty(item.Question, item.Answer)
		}
		filtered = append(filtered, item)
		if len(filtered) >= req.MaxCards {
			break
		}
	}

	return filtered, nil
}
