package cardgen

import "strings"

// PatternFallback builds cards from the note text alone. It is the
// availability fallback for provider failures and empty results: purely
// deterministic, never fails, always returns at least one card so the user
// gets something to study.
func PatternFallback(text string) []Item {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}

	mainIdea := sentences[0] + "."

	keyPointCount := len(sentences)
	if keyPointCount > 3 {
		keyPointCount = 3
	}
	keyPoints := strings.Join(sentences[:keyPointCount], ". ") + "."

	return []Item{
		{
			Question:   "What is the main idea of these notes?",
			Answer:     mainIdea,
			Difficulty: AssessDifficulty("What is the main idea of these notes?", mainIdea),
			Type:       "explanation",
		},
		{
			Question:   "Which key points do these notes cover?",
			Answer:     keyPoints,
			Difficulty: AssessDifficulty("Which key points do these notes cover?", keyPoints),
			Type:       "general",
		},
	}
}
