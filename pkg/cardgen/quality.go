package cardgen

import (
	"regexp"
	"strings"
)

var (
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+`)
	technicalTermRe  = regexp.MustCompile(`(?i)\b\w*(?:tion|ism|ology|ment|ity|ness)\b`)
	conceptKeywordRe = regexp.MustCompile(`(?i)\b(?:concept|theory|principle|system|process|mechanism)\b`)
	stopWordRe       = regexp.MustCompile(`(?i)\b(?:what|is|the|a|an|how|does|do|are)\b`)
	nonWordRe        = regexp.MustCompile(`[^\w\s]`)
)

// SplitSentences breaks text on sentence terminators, dropping empty
// fragments. Used by the deterministic fallback path.
func SplitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// AssessDifficulty estimates card difficulty from length, vocabulary, and
// question style.
func AssessDifficulty(question, answer string) string {
	text := question + " " + answer
	words := strings.Fields(text)

	longWords := 0
	for _, w := range words {
		if len(w) > 7 {
			longWords++
		}
	}

	punctuation := strings.Count(text, ",") + strings.Count(text, ";") + strings.Count(text, ":")
	lowerQuestion := strings.ToLower(question)

	score := 0
	if len(words) > 25 {
		score++
	}
	if longWords > 2 {
		score++
	}
	if len(technicalTermRe.FindAllString(text, -1)) > 1 {
		score++
	}
	if punctuation > 1 {
		score++
	}
	if conceptKeywordRe.MatchString(text) {
		score++
	}
	for _, word := range []string{"how", "why", "analyze", "compare"} {
		if strings.Contains(lowerQuestion, word) {
			score++
			break
		}
	}

	switch {
	case score <= 2:
		return "easy"
	case score <= 4:
		return "medium"
	default:
		return "hard"
	}
}

// IsQualityQuestion filters out degenerate pairs before they reach a deck.
func IsQualityQuestion(question, answer string) bool {
	if len(question) < 10 || len(question) > 150 {
		return false
	}
	if len(answer) < 15 || len(answer) > 500 {
		return false
	}
	if !strings.HasSuffix(question, "?") {
		return false
	}
	if question == answer {
		return false
	}
	if len(strings.Fields(question)) < 3 || len(strings.Fields(answer)) < 4 {
		return false
	}
	lower := strings.ToLower(question)
	for _, word := range []string{"what", "how", "why", "when", "where", "which", "who"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// NormalizeQuestion reduces a question to its content words so near
// duplicates collapse onto the same key.
func NormalizeQuestion(question string) string {
	text := stopWordRe.ReplaceAllString(strings.ToLower(question), "")
	text = nonWordRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
