package detectors

import (
	"strings"
	"unicode/utf8"
)

const (
	keywordRadius = 100
	contextRadius = 50
	keywordWeight = 0.2
)

// window returns text[start-radius : end+radius], clamped to the text and
// widened to whole runes.
func window(text string, start, end, radius int) string {
	lo := max(0, start-radius)
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := min(len(text), end+radius)
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

// contextScore adds 0.2 for every keyword present near the match, capped at 1.
func contextScore(text string, start, end int, keywords []string) float64 {
	near := strings.ToLower(window(text, start, end, keywordRadius))
	score := 0.0
	for _, k := range keywords {
		if strings.Contains(near, k) {
			score += keywordWeight
		}
	}
	return min(1.0, score)
}

func clamp(c float64) float64 {
	return min(maxConfidence, c)
}
