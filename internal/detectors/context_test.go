package detectors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redactyl/piiguard/internal/types"
)

func TestContextScore(t *testing.T) {
	text := "Social Security number (SSN) for tax: 123-45-6789"
	start := strings.Index(text, "123")
	end := len(text)
	// social, security, ssn, tax
	assert.InDelta(t, 0.8, contextScore(text, start, end, []string{"ssn", "social", "security", "tax", "taxpayer"}), 1e-9)
	assert.Equal(t, 0.0, contextScore(text, start, end, []string{"iban"}))
}

func TestContextScore_Capped(t *testing.T) {
	text := "a b c d e f g"
	got := contextScore(text, 0, 1, []string{"a", "b", "c", "d", "e", "f", "g"})
	assert.Equal(t, 1.0, got)
}

func TestContextScore_OutsideWindow(t *testing.T) {
	text := "ssn " + strings.Repeat(".", 150) + "123-45-6789"
	start := strings.Index(text, "123")
	assert.Equal(t, 0.0, contextScore(text, start, len(text), []string{"ssn"}))
}

func TestWindow_SnapsToRunes(t *testing.T) {
	text := "ééé123"
	assert.Equal(t, "é123", window(text, 6, 9, 1))
	assert.Equal(t, text, window(text, 6, 9, 100))
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"hello world":      "en",
		"un café noir":     "fr",
		"die Straße":       "de",
		"el señor":         "es",
		"東京で会いましょう":  "zh",
		"こんにちは":          "ja",
		"नमस्ते दुनिया":    "hi",
		"":                 "en",
	}
	for in, want := range cases {
		assert.Equal(t, want, DetectLanguage(in), "input %q", in)
	}
}

func TestStatistics(t *testing.T) {
	empty := Statistics(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Empty(t, empty.ByType)
	assert.Empty(t, empty.ByLanguage)
	assert.Equal(t, 0.0, empty.AvgConfidence)

	st := Statistics([]types.Entity{
		{Label: types.Email, Confidence: 0.9, Language: "en"},
		{Label: types.Email, Confidence: 0.8, Language: "en"},
		{Label: types.SSN, Confidence: 0.7, Language: "fr"},
	})
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.ByType[types.Email].Count)
	assert.InDelta(t, 0.85, st.ByType[types.Email].AvgConfidence, 1e-9)
	assert.Equal(t, 1, st.ByType[types.SSN].Count)
	assert.Equal(t, map[string]int{"en": 2, "fr": 1}, st.ByLanguage)
	assert.InDelta(t, 0.8, st.AvgConfidence, 1e-9)
}
