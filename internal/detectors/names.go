package detectors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var nameTitles = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Sr.", "Sra.",
	"M.", "Mme.", "Herr", "Frau", "Sig.", "Sig.ra",
}

// Words that suggest a nearby personal name, in several languages.
var nameIndicators = []string{
	"name", "called", "by", "author", "contact", "person",
	"nom", "nombre", "nome",
}

// nameConfidence scores the candidate text[start:end].
func nameConfidence(text string, start, end int) float64 {
	name := text[start:end]
	conf := 0.88
	for _, t := range nameTitles {
		if strings.Contains(name, t) {
			conf += 0.08
			break
		}
	}
	if allCapitalized(name) {
		conf += 0.05
	}
	near := strings.ToLower(window(text, start, end, contextRadius))
	for _, ind := range nameIndicators {
		if strings.Contains(near, ind) {
			conf += 0.06
			break
		}
	}
	return clamp(conf)
}

func allCapitalized(s string) bool {
	for _, w := range strings.Fields(s) {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
