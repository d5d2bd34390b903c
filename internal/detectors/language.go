package detectors

import "regexp"

type scriptRule struct {
	lang string
	re   *regexp.Regexp
}

// Checked in order; accented Latin letters shared by several languages
// resolve to the first rule that lists them.
var scriptRules = []scriptRule{
	{"fr", regexp.MustCompile(`(?i)[àâçéèêëïîôùûü]`)},
	{"de", regexp.MustCompile(`(?i)[äöüß]`)},
	{"es", regexp.MustCompile(`(?i)[áéíóúñ]`)},
	{"it", regexp.MustCompile(`(?i)[àèéìíòóùú]`)},
	{"zh", regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)},
	{"ja", regexp.MustCompile(`[\x{3040}-\x{309f}\x{30a0}-\x{30ff}]`)},
	{"hi", regexp.MustCompile(`[\x{0900}-\x{097f}]`)},
}

// DetectLanguage returns a best-effort language tag for the whole text based
// on the scripts and diacritics it contains. The default is "en".
func DetectLanguage(text string) string {
	for _, r := range scriptRules {
		if r.re.MatchString(text) {
			return r.lang
		}
	}
	return "en"
}
