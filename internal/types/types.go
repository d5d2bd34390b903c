package types

import "math"

// Entity describes one PII finding inside a source text. Start and End are
// half-open byte offsets, so source[Start:End] == Text always holds.
type Entity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context,omitempty"`  // surrounding window of the source text
	Language   string  `json:"language,omitempty"` // best-effort ISO-639-1 code
}

// WithConfidence returns a copy of e carrying confidence c.
func (e Entity) WithConfidence(c float64) Entity {
	e.Confidence = c
	return e
}

// Overlaps reports whether the spans of e and o share at least one byte.
func (e Entity) Overlaps(o Entity) bool {
	return e.Start < o.End && o.Start < e.End
}

// Serialized is the display form of an entity used at JSON boundaries.
type Serialized struct {
	Type       string  `json:"type"`
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Serialize converts e to its display form with confidence rounded to 4 places.
func (e Entity) Serialize() Serialized {
	return Serialized{
		Type:       e.Label,
		Text:       e.Text,
		Start:      e.Start,
		End:        e.End,
		Confidence: Round(e.Confidence, 4),
	}
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
