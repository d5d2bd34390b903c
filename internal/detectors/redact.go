package detectors

import (
	"github.com/redactyl/piiguard/internal/redact"
	"github.com/redactyl/piiguard/internal/types"
)

// Redact replaces every detected entity with [LABEL:cccc], where c is
// maskChar repeated four times regardless of the original length.
func (d *Detector) Redact(text, maskChar string) (string, []types.Entity) {
	entities := d.Detect(text)
	return RedactEntities(text, entities, maskChar), entities
}

// RedactEntities masks the given entities in text.
func RedactEntities(text string, entities []types.Entity, maskChar string) string {
	spans := make([]redact.Span, 0, len(entities))
	for _, e := range entities {
		spans = append(spans, redact.Span{Start: e.Start, End: e.End, Replace: redact.Mask(e.Label, maskChar)})
	}
	return redact.Spans(text, spans)
}
