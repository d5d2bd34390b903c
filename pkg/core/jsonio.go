package core

import (
	"encoding/json"
	"io"

	"github.com/samber/lo"

	"github.com/redactyl/piiguard/internal/types"
)

// MarshalEntities writes entities in their serialized form
// ({type, text, start, end, confidence}) as indented JSON.
func MarshalEntities(w io.Writer, entities []Entity) error {
	out := lo.Map(entities, func(e Entity, _ int) types.Serialized { return e.Serialize() })
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// MarshalFindings pretty-prints scan findings as JSON for humans or pipelines.
func MarshalFindings(w io.Writer, findings []Finding) error {
	if findings == nil {
		findings = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings decodes findings JSON, useful for ingestion tests.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	var fs []Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}
