package detectors

import (
	"github.com/samber/lo"

	"github.com/redactyl/piiguard/internal/types"
)

// LabelStats summarizes the entities carrying one label.
type LabelStats struct {
	Count         int     `json:"count"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// Stats summarizes a set of entities.
type Stats struct {
	Total         int                   `json:"total"`
	ByType        map[string]LabelStats `json:"by_type"`
	ByLanguage    map[string]int        `json:"by_language"`
	AvgConfidence float64               `json:"avg_confidence"`
}

// Statistics aggregates counts and mean confidences. An empty input yields
// zero values and empty maps.
func Statistics(entities []types.Entity) Stats {
	st := Stats{
		Total:      len(entities),
		ByType:     map[string]LabelStats{},
		ByLanguage: map[string]int{},
	}
	if len(entities) == 0 {
		return st
	}
	for label, group := range lo.GroupBy(entities, func(e types.Entity) string { return e.Label }) {
		st.ByType[label] = LabelStats{Count: len(group), AvgConfidence: meanConfidence(group)}
	}
	st.ByLanguage = lo.CountValuesBy(entities, func(e types.Entity) string { return e.Language })
	st.AvgConfidence = meanConfidence(entities)
	return st
}

func meanConfidence(entities []types.Entity) float64 {
	if len(entities) == 0 {
		return 0
	}
	sum := lo.SumBy(entities, func(e types.Entity) float64 { return e.Confidence })
	return sum / float64(len(entities))
}
