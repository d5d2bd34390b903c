package detectors

import (
	"sort"
	"strings"

	"github.com/redactyl/piiguard/internal/types"
)

const ensembleBoost = 0.02

// resolveOverlaps groups entities whose spans overlap, directly or through a
// chain of overlaps, and keeps the most confident entity of each group. Ties
// go to the entity detected first. Groups of more than two members boost the
// survivor slightly.
func resolveOverlaps(entities []types.Entity) []types.Entity {
	if len(entities) < 2 {
		return entities
	}
	order := make([]int, len(entities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entities[order[a]].Start < entities[order[b]].Start
	})

	var out []types.Entity
	group := []int{order[0]}
	groupEnd := entities[order[0]].End
	flush := func() {
		out = append(out, pickWinner(entities, group))
	}
	for _, idx := range order[1:] {
		e := entities[idx]
		if e.Start < groupEnd {
			group = append(group, idx)
			groupEnd = max(groupEnd, e.End)
			continue
		}
		flush()
		group = []int{idx}
		groupEnd = e.End
	}
	flush()
	return out
}

func pickWinner(entities []types.Entity, group []int) types.Entity {
	if len(group) == 1 {
		return entities[group[0]]
	}
	best := group[0]
	for _, idx := range group[1:] {
		c, bc := entities[idx].Confidence, entities[best].Confidence
		if c > bc || (c == bc && idx < best) {
			best = idx
		}
	}
	winner := entities[best]
	if len(group) > 2 {
		winner = winner.WithConfidence(clamp(winner.Confidence + ensembleBoost))
	}
	return winner
}

var confidenceFloors = map[string]float64{
	types.BankAccount:   0.88,
	types.DriverLicense: 0.85,
	types.EmployeeID:    0.87,
	types.TaxID:         0.87,
}

// Well-known placeholder values that are never reported.
var placeholderValues = map[string][]string{
	types.Phone:     {"555-555-5555", "123-456-7890", "000-000-0000"},
	types.IPAddress: {"127.0.0.1", "0.0.0.0", "255.255.255.255"},
}

// filterEntities drops low-confidence entities of noisy types and known
// placeholder values.
func filterEntities(entities []types.Entity) []types.Entity {
	out := entities[:0:0]
	for _, e := range entities {
		if floor, ok := confidenceFloors[e.Label]; ok && e.Confidence < floor {
			continue
		}
		if isPlaceholder(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func isPlaceholder(e types.Entity) bool {
	for _, p := range placeholderValues[e.Label] {
		if strings.Contains(e.Text, p) {
			return true
		}
	}
	return false
}

func sortByStart(entities []types.Entity) {
	sort.SliceStable(entities, func(i, j int) bool { return entities[i].Start < entities[j].Start })
}
