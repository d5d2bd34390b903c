package detectors

import (
	"github.com/redactyl/piiguard/internal/types"
	v "github.com/redactyl/piiguard/internal/validate"
)

// entityValidator adjusts a candidate's confidence after the format check.
// It never drops a candidate; a failed check only lowers confidence.
type entityValidator func(e types.Entity) types.Entity

// bonus raises confidence when ok holds for the match.
func bonus(ok func(string) bool, add float64) entityValidator {
	return func(e types.Entity) types.Entity {
		if ok(e.Text) {
			return e.WithConfidence(clamp(e.Confidence + add))
		}
		return e
	}
}

// bonusOrPenalty raises confidence on success and scales it down on failure.
func bonusOrPenalty(ok func(string) bool, add, factor float64) entityValidator {
	return func(e types.Entity) types.Entity {
		if ok(e.Text) {
			return e.WithConfidence(clamp(e.Confidence + add))
		}
		return e.WithConfidence(clamp(e.Confidence) * factor)
	}
}

var ruleValidators = map[string]entityValidator{
	types.SSN:            bonus(v.SSN, 0.05),
	types.CreditCard:     bonus(v.Luhn, 0.08),
	types.Email:          bonus(v.EmailDomain, 0.03),
	types.IPAddress:      bonus(v.IPv4, 0.04),
	types.VIN:            bonusOrPenalty(v.VIN, 0.06, 0.7),
	types.IBAN:           bonusOrPenalty(v.IBAN, 0.07, 0.6),
	types.BitcoinAddress: bonusOrPenalty(v.Bitcoin, 0.05, 0.8),
}

// applyValidator runs the validator registered for e.Label, if any.
func applyValidator(e types.Entity) types.Entity {
	if fn, ok := ruleValidators[e.Label]; ok {
		return fn(e)
	}
	return e
}
