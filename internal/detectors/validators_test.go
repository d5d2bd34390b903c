package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redactyl/piiguard/internal/types"
)

func TestApplyValidator(t *testing.T) {
	cases := []struct {
		name  string
		label string
		text  string
		in    float64
		want  float64
	}{
		{"ssn valid", types.SSN, "123-45-6789", 0.90, 0.95},
		{"ssn invalid keeps confidence", types.SSN, "000-45-6789", 0.90, 0.90},
		{"card luhn", types.CreditCard, "4532015112830366", 0.90, 0.98},
		{"card bad luhn", types.CreditCard, "4532015112830367", 0.90, 0.90},
		{"email", types.Email, "a@b.co", 0.90, 0.93},
		{"ip", types.IPAddress, "10.0.0.1", 0.90, 0.94},
		{"vin valid", types.VIN, "1HGBH41JXMN109186", 0.90, 0.96},
		{"vin penalty", types.VIN, "1HGBH41IXMN109186", 0.90, 0.63},
		{"iban penalty", types.IBAN, "12WEST12345698765432", 0.90, 0.54},
		{"bitcoin penalty", types.BitcoinAddress, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfN0", 0.90, 0.72},
		{"bonus clamps", types.IBAN, "GB82WEST12345698765432", 0.95, 0.99},
		{"no validator", types.Phone, "555-123-4567", 0.90, 0.90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := applyValidator(types.Entity{Label: tc.label, Text: tc.text, Confidence: tc.in})
			assert.InDelta(t, tc.want, got.Confidence, 1e-9)
		})
	}
}

func TestWithValidatorsOff(t *testing.T) {
	on := byLabel(New().Detect("VIN 1HGBH41JXMN109186"), types.VIN)
	off := byLabel(New(WithValidators(false)).Detect("VIN 1HGBH41JXMN109186"), types.VIN)
	if assert.Len(t, on, 1) && assert.Len(t, off, 1) {
		assert.InDelta(t, 0.06, on[0].Confidence-off[0].Confidence, 1e-9)
	}
}
