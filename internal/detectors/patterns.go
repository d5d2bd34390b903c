package detectors

import "github.com/redactyl/piiguard/internal/types"

// patternSpec is the source form of one entity rule.
type patternSpec struct {
	label    string
	expr     string
	keywords []string
	base     float64
}

// pattern is a compiled rule. It is never mutated after New returns.
type pattern struct {
	label    string
	rule     wordRule
	keywords []string
	base     float64
	weight   float64
}

// Scan order matters: ties in the ensemble go to the earlier rule.
var patternSpecs = []patternSpec{
	// Financial
	{types.SSN, `\b(?:\d{3}-\d{2}-\d{4}|\d{9})\b`, []string{"ssn", "social", "security", "tax", "tin", "taxpayer"}, 0.95},
	{types.CreditCard, `\b(?:4[0-9]{12}(?:[0-9]{3})?|5[1-5][0-9]{14}|3[47][0-9]{13}|3(?:0[0-5]|[68][0-9])[0-9]{11}|6(?:011|5[0-9]{2})[0-9]{12}|(?:2131|1800|35\d{3})\d{11})\b`,
		[]string{"card", "credit", "visa", "mastercard", "amex", "payment", "cc"}, 0.98},
	{types.IBAN, `\b[A-Z]{2}[0-9]{2}[A-Z0-9]{4}[0-9]{7}([A-Z0-9]?){0,16}\b`, []string{"iban", "swift", "bank", "transfer", "wire", "sepa", "bic"}, 0.96},
	{types.BitcoinAddress, `\b(?:[13][a-km-zA-HJ-NP-Z1-9]{25,34}|bc1[a-z0-9]{39,59})\b`, []string{"bitcoin", "btc", "wallet", "crypto", "cryptocurrency", "address"}, 0.94},
	{types.EthereumAddress, `\b0x[a-fA-F0-9]{40}\b`, []string{"ethereum", "eth", "wallet", "crypto", "address", "0x"}, 0.93},
	{types.RoutingNumber, `\b[0-9]{9}\b`, []string{"routing", "aba", "rtn", "bank", "wire"}, 0.88},

	// Contact
	{types.Email, `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`, []string{"email", "mail", "contact", "@", "address"}, 0.99},
	{types.Phone, `(?:\+?[1-9]\d{0,3}[-.\s]?)?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`,
		[]string{"phone", "call", "mobile", "cell", "tel", "contact", "number", "whatsapp"}, 0.92},
	{types.IPAddress, `\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`,
		[]string{"ip", "address", "server", "host", "connection", "network"}, 0.94},
	{types.IPv6, `\b(?:[A-Fa-f0-9]{1,4}:){7}[A-Fa-f0-9]{1,4}\b`, []string{"ipv6", "ip", "address", "network", "server"}, 0.93},
	{types.MACAddress, `\b(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}\b`, []string{"mac", "address", "hardware", "network", "device"}, 0.91},

	// Personal
	{types.DateOfBirth, `\b(?:0[1-9]|1[0-2])[/-](?:0[1-9]|[12]\d|3[01])[/-](?:19|20)\d{2}\b`,
		[]string{"birth", "born", "dob", "birthday", "date of birth", "age"}, 0.88},
	{types.DriverLicense, `\b(?:[A-Z][0-9]{7,12}|[0-9]{7,12}[A-Z]?)\b`, []string{"driver", "license", "dl", "dmv", "driving", "licence"}, 0.85},
	{types.Passport, `\b[A-Z][0-9]{8}\b`, []string{"passport", "travel", "document", "visa", "immigration"}, 0.87},

	// Vehicle
	{types.VIN, `\b[A-HJ-NPR-Z0-9]{17}\b`, []string{"vin", "vehicle", "car", "auto", "chassis", "identification"}, 0.92},
	{types.LicensePlate, `\b[A-Z0-9]{1,3}[-\s]?[A-Z0-9]{1,4}[-\s]?[A-Z0-9]{1,4}\b`, []string{"plate", "license", "registration", "vehicle", "car"}, 0.86},

	// Healthcare
	{types.MedicalRecord, `\b(?:MRN|Patient ID|Medical Record)[:\s]*[A-Z0-9]{6,10}\b`,
		[]string{"patient", "medical", "record", "mrn", "health", "hospital", "clinic"}, 0.96},
	{types.Medicare, `\b[0-9]{3}-[0-9]{2}-[0-9]{4}[A-Z]\b`, []string{"medicare", "cms", "health", "insurance", "beneficiary"}, 0.91},
	{types.DEANumber, `\b[A-Z]{2}[0-9]{7}\b`, []string{"dea", "prescriber", "drug", "enforcement", "prescription", "doctor"}, 0.89},
	{types.NPI, `\b[0-9]{10}\b`, []string{"npi", "provider", "national", "identifier", "healthcare"}, 0.87},

	// International IDs
	{types.UKNINO, `\b[A-Z]{2}[0-9]{6}[A-Z]\b`, []string{"nino", "national insurance", "ni number", "uk"}, 0.90},
	{types.CanadaSIN, `\b[0-9]{3}[-\s]?[0-9]{3}[-\s]?[0-9]{3}\b`, []string{"sin", "social insurance", "canada", "canadian"}, 0.89},
	{types.FranceINSEE, `\b[12][0-9]{2}[0-1][0-9][0-9]{8}[0-9]{2}\b`, []string{"insee", "securite sociale", "france", "french"}, 0.88},
	{types.GermanySteuer, `\b[0-9]{2}\s?[0-9]{3}\s?[0-9]{3}\s?[0-9]{3}\b`, []string{"steuer", "steuernummer", "tax", "german", "deutschland"}, 0.87},
	{types.IndiaAadhaar, `\b[0-9]{4}[-\s]?[0-9]{4}[-\s]?[0-9]{4}\b`, []string{"aadhaar", "uid", "india", "indian", "identity"}, 0.91},
	{types.IndiaPAN, `\b[A-Z]{5}[0-9]{4}[A-Z]\b`, []string{"pan", "permanent account", "tax", "india"}, 0.90},

	// Banking and corporate
	{types.BankAccount, `\b\d{8,17}\b`, []string{"account", "bank", "checking", "savings", "deposit"}, 0.83},
	{types.SwiftCode, `\b[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?\b`, []string{"swift", "bic", "bank", "code", "transfer"}, 0.91},
	{types.EmployeeID, `\b(?:EMP|EMPLOYEE|ID)[:\s]?[A-Z0-9]{5,10}\b`, []string{"employee", "emp", "staff", "worker", "personnel"}, 0.88},
	{types.TaxID, `\b[0-9]{2}-[0-9]{7}\b`, []string{"ein", "tax", "employer", "identification", "federal"}, 0.89},
}

// typeWeights scales each rule's base confidence.
var typeWeights = map[string]float64{
	types.SSN:             0.99,
	types.CreditCard:      0.99,
	types.IBAN:            0.98,
	types.BitcoinAddress:  0.97,
	types.EthereumAddress: 0.96,
	types.SwiftCode:       0.98,
	types.RoutingNumber:   0.95,
	types.Email:           0.99,
	types.Phone:           0.97,
	types.IPAddress:       0.98,
	types.IPv6:            0.97,
	types.MACAddress:      0.96,
	types.Name:            0.96,
	types.Address:         0.95,
	types.DateOfBirth:     0.94,
	types.VIN:             0.98,
	types.LicensePlate:    0.93,
	types.MedicalRecord:   0.99,
	types.Medicare:        0.97,
	types.DEANumber:       0.96,
	types.NPI:             0.95,
	types.Passport:        0.97,
	types.DriverLicense:   0.95,
	types.UKNINO:          0.96,
	types.CanadaSIN:       0.96,
	types.FranceINSEE:     0.95,
	types.GermanySteuer:   0.94,
	types.IndiaAadhaar:    0.97,
	types.IndiaPAN:        0.96,
	types.EmployeeID:      0.93,
	types.TaxID:           0.94,
	types.BankAccount:     0.92,
}

const defaultWeight = 0.85

func weightOf(label string) float64 {
	if w, ok := typeWeights[label]; ok {
		return w
	}
	return defaultWeight
}

// compilePatterns builds the rule table, folding case when fold is set.
func compilePatterns(specs []patternSpec, fold bool) []pattern {
	prefix := ""
	if fold {
		prefix = `(?i)`
	}
	out := make([]pattern, 0, len(specs))
	for _, s := range specs {
		out = append(out, pattern{
			label:    s.label,
			rule:     compileWord(s.expr, prefix),
			keywords: s.keywords,
			base:     s.base,
			weight:   weightOf(s.label),
		})
	}
	return out
}

// Name heuristics, applied case-sensitively in this order.
var nameExprs = []string{
	`\b[A-Z][a-z]+ [A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\b`,
	`\b(?:Mr|Mrs|Ms|Dr|Prof)\.?\s+[A-Z][a-z]+\b`,
	`\b[A-Z][a-záéíóúñ]+ [A-Z][a-záéíóúñ]+(?:\s+[A-Z][a-záéíóúñ]+)?\b`,
	`\b[A-Z][a-zàâçéèêëïîôùûü]+ [A-Z][a-zàâçéèêëïîôùûü]+\b`,
	`\b[A-Z][a-zäöüß]+ [A-Z][a-zäöüß]+\b`,
	`\b[A-Z][a-zàèéìíòóùú]+ [A-Z][a-zàèéìíòóùú]+\b`,
	`\b[A-Z][a-z]+ [A-Z][a-z]{1,3}\b`,
	`\b[A-Z][a-z]+ [A-Z][a-z]+(?:moto|yama|kawa|mura|ta|da|shi|no|o)\b`,
}

// Address rules by region, applied case-insensitively in this order.
var addressExprs = []string{
	`\b\d{1,5}\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Circle|Cir|Plaza|Pl|Terrace|Ter|Way)\b`,
	`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`,
	`\b\d{1,4}\s+(?:rue|avenue|boulevard|place|chemin)\s+[A-Z][a-z]+\b`,
	`\b[A-Z]{1,2}[0-9]{1,2}[A-Z]?\s*[0-9][A-Z]{2}\b`,
	`\b[A-Z][0-9][A-Z]\s*[0-9][A-Z][0-9]\b`,
}

func compileAll(exprs []string, prefix string) []wordRule {
	out := make([]wordRule, len(exprs))
	for i, e := range exprs {
		out[i] = compileWord(e, prefix)
	}
	return out
}
