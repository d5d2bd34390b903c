// Package fake generates realistic synthetic identities, contact details,
// addresses, and identifiers for anonymization.
//
// Every method that accepts an original value derives its randomness from a
// hash of that value (and the generator seed, if any), so the same input
// always yields the same fake output. Passing an empty original draws from
// the generator's own random stream instead.
package fake

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/redactyl/piiguard/internal/validate"
)

const seedMix = 0x9e3779b97f4a7c15

// Address is a generated postal address. Full is "street, city, state postal".
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
	Full    string `json:"full"`
}

// Generator produces fake values. It is safe for concurrent use.
type Generator struct {
	locale string
	seed   *int64

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes both the unseeded stream and per-value derivation reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) { s := seed; g.seed = &s }
}

// WithLocale selects name lists, phone style and address layout, e.g. "en_US",
// "es_ES", "de_DE", "en_GB", "fr_CA".
func WithLocale(locale string) Option {
	return func(g *Generator) {
		if locale != "" {
			g.locale = locale
		}
	}
}

// New returns a generator with locale en_US unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{locale: "en_US"}
	for _, o := range opts {
		o(g)
	}
	if g.seed != nil {
		s := uint64(*g.seed)
		g.rng = rand.New(rand.NewPCG(s, s^seedMix))
	} else {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Locale reports the configured locale.
func (g *Generator) Locale() string { return g.locale }

// Rand returns a random source derived only from original and the seed.
// Callers own the returned value; it is not shared.
func (g *Generator) Rand(original string) *rand.Rand {
	key := original
	if g.seed != nil {
		key = strconv.FormatInt(*g.seed, 10) + ":" + original
	}
	h := xxhash.Sum64String(key)
	return rand.New(rand.NewPCG(h, h^seedMix))
}

func draw[T any](g *Generator, original string, fn func(r *rand.Rand) T) T {
	if original != "" {
		return fn(g.Rand(original))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.rng)
}

// between returns an int in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

func (g *Generator) nameLists() (first, last []string) {
	switch {
	case strings.HasPrefix(g.locale, "es"):
		return firstNamesES, lastNamesES
	case strings.HasPrefix(g.locale, "fr"):
		return firstNamesFR, lastNamesFR
	case strings.HasPrefix(g.locale, "de"):
		return firstNamesDE, lastNamesDE
	case strings.HasPrefix(g.locale, "ja"):
		return firstNamesJA, lastNamesJA
	default:
		return firstNamesEN, lastNamesEN
	}
}

// FirstName returns a given name from the locale's list.
func (g *Generator) FirstName(original string) string {
	first, _ := g.nameLists()
	return draw(g, original, func(r *rand.Rand) string { return pick(r, first) })
}

// LastName returns a family name from the locale's list.
func (g *Generator) LastName(original string) string {
	_, last := g.nameLists()
	return draw(g, original, func(r *rand.Rand) string { return pick(r, last) })
}

// FullName returns "First Last".
func (g *Generator) FullName(original string) string {
	first, last := g.nameLists()
	return draw(g, original, func(r *rand.Rand) string {
		return pick(r, first) + " " + pick(r, last)
	})
}

// Email returns a lowercase address on one of EmailDomains, built from a
// generated first and last name.
func (g *Generator) Email(original string) string {
	return draw(g, original, func(r *rand.Rand) string {
		first := lower(pick(r, firstNamesEN))
		last := lower(pick(r, lastNamesEN))
		var local string
		switch r.IntN(4) {
		case 0:
			local = first + "." + last
		case 1:
			local = first + last
		case 2:
			local = first[:1] + last
		default:
			local = first + strconv.Itoa(between(r, 1, 999))
		}
		return local + "@" + pick(r, EmailDomains)
	})
}

// Phone returns a number in the given format: "us" (+1-AAA-EEE-SSSS), "uk",
// "intl"; anything else produces a +1-555 number.
func (g *Generator) Phone(original, format string) string {
	return draw(g, original, func(r *rand.Rand) string {
		switch format {
		case "us", "":
			return fmt.Sprintf("+1-%d-%d-%d", between(r, 200, 999), between(r, 200, 999), between(r, 1000, 9999))
		case "uk":
			return fmt.Sprintf("+44-%d-%d", between(r, 20, 79), between(r, 10000000, 99999999))
		case "intl":
			return fmt.Sprintf("+%d-%d", between(r, 1, 99), between(r, 1000000000, 9999999999))
		default:
			return fmt.Sprintf("+1-555-%03d-%04d", r.IntN(1000), r.IntN(10000))
		}
	})
}

// SSN returns a well-formed US social security number. Area 666 is never used.
func (g *Generator) SSN(original string) string {
	return draw(g, original, func(r *rand.Rand) string {
		area := between(r, 100, 899)
		if area == 666 {
			area = 667
		}
		return fmt.Sprintf("%03d-%02d-%04d", area, between(r, 10, 99), between(r, 1000, 9999))
	})
}

// Address returns a postal address laid out for the locale (UK, Canada, or US).
func (g *Generator) Address(original string) Address {
	return draw(g, original, func(r *rand.Rand) Address {
		street := fmt.Sprintf("%d %s %s", between(r, 1, 9999), pick(r, streetNames), pick(r, streetSuffixes))
		var a Address
		switch g.locale {
		case "en_GB":
			c := pick(r, ukCities)
			postal := fmt.Sprintf("%s %d%c%c", c.postal, between(r, 1, 9),
				ukPostalLetters[r.IntN(len(ukPostalLetters))],
				ukPostalLetters[r.IntN(len(ukPostalLetters))])
			a = Address{Street: street, City: c.name, State: c.region, Postal: postal, Country: "UK"}
		case "en_CA", "fr_CA":
			c := pick(r, caCities)
			postal := fmt.Sprintf("%s %d%c%d", c.postal, between(r, 1, 9),
				caPostalLetters[r.IntN(len(caPostalLetters))], between(r, 1, 9))
			a = Address{Street: street, City: c.name, State: c.region, Postal: postal, Country: "Canada"}
		default:
			c := pick(r, usCities)
			base, _ := strconv.Atoi(c.postal)
			postal := fmt.Sprintf("%05d", base+r.IntN(100))
			a = Address{Street: street, City: c.name, State: c.region, Postal: postal, Country: "USA"}
		}
		a.Full = fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.Postal)
		return a
	})
}

// StreetAddress returns only the street line of Address.
func (g *Generator) StreetAddress(original string) string {
	return g.Address(original).Street
}

// City returns only the city of Address.
func (g *Generator) City(original string) string {
	return g.Address(original).City
}

// Company returns a name such as "Global Data Solutions LLC".
func (g *Generator) Company(original string) string {
	return draw(g, original, func(r *rand.Rand) string {
		var b strings.Builder
		if r.Float64() < 0.3 {
			b.WriteString(pick(r, companyPrefixes))
			b.WriteByte(' ')
		}
		b.WriteString(pick(r, companyBases))
		b.WriteByte(' ')
		b.WriteString(pick(r, companySuffixes))
		return b.String()
	})
}

// Date returns YYYY-MM-DD between minYear and maxYear. Days stop at 28 so every
// month is valid. Zero bounds default to 1950 and 2005.
func (g *Generator) Date(original string, minYear, maxYear int) string {
	if minYear == 0 {
		minYear = 1950
	}
	if maxYear == 0 {
		maxYear = 2005
	}
	if maxYear < minYear {
		minYear, maxYear = maxYear, minYear
	}
	return draw(g, original, func(r *rand.Rand) string {
		return fmt.Sprintf("%04d-%02d-%02d", between(r, minYear, maxYear), between(r, 1, 12), between(r, 1, 28))
	})
}

var cardPrefixes = []struct {
	prefix string
	length int
}{
	{"4", 16},
	{"51", 16}, {"52", 16}, {"53", 16}, {"54", 16}, {"55", 16},
	{"37", 15},
	{"6011", 16},
}

// CreditCard returns a Luhn-valid card number grouped 4-4-4-4, or 4-6-5 for
// 15 digit numbers.
func (g *Generator) CreditCard(original string) string {
	return draw(g, original, func(r *rand.Rand) string {
		// pick a network first so Mastercard does not outweigh the others
		var p struct {
			prefix string
			length int
		}
		switch r.IntN(4) {
		case 0:
			p = cardPrefixes[0]
		case 1:
			p = cardPrefixes[1+r.IntN(5)]
		case 2:
			p = cardPrefixes[6]
		default:
			p = cardPrefixes[7]
		}
		digits := []byte(p.prefix)
		for len(digits) < p.length-1 {
			digits = append(digits, byte('0'+r.IntN(10)))
		}
		digits = append(digits, validate.LuhnCheckDigit(string(digits)))
		s := string(digits)
		if p.length == 15 {
			return s[:4] + " " + s[4:10] + " " + s[10:]
		}
		return s[:4] + " " + s[4:8] + " " + s[8:12] + " " + s[12:]
	})
}

// IPAddress returns a dotted IPv4 address, or full 8-group IPv6 when version is 6.
func (g *Generator) IPAddress(original string, version int) string {
	return draw(g, original, func(r *rand.Rand) string {
		if version == 6 {
			parts := make([]string, 8)
			for i := range parts {
				parts[i] = fmt.Sprintf("%04x", r.IntN(0x10000))
			}
			return strings.Join(parts, ":")
		}
		first := pick(r, []int{10, 172, 192, between(r, 1, 223)})
		return fmt.Sprintf("%d.%d.%d.%d", first, r.IntN(256), r.IntN(256), between(r, 1, 254))
	})
}

// Username returns a handle derived from a generated name.
func (g *Generator) Username(original string) string {
	first, last := g.nameLists()
	return draw(g, original, func(r *rand.Rand) string {
		f := lower(pick(r, first))
		l := lower(pick(r, last))
		switch r.IntN(4) {
		case 0:
			return f + strconv.Itoa(between(r, 1, 999))
		case 1:
			return f + "_" + l
		case 2:
			return string([]rune(f)[:1]) + l
		default:
			return l + strconv.Itoa(between(r, 10, 99))
		}
	})
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
