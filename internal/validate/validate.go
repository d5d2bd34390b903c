package validate

import (
	"strconv"
	"strings"
)

const (
	upperAlpha = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits     = "0123456789"
)

// LengthBetween returns true if n is within [min,max].
func LengthBetween(s string, min, max int) bool {
	n := len(s)
	return n >= min && n <= max
}

// IsAlphabet returns true if all characters in s are in allowed set.
func IsAlphabet(s, allowed string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(allowed, rune(s[i])) {
			return false
		}
	}
	return true
}

// Digits returns only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Luhn reports whether the digits of s pass the Luhn checksum. Non-digit
// characters are ignored; fewer than 13 digits is never valid.
func Luhn(s string) bool {
	d := Digits(s)
	if len(d) < 13 {
		return false
	}
	sum := 0
	double := false
	for i := len(d) - 1; i >= 0; i-- {
		n := int(d[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

// LuhnCheckDigit returns the digit that makes partial+digit Luhn-valid.
func LuhnCheckDigit(partial string) byte {
	sum := 0
	double := true
	for i := len(partial) - 1; i >= 0; i-- {
		n := int(partial[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return byte('0' + (10-sum%10)%10)
}

// VIN reports whether s is 17 characters long and free of I, O and Q.
// The check character is not verified.
func VIN(s string) bool {
	if len(s) != 17 {
		return false
	}
	return !strings.ContainsAny(strings.ToUpper(s), "IOQ")
}

// IBAN performs a structural check: 15-34 characters once spaces are removed,
// a two-letter country code and two check digits. The mod-97 checksum is
// not verified.
func IBAN(s string) bool {
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if !LengthBetween(s, 15, 34) {
		return false
	}
	return IsAlphabet(s[:2], upperAlpha) && IsAlphabet(s[2:4], digits)
}

// Bitcoin reports whether s looks like a legacy (1/3) or bech32 (bc1)
// address without ambiguous glyphs after the first character.
func Bitcoin(s string) bool {
	if !LengthBetween(s, 26, 62) {
		return false
	}
	if !(strings.HasPrefix(s, "1") || strings.HasPrefix(s, "3") || strings.HasPrefix(s, "bc1")) {
		return false
	}
	return !strings.ContainsAny(s[1:], "0OIl")
}

// SSN reports whether s carries nine digits with a valid area, group and
// serial. Separators are ignored.
func SSN(s string) bool {
	d := Digits(s)
	if len(d) != 9 {
		return false
	}
	area, group, serial := d[:3], d[3:5], d[5:]
	if area == "000" || area == "666" {
		return false
	}
	if n, _ := strconv.Atoi(area); n >= 900 {
		return false
	}
	return group != "00" && serial != "0000"
}

// IPv4 reports whether s is four dot-separated decimal octets in [0,255].
func IPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || !IsAlphabet(p, digits) {
			return false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// EmailDomain reports whether s has an @ followed by a domain containing a dot.
func EmailDomain(s string) bool {
	at := strings.Index(s, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}
