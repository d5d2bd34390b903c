package anonymize

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/redactyl/piiguard/internal/validate"
)

// ErrNotNumeric is returned when a numeric field holds a value that cannot be
// read as a number.
var ErrNotNumeric = errors.New("value is not numeric")

const dateLayout = "2006-01-02"

var (
	alnumRe   = regexp.MustCompile(`[a-zA-Z0-9]`)
	zipCodeRe = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

	defaultRanges = [][2]float64{{0, 10}, {11, 20}, {21, 50}, {51, 100}}
)

func anonymizeEmail(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	email := stringify(value)
	switch fc.Method {
	case Mask:
		local, domain, ok := strings.Cut(email, "@")
		if !ok {
			return "***@***.***", nil
		}
		return maskWord(local) + "@" + domain, nil
	case Hash:
		return "anon_" + hexDigest(email)[:12] + "@example.com", nil
	case Fake:
		return sc.Generator(stringParam(fc.Params, "locale", "")).Email(email), nil
	default:
		return "[EMAIL_REDACTED]", nil
	}
}

func anonymizePhone(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	phone := stringify(value)
	switch fc.Method {
	case Mask:
		return maskDigits(phone, fc, sc.PreserveFormat), nil
	case Hash:
		return "+1" + hexDigest(phone)[:10], nil
	case Fake:
		return sc.Generator("").Phone(phone, stringParam(fc.Params, "format", "us")), nil
	default:
		return "[PHONE_REDACTED]", nil
	}
}

func anonymizeName(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	name := stringify(value)
	switch fc.Method {
	case Mask:
		words := strings.Fields(name)
		for i, w := range words {
			words[i] = maskWord(w)
		}
		return strings.Join(words, " "), nil
	case Hash:
		return "User_" + hexDigest(name)[:8], nil
	case Fake:
		return sc.Generator(stringParam(fc.Params, "locale", "")).FullName(name), nil
	default:
		return "[NAME_REDACTED]", nil
	}
}

func anonymizeSSN(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	ssn := stringify(value)
	switch fc.Method {
	case Mask:
		d := validate.Digits(ssn)
		if len(d) < 4 {
			return "***-**-****", nil
		}
		return "***-**-" + d[len(d)-4:], nil
	case Hash:
		h := hexDigest(ssn)
		return h[:3] + "-" + h[3:5] + "-" + h[5:9], nil
	case Fake:
		return sc.Generator("").SSN(ssn), nil
	default:
		return "[SSN_REDACTED]", nil
	}
}

func anonymizeDate(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	dt, ok := parseDate(value)
	if !ok {
		return "[DATE_REDACTED]", nil
	}
	switch fc.Method {
	case Redact:
		return "[DATE_REDACTED]", nil
	case Generalize:
		switch stringParam(fc.Params, "precision", "month") {
		case "year":
			return dt.Format("2006") + "-01-01", nil
		case "month":
			return dt.Format("2006-01") + "-01", nil
		case "decade":
			return fmt.Sprintf("%04d-01-01", dt.Year()/10*10), nil
		}
	case Fake:
		r := sc.Generator("").Rand(stringify(value))
		shift := r.IntN(731) - 365
		return dt.AddDate(0, 0, shift).Format(dateLayout), nil
	}
	return dt.Format(dateLayout), nil
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", dateLayout}

func parseDate(value any) (time.Time, bool) {
	if t, ok := value.(time.Time); ok {
		return t, true
	}
	s := strings.TrimSpace(stringify(value))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func anonymizeNumeric(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	num, ok := toFloat(value)
	if !ok {
		if s, isStr := value.(string); isStr {
			num, ok = toFloat(strings.TrimSpace(s))
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, stringify(value))
	}
	switch fc.Method {
	case Redact:
		return 0, nil
	case Generalize:
		for _, r := range rangesParam(fc.Params, "ranges", defaultRanges) {
			if r[0] <= num && num <= r[1] {
				return formatNumber(r[0]) + "-" + formatNumber(r[1]), nil
			}
		}
		return "other", nil
	case Fake:
		pct := floatParam(fc.Params, "noise_percent", 10)
		r := sc.Generator("").Rand(stringify(value))
		noise := num * ((r.Float64()*2 - 1) * pct / 100)
		return math.Round((num+noise)*100) / 100, nil
	default:
		return num, nil
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func anonymizeText(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	text := stringify(value)
	switch fc.Method {
	case Hash:
		return "text_" + hexDigest(text)[:16], nil
	case Mask:
		return alnumRe.ReplaceAllLiteralString(text, stringParam(fc.Params, "mask_char", "*")), nil
	default:
		return "[TEXT_REDACTED]", nil
	}
}

func anonymizeAddress(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	addr := stringify(value)
	switch fc.Method {
	case Fake:
		return sc.Generator(stringParam(fc.Params, "locale", "")).Address(addr).Full, nil
	case Generalize:
		if stringParam(fc.Params, "precision", "city") == "zip" {
			if zip := zipCodeRe.FindString(addr); zip != "" {
				return zip, nil
			}
		}
		return "[LOCATION_GENERALIZED]", nil
	default:
		return "[ADDRESS_REDACTED]", nil
	}
}

func anonymizeCreditCard(value any, fc FieldConfig, sc *StrategyContext) (any, error) {
	cc := stringify(value)
	switch fc.Method {
	case Mask:
		return maskDigits(cc, fc, sc.PreserveFormat), nil
	case Hash:
		return hexDigest(cc)[:16], nil
	default:
		return "[CC_REDACTED]", nil
	}
}

// maskWord keeps the first character of w and replaces the rest with ***.
func maskWord(w string) string {
	if utf8.RuneCountInString(w) <= 1 {
		return "***"
	}
	r, _ := utf8.DecodeRuneInString(w)
	return string(r) + "***"
}

// maskDigits hides all but the last show_last digits. With preserveFormat the
// separators stay in place; otherwise only the digits are emitted.
func maskDigits(s string, fc FieldConfig, preserveFormat bool) string {
	show := intParam(fc.Params, "show_last", 4)
	mask := stringParam(fc.Params, "mask_char", "*")
	digits := validate.Digits(s)
	keepFrom := len(digits) - show
	if show <= 0 || len(digits) <= show {
		keepFrom = len(digits)
	}
	if !preserveFormat {
		return strings.Repeat(mask, keepFrom) + digits[keepFrom:]
	}
	var b strings.Builder
	seen := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			b.WriteByte(c)
			continue
		}
		if seen < keepFrom {
			b.WriteString(mask)
		} else {
			b.WriteByte(c)
		}
		seen++
	}
	return b.String()
}
