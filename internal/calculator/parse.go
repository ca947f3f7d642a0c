package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const infinityLiteral = "Infinity"

// ParseLeadingFloat parses the longest numeric prefix of s, ignoring leading
// whitespace and any trailing characters, so "12abc" yields 12. It reports
// false when s has no numeric prefix at all.
//
// Values too large for float64 come back as ±Inf and values too small as 0;
// neither is treated as a parse failure.
func ParseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, isInputSpace)

	n := 0
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}

	if strings.HasPrefix(s[n:], infinityLiteral) {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	end := scanDecimal(s, n)
	if end < 0 {
		return math.NaN(), false
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// The prefix is well formed by construction, so the only failure left
		// is a range error, for which ParseFloat already returns ±Inf or 0.
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return math.NaN(), false
	}
	return v, true
}

// scanDecimal returns the end offset of the decimal literal starting at i, or
// -1 when no mantissa digit is present.
func scanDecimal(s string, i int) int {
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return -1
	}

	// An exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > start {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isInputSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}
