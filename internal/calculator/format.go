package calculator

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v with the fewest digits that round-trip, using plain
// decimal notation for 1e-6 <= |v| < 1e21 and exponent notation otherwise.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return infinityLiteral
	case math.IsInf(v, -1):
		return "-" + infinityLiteral
	case v == 0:
		// Covers -0 as well.
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
