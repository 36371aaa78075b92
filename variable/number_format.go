package variable

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// String returns the shortest invariant text that parses back to n. Values
// outside [1e-4, 1e15) use exponent notation, e.g. "1E+30".
func (n Number) String() string {
	return formatGeneral(float64(n), 0, true)
}

// Format renders n with a standard numeric format specifier, using
// invariant-culture separators:
//
//	G[n]  general, n significant digits (default shortest round-trip)
//	R     round-trip
//	F[n]  fixed point, n decimals (default 2)
//	N[n]  fixed point with thousands separators (default 2)
//	E[n]  exponent notation, n decimals (default 6)
//	P[n]  percent, n decimals (default 2)
//	D[n]  integer part, zero padded to n digits
//
// Lower-case codes are accepted; for G and E they also lower-case the
// exponent marker. An unknown specifier fails with ErrInvalidArgument.
func (n Number) Format(spec string) (string, error) {
	if spec == "" {
		return n.String(), nil
	}
	code, prec, err := parseSpec(spec)
	if err != nil {
		return "", err
	}

	f := float64(n)
	switch code {
	case 'G', 'g':
		return formatGeneral(f, prec, code == 'G'), nil
	case 'R', 'r':
		return formatGeneral(f, 0, true), nil
	case 'F', 'f':
		return formatFixed(f, orDefault(prec, 2), false), nil
	case 'N', 'n':
		return formatFixed(f, orDefault(prec, 2), true), nil
	case 'E', 'e':
		return formatExponent(f, orDefault(prec, 6), code == 'E'), nil
	case 'P', 'p':
		if s, ok := nonFinite(f); ok {
			return s, nil
		}
		return formatFixed(f*100, orDefault(prec, 2), true) + " %", nil
	case 'D', 'd':
		return formatInteger(n.Int64(), prec), nil
	}
	return "", fmt.Errorf("%w: unknown format specifier %q", ErrInvalidArgument, spec)
}

// FormatLocale renders n for a specific locale. F, N and P are localised
// through golang.org/x/text; other specifiers fall back to Format.
func (n Number) FormatLocale(tag language.Tag, spec string) (string, error) {
	if spec == "" {
		return n.Format(spec)
	}
	code, prec, err := parseSpec(spec)
	if err != nil {
		return "", err
	}

	f := float64(n)
	if s, ok := nonFinite(f); ok {
		return s, nil
	}

	p := message.NewPrinter(tag)
	switch code {
	case 'F', 'f':
		return p.Sprintf("%v", number.Decimal(f, number.Scale(orDefault(prec, 2)), number.NoSeparator())), nil
	case 'N', 'n':
		return p.Sprintf("%v", number.Decimal(f, number.Scale(orDefault(prec, 2)))), nil
	case 'P', 'p':
		return p.Sprintf("%v", number.Percent(f, number.Scale(orDefault(prec, 2)))), nil
	}
	return n.Format(spec)
}

func parseSpec(spec string) (code byte, prec int, err error) {
	code, prec = spec[0], -1
	if len(spec) > 1 {
		prec, err = strconv.Atoi(spec[1:])
		if err != nil || prec < 0 || prec > 99 {
			return 0, 0, fmt.Errorf("%w: bad precision in format specifier %q", ErrInvalidArgument, spec)
		}
	}
	return code, prec, nil
}

func orDefault(prec, def int) int {
	if prec < 0 {
		return def
	}
	return prec
}

func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Infinity", true
	case math.IsInf(f, -1):
		return "-Infinity", true
	}
	return "", false
}

// formatGeneral keeps digits significant digits (shortest round-trip when
// digits <= 0) and switches to exponent notation for small or large
// exponents.
func formatGeneral(f float64, digits int, upper bool) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	if f == 0 {
		return "0"
	}

	prec, limit := -1, 15
	if digits > 0 {
		prec, limit = digits-1, digits
	}
	e := strconv.FormatFloat(f, 'e', prec, 64)
	mant, exp := splitExponent(e)
	if exp < -4 || exp >= limit {
		return scientific(trimFraction(mant), exp, 2, upper)
	}
	rounded, _ := strconv.ParseFloat(e, 64)
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func formatFixed(f float64, prec int, group bool) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if group {
		s = groupThousands(s)
	}
	return s
}

func formatExponent(f float64, prec int, upper bool) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	mant, exp := splitExponent(strconv.FormatFloat(f, 'e', prec, 64))
	return scientific(mant, exp, 3, upper)
}

func formatInteger(i int64, width int) string {
	s := strconv.FormatInt(i, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	if neg {
		s = "-" + s
	}
	return s
}

// splitExponent splits strconv 'e' output such as "-1.25e+02".
func splitExponent(e string) (string, int) {
	i := strings.IndexByte(e, 'e')
	exp, _ := strconv.Atoi(e[i+1:])
	return e[:i], exp
}

func scientific(mant string, exp, minDigits int, upper bool) string {
	sign := "+"
	if exp < 0 {
		sign, exp = "-", -exp
	}
	digits := strconv.Itoa(exp)
	if len(digits) < minDigits {
		digits = strings.Repeat("0", minDigits-len(digits)) + digits
	}
	marker := "e"
	if upper {
		marker = "E"
	}
	return mant + marker + sign + digits
}

func trimFraction(mant string) string {
	if !strings.Contains(mant, ".") {
		return mant
	}
	mant = strings.TrimRight(mant, "0")
	return strings.TrimSuffix(mant, ".")
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}
