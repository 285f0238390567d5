package internal

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Size thresholds used by filesizeformat
const (
	sizeKB = 1024.0
	sizeMB = sizeKB * 1024
	sizeGB = sizeMB * 1024
)

func numberFilters() []*Filter {
	return []*Filter{
		{Name: FilterAdd, Accepts: KindAny, Fn: filterAdd},
		{Name: FilterDivisibleBy, Accepts: KindAny, Fn: filterDivisibleBy},
		{Name: FilterFileSizeFormat, Accepts: KindAny, Fn: filterFileSizeFormat},
		{Name: FilterFloatFormat, Accepts: KindAny, Fn: filterFloatFormat},
		{Name: FilterGetDigit, Accepts: KindNumber, Fallback: fallbackPassThrough, Fn: filterGetDigit},
		{Name: FilterPluralize, Accepts: KindAny, Fn: filterPluralize},
	}
}

func filterAdd(value any, arg FilterArg) (any, error) {
	a, ok := ToNumber(value)
	if !ok {
		return StringValueEmpty, nil
	}
	b, ok := arg.Coerce()
	if !ok {
		return StringValueEmpty, nil
	}
	return NormalizeNumber(a + b), nil
}

func filterDivisibleBy(value any, arg FilterArg) (any, error) {
	v, ok := ToNumber(value)
	if !ok {
		return false, nil
	}
	d, ok := arg.Coerce()
	if !ok || d == 0 {
		return false, nil
	}
	return math.Mod(v, d) == 0, nil
}

func filterFileSizeFormat(value any, _ FilterArg) (any, error) {
	size, ok := ToNumber(value)
	if !ok {
		return FileSizeZero, nil
	}
	switch {
	case size <= 0:
		return FileSizeZero, nil
	case size <= 1:
		return FileSizeOne, nil
	case size < sizeKB:
		return toFixed(size, 0) + FileSizeUnitBytes, nil
	case size < sizeMB:
		return oneDecimal(size/sizeKB) + FileSizeUnitKB, nil
	case size < sizeGB:
		return oneDecimal(size/sizeMB) + FileSizeUnitMB, nil
	default:
		return oneDecimal(size/sizeGB) + FileSizeUnitGB, nil
	}
}

func oneDecimal(f float64) string {
	return toFixed(f, 1)
}

// toFixed formats f with the given number of decimals. Exact ties round
// away from zero, judged on the exact binary value of f, so 1.25 becomes
// "1.3" while 1.005 (stored just below) becomes "1.00".
func toFixed(f float64, digits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, FloatFormatFlag, digits, FloatBitSize64)
	}
	neg := f < 0
	if neg {
		f = -f
	}

	scaled := new(big.Rat).SetFloat64(f)
	pow := new(big.Int).Exp(big.NewInt(IntBase10), big.NewInt(int64(digits)), nil)
	scaled.Mul(scaled, new(big.Rat).SetInt(pow))

	quo, rem := new(big.Int).QuoRem(scaled.Num(), scaled.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(scaled.Denom()) >= 0 {
		quo.Add(quo, big.NewInt(1))
	}

	s := quo.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat(DigitZero, digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + DecimalPoint + s[len(s)-digits:]
	}
	if neg {
		s = NegativeSign + s
	}
	return s
}

// filterFloatFormat rounds to abs(arg) places. A non-positive arg drops the
// decimals entirely when the rounded value has no fractional part.
func filterFloatFormat(value any, arg FilterArg) (any, error) {
	num, ok := ToNumber(value)
	if !ok {
		return StringValueEmpty, nil
	}
	precision := DefaultFloatPrecision
	if p, ok := arg.Coerce(); ok && p != 0 {
		precision = int(p)
	}

	digits := precision
	if digits < 0 {
		digits = -digits
	}
	if digits > MaxFloatFormatDigits {
		digits = MaxFloatFormatDigits
	}
	s := toFixed(num, digits)
	if precision > 0 {
		return s, nil
	}
	if rounded, err := strconv.ParseFloat(s, FloatBitSize64); err == nil && rounded == math.Trunc(rounded) {
		return toFixed(num, 0), nil
	}
	return s, nil
}

// filterGetDigit returns the nth digit counted from the right (1-based)
func filterGetDigit(value any, arg FilterArg) (any, error) {
	n, ok := arg.Number()
	if !ok {
		return value, nil
	}
	s := Stringify(value)
	pos := int(n)
	if pos < 1 || pos > len(s) {
		return value, nil
	}
	ch := s[len(s)-pos]
	if !isDigit(ch) {
		return value, nil
	}
	return int64(ch - '0'), nil
}

func filterPluralize(value any, arg FilterArg) (any, error) {
	n, ok := ToNumber(value)
	if !ok {
		return StringValueEmpty, nil
	}
	singular, plural := StringValueEmpty, DefaultPluralSuffix
	if arg.Given {
		parts := strings.Split(arg.String(), PluralSeparator)
		if len(parts) == 1 {
			plural = parts[0]
		} else {
			singular, plural = parts[0], parts[1]
		}
	}
	if n == 1 {
		return singular, nil
	}
	return plural, nil
}
