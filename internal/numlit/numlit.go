// Package numlit parses the integer literal forms the script language
// accepts: decimal with underscore separators, 0x/0X hexadecimal, and
// scientific notation (digits, e/E, digits). The lexer delegates literal
// validation here, and the config layer reuses the same rules for values
// arriving from the environment, so both agree on what a number is.
package numlit

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a parsed integer literal.
type Value struct {
	Num uint64
	// Signed is false when the literal carried an unsigned suffix or
	// does not fit in int64.
	Signed bool
}

// Int64 returns the value as int64. Only meaningful when Signed.
func (v Value) Int64() int64 {
	return int64(v.Num)
}

// validSuffixes holds the accepted unsigned/long suffix combinations,
// lowercased: at most one 'u', at most two contiguous 'l', either order.
var validSuffixes = map[string]bool{
	"": true, "u": true, "l": true, "ll": true,
	"ul": true, "ull": true, "lu": true, "llu": true,
}

// Parse parses an unsigned literal lexeme: decimal (with optional
// underscore separators), hexadecimal, or scientific notation, plus an
// optional u/l suffix run. The sign is never part of a literal; unary
// minus is an operator.
func Parse(text string) (Value, error) {
	body, suffix := splitSuffix(text)
	if !validSuffixes[strings.ToLower(suffix)] {
		return Value{}, fmt.Errorf("invalid suffix %q on integer literal %q", suffix, text)
	}
	unsigned := strings.ContainsAny(suffix, "uU")

	var (
		num uint64
		err error
	)
	switch {
	case strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X"):
		num, err = parseHex(body, text)
	case isScientific(body):
		num, err = parseScientific(body, text)
	default:
		num, err = parseDecimal(body, text)
	}
	if err != nil {
		return Value{}, err
	}

	return Value{Num: num, Signed: !unsigned && num <= math.MaxInt64}, nil
}

// ParseSigned parses a possibly negated integer, the form config values
// take ("-1", "42", "0x10"). The magnitude follows the same literal
// rules as Parse.
func ParseSigned(text string) (int64, error) {
	if rest, ok := strings.CutPrefix(text, "-"); ok {
		v, err := Parse(rest)
		if err != nil {
			return 0, err
		}
		if v.Num > uint64(math.MaxInt64)+1 {
			return 0, fmt.Errorf("integer literal %q overflows 64 bits", text)
		}
		return -int64(v.Num), nil
	}
	v, err := Parse(text)
	if err != nil {
		return 0, err
	}
	if !v.Signed {
		return 0, fmt.Errorf("integer literal %q overflows 64 bits", text)
	}
	return v.Int64(), nil
}

func splitSuffix(text string) (body, suffix string) {
	i := len(text)
	for i > 0 {
		switch text[i-1] {
		case 'u', 'U', 'l', 'L':
			i--
		default:
			return text[:i], text[i:]
		}
	}
	return text[:i], text[i:]
}

func parseHex(body, orig string) (uint64, error) {
	digits := body[2:]
	if digits == "" {
		return 0, fmt.Errorf("invalid integer literal %q", orig)
	}
	num, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, convErr(err, orig)
	}
	return num, nil
}

func isScientific(body string) bool {
	return strings.ContainsAny(body, "eE")
}

func parseScientific(body, orig string) (uint64, error) {
	idx := strings.IndexAny(body, "eE")
	mantissa, exponent := body[:idx], body[idx+1:]

	m, err := parseDecimal(mantissa, orig)
	if err != nil {
		return 0, err
	}
	if exponent == "" || strings.ContainsAny(exponent, "_+-") {
		return 0, fmt.Errorf("invalid integer literal %q", orig)
	}
	e, err := strconv.ParseUint(exponent, 10, 64)
	if err != nil {
		return 0, convErr(err, orig)
	}
	// 10^19 < 2^64 < 10^20, so anything above 19 overflows outright
	// (unless the mantissa is zero).
	if e > 19 && m != 0 {
		return 0, fmt.Errorf("integer literal %q overflows 64 bits", orig)
	}
	out := m
	for ; e > 0; e-- {
		if out > math.MaxUint64/10 {
			return 0, fmt.Errorf("integer literal %q overflows 64 bits", orig)
		}
		out *= 10
	}
	return out, nil
}

func parseDecimal(body, orig string) (uint64, error) {
	if !validUnderscores(body) {
		return 0, fmt.Errorf("invalid integer literal %q", orig)
	}
	body = strings.ReplaceAll(body, "_", "")
	if body == "" {
		return 0, fmt.Errorf("invalid integer literal %q", orig)
	}
	num, err := strconv.ParseUint(body, 10, 64)
	if err != nil {
		return 0, convErr(err, orig)
	}
	return num, nil
}

// validUnderscores requires every underscore to sit between two digits.
func validUnderscores(body string) bool {
	for i := 0; i < len(body); i++ {
		if body[i] != '_' {
			continue
		}
		if i == 0 || i == len(body)-1 {
			return false
		}
		if !isDigit(body[i-1]) || !isDigit(body[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func convErr(err error, orig string) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) && ne.Err == strconv.ErrRange {
		return fmt.Errorf("integer literal %q overflows 64 bits", orig)
	}
	return fmt.Errorf("invalid integer literal %q", orig)
}
