package numbers

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Number is a non-negative integer of arbitrary size, kept as its canonical
// decimal digits: no leading zeros, and "0" for zero. The zero value is 0.
type Number struct {
	digits string
}

// ErrNotNumber is returned when parsing text that is not a plain decimal digit string.
var ErrNotNumber = errors.New("not a decimal digit string")

// canonical strips leading zeros from an all-digit byte slice.
func canonical(run []byte) string {
	i := 0
	for i < len(run)-1 && run[i] == '0' {
		i++
	}
	return string(run[i:])
}

// Parse reads a decimal digit string. Leading zeros are accepted and dropped.
func Parse(s string) (Number, error) {
	if s == "" {
		return Number{}, ErrNotNumber
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return Number{}, fmt.Errorf("%w: %q", ErrNotNumber, s)
		}
	}
	return Number{digits: canonical([]byte(s))}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests
// and constants.
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// FromUint64 wraps a machine integer.
func FromUint64(v uint64) Number {
	return Number{digits: strconv.FormatUint(v, 10)}
}

func (n Number) String() string {
	if n.digits == "" {
		return "0"
	}
	return n.digits
}

// Len returns the number of decimal digits.
func (n Number) Len() int { return len(n.String()) }

// Cmp compares n and m and returns -1, 0 or +1. Canonical digit strings
// order numerically by length first, then lexically.
func (n Number) Cmp(m Number) int {
	a, b := n.String(), m.String()
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return strings.Compare(a, b)
}

// Uint64 returns the value as a uint64 and whether it fits.
func (n Number) Uint64() (uint64, bool) {
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BigInt returns the value as a freshly allocated big.Int.
func (n Number) BigInt() *big.Int {
	v, _ := new(big.Int).SetString(n.String(), 10)
	return v
}

func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Number) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// MarshalJSON emits a bare JSON number so arbitrarily large values survive
// without float rounding on the encoding side.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	return n.UnmarshalText([]byte(s))
}

// Strings renders a slice of numbers as their digit strings.
func Strings(ns []Number) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.String()
	}
	return out
}

// ParseAll is the inverse of Strings.
func ParseAll(ss []string) ([]Number, error) {
	out := make([]Number, 0, len(ss))
	for _, s := range ss {
		n, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
