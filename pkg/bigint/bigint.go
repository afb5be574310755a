// Package bigint implements the signed arbitrary-precision integers backing
// the interpreter's Integer values.
//
// Magnitudes are stored as little-endian limbs in base 10^9 so that decimal
// rendering is a straight concatenation of zero-padded limbs. Every exported
// operation returns a fresh Int; receivers are never modified.
package bigint

import (
	"math"
	"strconv"
	"strings"
)

const (
	base       = 1_000_000_000
	baseDigits = 9
)

// Int is an immutable sign-magnitude integer. The zero value is 0.
type Int struct {
	limbs []uint32
	neg   bool
}

var zeroLimbs = []uint32{0}

// Zero returns the canonical zero.
func Zero() Int {
	return Int{limbs: []uint32{0}}
}

// One returns 1.
func One() Int {
	return Int{limbs: []uint32{1}}
}

// FromInt64 converts a machine integer.
func FromInt64(v int64) Int {
	neg := v < 0
	mag := uint64(v)
	if neg {
		mag = uint64(-(v + 1)) + 1
	}
	limbs := make([]uint32, 0, 3)
	for mag > 0 {
		limbs = append(limbs, uint32(mag%base))
		mag /= base
	}
	return Int{limbs: limbs, neg: neg}.normalize()
}

// FromDecimalString parses decimal text with an optional leading sign.
//
// Parsing is best effort: surrounding whitespace is ignored and only the
// longest run of leading digits after the sign is used, so "12abc" is 12.
// Text without any leading digit yields zero.
func FromDecimalString(s string) Int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	digits := s[:end]
	if digits == "" {
		return Zero()
	}
	limbs := make([]uint32, 0, len(digits)/baseDigits+1)
	for hi := len(digits); hi > 0; hi -= baseDigits {
		lo := hi - baseDigits
		if lo < 0 {
			lo = 0
		}
		var block uint32
		for _, c := range digits[lo:hi] {
			block = block*10 + uint32(c-'0')
		}
		limbs = append(limbs, block)
	}
	return Int{limbs: limbs, neg: neg}.normalize()
}

func (a Int) mag() []uint32 {
	if len(a.limbs) == 0 {
		return zeroLimbs
	}
	return a.limbs
}

// normalize trims leading zero limbs and clears the sign of zero.
func (a Int) normalize() Int {
	limbs := trim(a.limbs)
	if len(limbs) == 0 {
		return Zero()
	}
	if len(limbs) == 1 && limbs[0] == 0 {
		return Int{limbs: limbs}
	}
	return Int{limbs: limbs, neg: a.neg}
}

func trim(limbs []uint32) []uint32 {
	n := len(limbs)
	for n > 1 && limbs[n-1] == 0 {
		n--
	}
	return limbs[:n]
}

// IsZero reports whether a == 0.
func (a Int) IsZero() bool {
	m := a.mag()
	return len(m) == 1 && m[0] == 0
}

// Sign returns -1, 0 or +1.
func (a Int) Sign() int {
	switch {
	case a.IsZero():
		return 0
	case a.neg:
		return -1
	default:
		return 1
	}
}

// Neg returns -a.
func (a Int) Neg() Int {
	if a.IsZero() {
		return Zero()
	}
	return Int{limbs: a.mag(), neg: !a.neg}
}

// Abs returns |a|.
func (a Int) Abs() Int {
	return Int{limbs: a.mag()}
}

// Cmp returns -1, 0 or +1 depending on whether a is less than, equal to or
// greater than b.
func (a Int) Cmp(b Int) int {
	as, bs := a.Sign(), b.Sign()
	if as != bs {
		if as < bs {
			return -1
		}
		return 1
	}
	c := cmpAbs(a.mag(), b.mag())
	if as < 0 {
		return -c
	}
	return c
}

// Equal reports whether a == b.
func (a Int) Equal(b Int) bool {
	return a.Cmp(b) == 0
}

// String renders canonical decimal text.
func (a Int) String() string {
	if a.IsZero() {
		return "0"
	}
	m := a.mag()
	var b strings.Builder
	b.Grow(len(m)*baseDigits + 1)
	if a.neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatUint(uint64(m[len(m)-1]), 10))
	for i := len(m) - 2; i >= 0; i-- {
		limb := strconv.FormatUint(uint64(m[i]), 10)
		b.WriteString(strings.Repeat("0", baseDigits-len(limb)))
		b.WriteString(limb)
	}
	return b.String()
}

// Int64 returns a as an int64 and whether it fit.
func (a Int) Int64() (int64, bool) {
	m := a.mag()
	var v uint64
	for i := len(m) - 1; i >= 0; i-- {
		if v > (math.MaxUint64-uint64(m[i]))/base {
			return 0, false
		}
		v = v*base + uint64(m[i])
	}
	if a.neg {
		if v > 1<<63 {
			return 0, false
		}
		return int64(-v), true
	}
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

// Float64 converts through the decimal rendering, so the result is the
// correctly rounded double. Magnitudes beyond the float64 range give ±Inf.
func (a Int) Float64() float64 {
	f, _ := strconv.ParseFloat(a.String(), 64)
	return f
}
