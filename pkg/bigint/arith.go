package bigint

// Add returns a + b.
func (a Int) Add(b Int) Int {
	am, bm := a.mag(), b.mag()
	if a.neg == b.neg {
		return Int{limbs: addAbs(am, bm), neg: a.neg}.normalize()
	}
	switch cmpAbs(am, bm) {
	case 0:
		return Zero()
	case 1:
		return Int{limbs: subAbs(am, bm), neg: a.neg}.normalize()
	default:
		return Int{limbs: subAbs(bm, am), neg: b.neg}.normalize()
	}
}

// Sub returns a - b.
func (a Int) Sub(b Int) Int {
	return a.Add(b.Neg())
}

// Mul returns a * b using schoolbook multiplication.
func (a Int) Mul(b Int) Int {
	if a.IsZero() || b.IsZero() {
		return Zero()
	}
	return Int{limbs: mulAbs(a.mag(), b.mag()), neg: a.neg != b.neg}.normalize()
}

// DivMod returns the floored quotient and modulus of a and b: the quotient
// rounds toward negative infinity and the modulus takes the sign of b.
// Division by zero yields (0, 0).
func (a Int) DivMod(b Int) (Int, Int) {
	if b.IsZero() {
		return Zero(), Zero()
	}
	qm, rm := divmodAbs(a.mag(), b.mag())
	q := Int{limbs: qm, neg: a.neg != b.neg}.normalize()
	r := Int{limbs: rm, neg: a.neg}.normalize()
	if !r.IsZero() && a.neg != b.neg {
		q = q.Sub(One())
		r = r.Add(b)
	}
	return q, r
}

// FloorDiv returns a // b (0 when b is zero).
func (a Int) FloorDiv(b Int) Int {
	q, _ := a.DivMod(b)
	return q
}

// FloorMod returns a % b with the sign of b (0 when b is zero).
func (a Int) FloorMod(b Int) Int {
	_, r := a.DivMod(b)
	return r
}

func cmpAbs(a, b []uint32) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func addAbs(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]uint32, len(a)+1)
	var carry uint64
	for i := range a {
		sum := uint64(a[i]) + carry
		if i < len(b) {
			sum += uint64(b[i])
		}
		out[i] = uint32(sum % base)
		carry = sum / base
	}
	out[len(a)] = uint32(carry)
	return trim(out)
}

// subAbs requires |a| >= |b|.
func subAbs(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	var borrow int64
	for i := range a {
		diff := int64(a[i]) - borrow
		if i < len(b) {
			diff -= int64(b[i])
		}
		if diff < 0 {
			diff += base
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint32(diff)
	}
	return trim(out)
}

func mulAbs(a, b []uint32) []uint32 {
	out := make([]uint32, len(a)+len(b))
	for i := range a {
		if a[i] == 0 {
			continue
		}
		var carry uint64
		for j := range b {
			cur := uint64(out[i+j]) + uint64(a[i])*uint64(b[j]) + carry
			out[i+j] = uint32(cur % base)
			carry = cur / base
		}
		for k := i + len(b); carry > 0; k++ {
			cur := uint64(out[k]) + carry
			out[k] = uint32(cur % base)
			carry = cur / base
		}
	}
	return trim(out)
}

func mulSmall(a []uint32, m uint32) []uint32 {
	out := make([]uint32, len(a)+1)
	var carry uint64
	for i := range a {
		cur := uint64(a[i])*uint64(m) + carry
		out[i] = uint32(cur % base)
		carry = cur / base
	}
	out[len(a)] = uint32(carry)
	return out
}

// divSmall divides a by a single limb d > 0.
func divSmall(a []uint32, d uint32) ([]uint32, uint32) {
	q := make([]uint32, len(a))
	var rem uint64
	for i := len(a) - 1; i >= 0; i-- {
		cur := rem*base + uint64(a[i])
		q[i] = uint32(cur / uint64(d))
		rem = cur % uint64(d)
	}
	return trim(q), uint32(rem)
}

// divmodAbs computes |a| / |b| and |a| % |b| for b != 0 with Knuth's
// algorithm D: both operands are scaled so the divisor's leading limb is at
// least base/2, each quotient limb is estimated from the top two remainder
// limbs, and the estimate is corrected downwards at most twice before the
// multiply-subtract step.
func divmodAbs(a, b []uint32) ([]uint32, []uint32) {
	if cmpAbs(a, b) < 0 {
		r := make([]uint32, len(a))
		copy(r, a)
		return []uint32{0}, r
	}
	if len(b) == 1 {
		q, r := divSmall(a, b[0])
		return q, []uint32{r}
	}

	norm := uint32(base / (uint64(b[len(b)-1]) + 1))
	u := mulSmall(a, norm) // len(a)+1 limbs; the top limb is the extra slot
	v := trim(mulSmall(b, norm))
	n := len(v)
	m := len(u) - n
	q := make([]uint32, m)
	vTop := uint64(v[n-1])
	vNext := uint64(v[n-2])

	for j := m - 1; j >= 0; j-- {
		num := uint64(u[j+n])*base + uint64(u[j+n-1])
		qhat := num / vTop
		rhat := num % vTop
		for qhat >= base || qhat*vNext > rhat*base+uint64(u[j+n-2]) {
			qhat--
			rhat += vTop
			if rhat >= base {
				break
			}
		}

		var borrow, carry int64
		for i := 0; i < n; i++ {
			p := int64(qhat)*int64(v[i]) + carry
			carry = p / base
			t := int64(u[i+j]) - p%base - borrow
			if t < 0 {
				t += base
				borrow = 1
			} else {
				borrow = 0
			}
			u[i+j] = uint32(t)
		}
		top := int64(u[j+n]) - carry - borrow
		for top < 0 {
			// The estimate was too large: add the divisor back.
			qhat--
			var c uint64
			for i := 0; i < n; i++ {
				sum := uint64(u[i+j]) + uint64(v[i]) + c
				u[i+j] = uint32(sum % base)
				c = sum / base
			}
			top += int64(c)
		}
		u[j+n] = uint32(top)
		q[j] = uint32(qhat)
	}

	r, _ := divSmall(trim(u[:n]), norm)
	return trim(q), r
}
