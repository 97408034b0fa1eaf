package falcon

// InvertModQ returns f^-1 in Z_q[x]/(x^n + 1) via the extended Euclidean
// algorithm against x^n + 1, or ErrNotInvertible when f is not a unit.
// Input and output are canonical residues in [0, q).
func InvertModQ(f []uint16) ([]uint16, error) {
	n := len(f)

	// Remainder pair (r0, r1) starts as (x^n + 1, f); s tracks the f
	// cofactor so that s_i * f = r_i modulo x^n + 1 throughout.
	r0 := make([]uint32, n+1)
	r0[0], r0[n] = 1, 1
	r1 := make([]uint32, n+1)
	nonzero := false
	for i, v := range f {
		r1[i] = uint32(v) % Q
		if r1[i] != 0 {
			nonzero = true
		}
	}
	if !nonzero {
		return nil, ErrNotInvertible
	}
	s0 := make([]uint32, n+1)
	s1 := make([]uint32, n+1)
	s1[0] = 1

	for {
		d1 := polyDeg(r1)
		if d1 < 0 {
			break
		}
		leadInv := modInv(r1[d1])
		for d0 := polyDeg(r0); d0 >= d1; d0 = polyDeg(r0) {
			c := modMul(r0[d0], leadInv)
			k := d0 - d1
			for i := 0; i <= d1; i++ {
				r0[i+k] = modSub(r0[i+k], modMul(c, r1[i]))
			}
			for i := 0; i+k <= n; i++ {
				s0[i+k] = modSub(s0[i+k], modMul(c, s1[i]))
			}
		}
		r0, r1 = r1, r0
		s0, s1 = s1, s0
	}

	d := polyDeg(r0)
	if d != 0 {
		return nil, ErrNotInvertible
	}
	scale := modInv(r0[0])
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(modMul(s0[i], scale))
	}
	return out, nil
}

// polyDeg returns the degree of p, or -1 for the zero polynomial.
func polyDeg(p []uint32) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] != 0 {
			return i
		}
	}
	return -1
}
