package falcon

// Integer polynomials are plain coefficient slices of length N. Small
// (secret, signature) polynomials carry centered int16 coefficients;
// canonical mod-q polynomials carry uint16 residues in [0, q).

// CenterModQ maps canonical residues in [0, q) to the symmetric
// interval (-q/2, q/2].
func CenterModQ(a []uint16) []int16 {
	out := make([]int16, len(a))
	for i, v := range a {
		out[i] = int16(centerCoeff(uint32(v)))
	}
	return out
}

// DecenterToModQ maps centered coefficients back to [0, q).
func DecenterToModQ(a []int16) []uint16 {
	out := make([]uint16, len(a))
	for i, v := range a {
		out[i] = uint16(decenterCoeff(int32(v)))
	}
	return out
}

// AddModQ returns a + b with coefficients reduced to [0, q).
func AddModQ(a, b []uint16) []uint16 {
	out := make([]uint16, len(a))
	for i := range out {
		out[i] = uint16(modAdd(uint32(a[i]), uint32(b[i])))
	}
	return out
}

// SubModQ returns a - b with coefficients reduced to [0, q).
func SubModQ(a, b []uint16) []uint16 {
	out := make([]uint16, len(a))
	for i := range out {
		out[i] = uint16(modSub(uint32(a[i]), uint32(b[i])))
	}
	return out
}

// negPoly returns -a over the integers.
func negPoly(a []int16) []int16 {
	out := make([]int16, len(a))
	for i, v := range a {
		out[i] = -v
	}
	return out
}

// sqNorm returns the squared Euclidean norm of the coefficient vector.
func sqNorm(a []int16) int64 {
	var s int64
	for _, v := range a {
		s += int64(v) * int64(v)
	}
	return s
}

// mulNegacyclicSmall is the schoolbook product a*b mod (x^n + 1) over the
// integers, used by tests and by the decode-time identity checks where the
// operands are small enough for int64 accumulators.
func mulNegacyclicSmall(a, b []int16) []int64 {
	n := len(a)
	out := make([]int64, n)
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			k := i + j
			p := int64(ai) * int64(bj)
			if k < n {
				out[k] += p
			} else {
				out[k-n] -= p
			}
		}
	}
	return out
}
