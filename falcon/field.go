package falcon

// Scalar arithmetic in Z_q. Products of two reduced values fit comfortably
// in 32 bits (12288^2 < 2^31), so everything below stays in uint32.

func modAdd(a, b uint32) uint32 {
	s := a + b
	if s >= Q {
		s -= Q
	}
	return s
}

func modSub(a, b uint32) uint32 {
	if a >= b {
		return a - b
	}
	return a + Q - b
}

func modMul(a, b uint32) uint32 {
	return uint32((uint64(a) * uint64(b)) % Q)
}

// modInv returns a^-1 mod q via the extended Euclidean algorithm.
// a must be nonzero mod q.
func modInv(a uint32) uint32 {
	t, newT := int64(0), int64(1)
	r, newR := int64(Q), int64(a%Q)
	for newR != 0 {
		quot := r / newR
		t, newT = newT, t-quot*newT
		r, newR = newR, r-quot*newR
	}
	if t < 0 {
		t += Q
	}
	return uint32(t)
}

// centerCoeff maps a canonical residue in [0, q) to (-q/2, q/2].
func centerCoeff(v uint32) int32 {
	if v > Q/2 {
		return int32(v) - Q
	}
	return int32(v)
}

// decenterCoeff maps a centered coefficient back to [0, q).
func decenterCoeff(v int32) uint32 {
	v %= Q
	if v < 0 {
		v += Q
	}
	return uint32(v)
}
