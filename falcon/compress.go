package falcon

// Signature coefficients are compressed one at a time: a sign bit, the
// seven low magnitude bits in binary, then the remaining magnitude in
// unary closed by a set bit. The stream is padded with zero bits to a
// fixed byte budget.

// maxHighRun is the unary run length at which decompression rejects the
// stream. Runs of 95 or more encode magnitudes of at least 95*128, which
// no reduced coefficient reaches.
const maxHighRun = 95

// compress encodes v into exactly budget bytes. It reports false when the
// unary tails overflow the budget, which signing treats as a rejection.
func compress(v []int16, budget int) ([]byte, bool) {
	w := newBitWriter(budget)
	for _, c := range v {
		sign := uint32(0)
		mag := uint32(c)
		if c < 0 {
			sign = 1
			mag = uint32(-c)
		}
		if !w.writeBits(sign, 1) || !w.writeBits(mag&127, 7) {
			return nil, false
		}
		for j := uint32(0); j < mag>>7; j++ {
			if !w.writeBits(0, 1) {
				return nil, false
			}
		}
		if !w.writeBits(1, 1) {
			return nil, false
		}
	}
	return w.buf, true
}

// decompress recovers n coefficients from x. It rejects truncated
// streams, unary runs of maxHighRun or more, a negative zero, and any set
// bit left after the last coefficient.
func decompress(x []byte, n int) ([]int16, bool) {
	r := &bitReader{buf: x}
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		sign, ok := r.readBits(1)
		if !ok {
			return nil, false
		}
		low, ok := r.readBits(7)
		if !ok {
			return nil, false
		}
		high := uint32(0)
		for {
			b, ok := r.readBits(1)
			if !ok {
				return nil, false
			}
			if b == 1 {
				break
			}
			if high++; high >= maxHighRun {
				return nil, false
			}
		}
		mag := high<<7 | low
		if mag == 0 && sign == 1 {
			return nil, false
		}
		if sign == 1 {
			out[i] = -int16(mag)
		} else {
			out[i] = int16(mag)
		}
	}
	if !r.remainingZero() {
		return nil, false
	}
	return out, true
}
