package falcon

import "math/big"

// The NTRU equation is solved over towers of rings Z[x]/(x^n + 1) with n
// halving at each level. Coefficients grow well past 64 bits before the
// Babai reduction brings them back down, so the tower works on big.Int
// polynomials throughout.

func int16ToBigPoly(f []int16) []*big.Int {
	out := make([]*big.Int, len(f))
	for i, c := range f {
		out[i] = big.NewInt(int64(c))
	}
	return out
}

func int64ToBigPoly(f []int64) []*big.Int {
	out := make([]*big.Int, len(f))
	for i, c := range f {
		out[i] = big.NewInt(c)
	}
	return out
}

func newBigPoly(n int) []*big.Int {
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int)
	}
	return out
}

// mulNegacyclicBig returns a*b in Z[x]/(x^n + 1) by schoolbook convolution.
func mulNegacyclicBig(a, b []*big.Int) []*big.Int {
	n := len(a)
	out := newBigPoly(n)
	t := new(big.Int)
	for i := 0; i < n; i++ {
		if a[i].Sign() == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if b[j].Sign() == 0 {
				continue
			}
			t.Mul(a[i], b[j])
			if k := i + j; k < n {
				out[k].Add(out[k], t)
			} else {
				out[k-n].Sub(out[k-n], t)
			}
		}
	}
	return out
}

// galoisConjugateBig maps f(x) to f(-x), negating the odd coefficients.
func galoisConjugateBig(a []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a))
	for i, c := range a {
		if i&1 == 1 {
			out[i] = new(big.Int).Neg(c)
		} else {
			out[i] = new(big.Int).Set(c)
		}
	}
	return out
}

// fieldNormBig projects f from Z[x]/(x^n + 1) down to Z[x]/(x^(n/2) + 1)
// as fe^2 - x*fo^2, where fe and fo hold the even and odd coefficients.
func fieldNormBig(a []*big.Int) []*big.Int {
	n2 := len(a) / 2
	fe := make([]*big.Int, n2)
	fo := make([]*big.Int, n2)
	for i := 0; i < n2; i++ {
		fe[i] = a[2*i]
		fo[i] = a[2*i+1]
	}
	res := mulNegacyclicBig(fe, fe)
	fo2 := mulNegacyclicBig(fo, fo)
	for i := 0; i < n2-1; i++ {
		res[i+1].Sub(res[i+1], fo2[i])
	}
	res[0].Add(res[0], fo2[n2-1])
	return res
}

// liftBig embeds f(x) from Z[x]/(x^n + 1) into Z[x]/(x^2n + 1) as f(x^2).
func liftBig(a []*big.Int) []*big.Int {
	out := newBigPoly(2 * len(a))
	for i, c := range a {
		out[2*i].Set(c)
	}
	return out
}

// byteSize reports the size of |a| rounded up to whole bytes, in bits.
func byteSize(a *big.Int) int {
	return (a.BitLen() + 7) / 8 * 8
}

// maxByteSize returns the largest byteSize across all coefficients of the
// given polynomials, with a floor of 53 so that shifted values always fit
// in a float64 mantissa.
func maxByteSize(polys ...[]*big.Int) int {
	size := 53
	for _, p := range polys {
		for _, c := range p {
			if s := byteSize(c); s > size {
				size = s
			}
		}
	}
	return size
}

// shiftToFloats right-shifts every coefficient by size-53 and returns the
// results as float64 values. The shift keeps at most 53 significant bits,
// so the conversion through Int64 is exact.
func shiftToFloats(a []*big.Int, size int) []float64 {
	out := make([]float64, len(a))
	t := new(big.Int)
	for i, c := range a {
		t.Rsh(c, uint(size-53))
		out[i] = float64(t.Int64())
	}
	return out
}
