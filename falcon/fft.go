package falcon

import (
	"math"
	"math/cmplx"
)

// Fourier-domain arithmetic for the sampler. A polynomial of degree < n is
// represented by its n values at the complex roots of x^n + 1, ordered so
// that consecutive pairs share a square: w[2i+1] = -w[2i] and w[2i]^2 is the
// i-th root of the half-size table. That ordering is what makes splitFFT and
// mergeFFT single passes, and it is the only ordering assumed anywhere in
// this file.
//
// Everything runs in complex128. The deepest product chains here are the
// depth log2(n) <= 10 split/merge recursions plus one Hadamard product, so
// with 53 mantissa bits the relative error stays far below the 2^-40
// headroom the sampler widths leave; coefficients recovered through
// ifft round exactly for every integer polynomial this package produces.

const maxFFTSize = 1024

var fftRoots = make(map[int][]complex128)

func init() {
	angles := []float64{math.Pi / 2, -math.Pi / 2}
	fftRoots[2] = rootsFromAngles(angles)
	for n := 4; n <= maxFFTSize; n *= 2 {
		next := make([]float64, n)
		for i, th := range angles {
			next[2*i] = th / 2
			next[2*i+1] = th/2 + math.Pi
		}
		angles = next
		fftRoots[n] = rootsFromAngles(angles)
	}
}

func rootsFromAngles(angles []float64) []complex128 {
	out := make([]complex128, len(angles))
	for i, th := range angles {
		out[i] = cmplx.Rect(1, th)
	}
	return out
}

// fft maps coefficients to Fourier values. len(f) must be a power of two
// not exceeding maxFFTSize.
func fft(f []complex128) []complex128 {
	n := len(f)
	if n == 1 {
		return []complex128{f[0]}
	}
	if n == 2 {
		return []complex128{f[0] + 1i*f[1], f[0] - 1i*f[1]}
	}
	half := n / 2
	f0 := make([]complex128, half)
	f1 := make([]complex128, half)
	for i := 0; i < half; i++ {
		f0[i] = f[2*i]
		f1[i] = f[2*i+1]
	}
	out := make([]complex128, n)
	mergeFFTInto(fft(f0), fft(f1), out)
	return out
}

// ifft maps Fourier values back to coefficients. For Hermitian inputs the
// imaginary parts of the result are rounding noise.
func ifft(v []complex128) []complex128 {
	n := len(v)
	if n == 1 {
		return []complex128{v[0]}
	}
	if n == 2 {
		return []complex128{0.5 * (v[0] + v[1]), -0.5i * (v[0] - v[1])}
	}
	v0 := make([]complex128, n/2)
	v1 := make([]complex128, n/2)
	splitFFTInto(v, v0, v1)
	f0 := ifft(v0)
	f1 := ifft(v1)
	out := make([]complex128, n)
	for i := 0; i < n/2; i++ {
		out[2*i] = f0[i]
		out[2*i+1] = f1[i]
	}
	return out
}

// splitFFTInto writes the Fourier vectors of the even and odd halves of v.
func splitFFTInto(v, f0, f1 []complex128) {
	w := fftRoots[len(v)]
	for i := range f0 {
		f0[i] = 0.5 * (v[2*i] + v[2*i+1])
		f1[i] = 0.5 * (v[2*i] - v[2*i+1]) * cmplx.Conj(w[2*i])
	}
}

// mergeFFTInto inverts splitFFTInto.
func mergeFFTInto(f0, f1, out []complex128) {
	w := fftRoots[len(out)]
	for i := range f0 {
		out[2*i] = f0[i] + w[2*i]*f1[i]
		out[2*i+1] = f0[i] - w[2*i]*f1[i]
	}
}

func splitFFT(v []complex128) ([]complex128, []complex128) {
	f0 := make([]complex128, len(v)/2)
	f1 := make([]complex128, len(v)/2)
	splitFFTInto(v, f0, f1)
	return f0, f1
}

func mergeFFT(f0, f1 []complex128) []complex128 {
	out := make([]complex128, 2*len(f0))
	mergeFFTInto(f0, f1, out)
	return out
}

// Pointwise helpers. out may alias either operand.

func mulFFT(a, b, out []complex128) {
	for i := range out {
		out[i] = a[i] * b[i]
	}
}

func addFFT(a, b, out []complex128) {
	for i := range out {
		out[i] = a[i] + b[i]
	}
}

func subFFT(a, b, out []complex128) {
	for i := range out {
		out[i] = a[i] - b[i]
	}
}

func divFFT(a, b, out []complex128) {
	for i := range out {
		out[i] = a[i] / b[i]
	}
}

// adjFFT is the Hermitian adjoint f(x) -> f(1/x) of the underlying real
// polynomial, a pointwise conjugate on the unit circle.
func adjFFT(a, out []complex128) {
	for i := range out {
		out[i] = cmplx.Conj(a[i])
	}
}

// fftInt16 embeds integer coefficients and transforms them.
func fftInt16(a []int16) []complex128 {
	f := make([]complex128, len(a))
	for i, v := range a {
		f[i] = complex(float64(v), 0)
	}
	return fft(f)
}

// fftFloats embeds real coefficients and transforms them.
func fftFloats(a []float64) []complex128 {
	f := make([]complex128, len(a))
	for i, v := range a {
		f[i] = complex(v, 0)
	}
	return fft(f)
}

// ifftRoundInto inverts the transform and rounds each coefficient to the
// nearest integer, ties away from zero.
func ifftRoundInto(v []complex128, out []int64) {
	c := ifft(v)
	for i := range out {
		out[i] = roundHalfAway(real(c[i]))
	}
}
