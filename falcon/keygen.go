package falcon

import (
	"errors"
	"math"
	"math/cmplx"
	"os"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// gsNormBound is the squared Gram-Schmidt quality threshold 1.17^2 * q.
// A trapdoor whose orthogonalized basis exceeds it is discarded.
const gsNormBound = 1.17 * 1.17 * Q

// PublicKey is the verification half of a key pair, the polynomial
// h = g * f^-1 mod q.
type PublicKey struct {
	par Params
	h   []uint16
}

// Params returns the parameter set the key was generated under.
func (pk *PublicKey) Params() Params { return pk.par }

// Coefficients returns a copy of h in [0, q).
func (pk *PublicKey) Coefficients() []uint16 {
	return append([]uint16(nil), pk.h...)
}

// SecretKey is the signing half of a key pair. Besides the four trapdoor
// polynomials it carries the Fourier-domain basis rows and the sampling
// tree, both fixed at construction and shared by every signature.
type SecretKey struct {
	par  Params
	f    []int16
	g    []int16
	bigF []int16
	bigG []int16

	b0   [4][]complex128
	tree *falconTree
}

// Params returns the parameter set the key was generated under.
func (sk *SecretKey) Params() Params { return sk.par }

// Basis returns copies of the four trapdoor polynomials f, g, F, G.
func (sk *SecretKey) Basis() (f, g, F, G []int16) {
	f = append([]int16(nil), sk.f...)
	g = append([]int16(nil), sk.g...)
	F = append([]int16(nil), sk.bigF...)
	G = append([]int16(nil), sk.bigG...)
	return
}

// KeygenOpts controls the trapdoor generation loop.
type KeygenOpts struct {
	MaxTrials int // retry budget for the whole loop (defaults to 64)
}

// Keygen draws NTRU trapdoors from prng until one passes every quality
// gate, then assembles the key pair. The gates, in order: coefficients of
// f and g inside their encoding width, Gram-Schmidt norm below gsNormBound,
// f invertible mod q, and the NTRU equation solvable with F, G inside
// their encoding width. Exhausting the budget returns
// ErrKeyGenerationFailed.
func Keygen(par Params, prng utils.PRNG, opts KeygenOpts) (*PublicKey, *SecretKey, error) {
	if err := par.validate(); err != nil {
		return nil, nil, err
	}
	if opts.MaxTrials == 0 {
		opts.MaxTrials = 64
	}
	for trial := 0; trial < opts.MaxTrials; trial++ {
		f, err := genPoly(prng, par.N)
		if err != nil {
			return nil, nil, err
		}
		g, err := genPoly(prng, par.N)
		if err != nil {
			return nil, nil, err
		}
		lim := int16(1<<(par.WidthFG-1)) - 1
		if maxAbs(f) > lim || maxAbs(g) > lim {
			dbg(os.Stderr, "[keygen] trial %d: f/g outside %d-bit width\n", trial, par.WidthFG)
			continue
		}
		if gs := gsNorm(f, g); gs > gsNormBound {
			dbg(os.Stderr, "[keygen] trial %d: gs norm %.1f over bound\n", trial, gs)
			continue
		}
		fInv, err := InvertModQ(DecenterToModQ(f))
		if err != nil {
			if errors.Is(err, ErrNotInvertible) {
				dbg(os.Stderr, "[keygen] trial %d: f not invertible\n", trial)
				continue
			}
			return nil, nil, err
		}
		bigF, bigG, err := solveTrapdoor(f, g)
		if err != nil {
			if errors.Is(err, errSolveRetry) {
				dbg(os.Stderr, "[keygen] trial %d: ntru solve failed\n", trial)
				continue
			}
			return nil, nil, err
		}
		h, err := Convolve(DecenterToModQ(g), fInv)
		if err != nil {
			return nil, nil, err
		}
		sk, err := newSecretKey(par, f, g, bigF, bigG)
		if err != nil {
			return nil, nil, err
		}
		pk := &PublicKey{par: par, h: h}
		dbg(os.Stderr, "[keygen] done after %d trial(s)\n", trial+1)
		return pk, sk, nil
	}
	return nil, nil, ErrKeyGenerationFailed
}

// solveTrapdoor runs the tower solver and brings F, G back to int16,
// rejecting the trial when a coefficient falls outside the 8-bit secret
// key encoding range.
func solveTrapdoor(f, g []int16) ([]int16, []int16, error) {
	bF, bG, err := solveNTRU(f, g)
	if err != nil {
		return nil, nil, err
	}
	F := make([]int16, len(f))
	G := make([]int16, len(f))
	for i := range F {
		cf := bF[i].Int64()
		cg := bG[i].Int64()
		if !bF[i].IsInt64() || !bG[i].IsInt64() || cf < -127 || cf > 127 || cg < -127 || cg > 127 {
			return nil, nil, errSolveRetry
		}
		F[i] = int16(cf)
		G[i] = int16(cg)
	}
	return F, G, nil
}

// newSecretKey precomputes the signing state for a validated trapdoor:
// the Fourier rows of the basis B0 = [[g, -f], [G, -F]], its Gram matrix,
// and the normalized ffLDL tree.
func newSecretKey(par Params, f, g, bigF, bigG []int16) (*SecretKey, error) {
	if err := par.validate(); err != nil {
		return nil, err
	}
	sk := &SecretKey{par: par, f: f, g: g, bigF: bigF, bigG: bigG}
	a := fftInt16(g)
	b := fftInt16(negPoly(f))
	c := fftInt16(bigG)
	d := fftInt16(negPoly(bigF))
	sk.b0 = [4][]complex128{a, b, c, d}

	n := par.N
	g00 := make([]complex128, n)
	g01 := make([]complex128, n)
	g11 := make([]complex128, n)
	for i := 0; i < n; i++ {
		g00[i] = a[i]*cmplx.Conj(a[i]) + b[i]*cmplx.Conj(b[i])
		g01[i] = a[i]*cmplx.Conj(c[i]) + b[i]*cmplx.Conj(d[i])
		g11[i] = c[i]*cmplx.Conj(c[i]) + d[i]*cmplx.Conj(d[i])
	}
	sk.tree = newFalconTree(g00, g01, g11, par.Sigma)
	return sk, nil
}

// gsNorm returns the squared Gram-Schmidt norm of the basis spanned by
// (f, g), the larger of |(f, g)|^2 and |(qF~, qG~)|^2. The second branch
// is evaluated in the Fourier domain, where by Parseval it collapses to
// q^2/n times the sum of the inverse row energies.
func gsNorm(f, g []int16) float64 {
	first := float64(sqNorm(f) + sqNorm(g))
	fHat := fftInt16(f)
	gHat := fftInt16(g)
	sum := 0.0
	for i := range fHat {
		e := real(fHat[i])*real(fHat[i]) + imag(fHat[i])*imag(fHat[i]) +
			real(gHat[i])*real(gHat[i]) + imag(gHat[i])*imag(gHat[i])
		sum += 1 / e
	}
	second := float64(Q) * float64(Q) * sum / float64(len(f))
	return math.Max(first, second)
}

func maxAbs(a []int16) int16 {
	var m int16
	for _, v := range a {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}
