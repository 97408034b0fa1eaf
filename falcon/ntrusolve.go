package falcon

import (
	"errors"
	"math/big"
	"math/cmplx"
)

// errSolveRetry reports one failed NTRU trial. The caller discards the
// current f, g pair and draws a fresh one.
var errSolveRetry = errors.New("ntru solve: no solution for this trial")

// maxBabaiRounds bounds the reduction loop at one tower level. Convergence
// removes about 53 bits per round and the deepest levels start several
// thousand bits above target, so the bound is far from the typical count.
const maxBabaiRounds = 1000

var bigQ = big.NewInt(Q)

// solveNTRU computes integer polynomials F, G satisfying
//
//	f*G - g*F = q  in  Z[x]/(x^n + 1)
//
// by descending the field-norm tower to Z, solving a scalar Bezout identity
// there, and lifting the solution back up with a Babai reduction at every
// level. A trial can fail, either because gcd(fieldNorm(f), fieldNorm(g))
// is not 1 at the bottom or because the reduction stalls.
func solveNTRU(f, g []int16) ([]*big.Int, []*big.Int, error) {
	return solveTower(int16ToBigPoly(f), int16ToBigPoly(g))
}

func solveTower(f, g []*big.Int) ([]*big.Int, []*big.Int, error) {
	if len(f) == 1 {
		d := new(big.Int)
		u := new(big.Int)
		v := new(big.Int)
		d.GCD(u, v, f[0], g[0])
		if d.Cmp(big.NewInt(1)) != 0 {
			return nil, nil, errSolveRetry
		}
		v.Mul(v, bigQ)
		v.Neg(v)
		u.Mul(u, bigQ)
		return []*big.Int{v}, []*big.Int{u}, nil
	}
	Fp, Gp, err := solveTower(fieldNormBig(f), fieldNormBig(g))
	if err != nil {
		return nil, nil, err
	}
	F := mulNegacyclicBig(liftBig(Fp), galoisConjugateBig(g))
	G := mulNegacyclicBig(liftBig(Gp), galoisConjugateBig(f))
	if err := babaiReduce(f, g, F, G); err != nil {
		return nil, nil, err
	}
	return F, G, nil
}

// babaiReduce shrinks F, G in place against the lattice spanned by f, g.
// Each round forms the Fourier-domain quotient
//
//	k = round((F*adj(f) + G*adj(g)) / (f*adj(f) + g*adj(g)))
//
// and subtracts k*f from F and k*g from G. Operands are windowed to their
// top 53 bits before the float transform, so the quotient only sees the
// leading mass of each coefficient; the subtraction itself is exact.
func babaiReduce(f, g, F, G []*big.Int) error {
	n := len(f)
	size := maxByteSize(f, g)
	fHat := fftFloats(shiftToFloats(f, size))
	gHat := fftFloats(shiftToFloats(g, size))
	den := make([]complex128, n)
	for i := range den {
		den[i] = fHat[i]*cmplx.Conj(fHat[i]) + gHat[i]*cmplx.Conj(gHat[i])
	}
	num := make([]complex128, n)
	k := make([]int64, n)
	for round := 0; round < maxBabaiRounds; round++ {
		Size := maxByteSize(F, G)
		if Size < size {
			return nil
		}
		FHat := fftFloats(shiftToFloats(F, Size))
		GHat := fftFloats(shiftToFloats(G, Size))
		for i := range num {
			num[i] = (FHat[i]*cmplx.Conj(fHat[i]) + GHat[i]*cmplx.Conj(gHat[i])) / den[i]
		}
		ifftRoundInto(num, k)
		zero := true
		for _, v := range k {
			if v != 0 {
				zero = false
				break
			}
		}
		if zero {
			return nil
		}
		kb := int64ToBigPoly(k)
		fk := mulNegacyclicBig(f, kb)
		gk := mulNegacyclicBig(g, kb)
		sh := uint(Size - size)
		for i := 0; i < n; i++ {
			F[i].Sub(F[i], fk[i].Lsh(fk[i], sh))
			G[i].Sub(G[i], gk[i].Lsh(gk[i], sh))
		}
	}
	return errSolveRetry
}
