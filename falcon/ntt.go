package falcon

import (
	"fmt"
	"os"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// buildRing constructs the Lattigo ring Z_q[x]/(x^n + 1). q = 1 mod 2n holds
// for both presets, so the ring is NTT-enabled.
func buildRing(n int) (*ring.Ring, error) {
	r, err := ring.NewRing(n, []uint64{Q})
	if err != nil {
		return nil, fmt.Errorf("falcon: build ring: %w", err)
	}
	return r, nil
}

func liftToRing(r *ring.Ring, a []uint16) *ring.Poly {
	p := r.NewPoly()
	cs := p.Coeffs[0]
	for i, v := range a {
		cs[i] = uint64(v)
	}
	return p
}

func readRing(p *ring.Poly, out []uint16) {
	cs := p.Coeffs[0]
	for i := range out {
		out[i] = uint16(cs[i])
	}
}

// Convolve returns a*b mod (x^n + 1, q) computed through the NTT domain.
// Inputs are canonical residues in [0, q) and must share one length.
func Convolve(a, b []uint16) ([]uint16, error) {
	if len(a) == 0 || len(a) != len(b) {
		return nil, fmt.Errorf("falcon: convolve: mismatched lengths %d and %d", len(a), len(b))
	}
	r, err := buildRing(len(a))
	if err != nil {
		return nil, err
	}
	return convolveRing(r, a, b), nil
}

func convolveRing(r *ring.Ring, a, b []uint16) []uint16 {
	dbg(os.Stderr, "[ntt] convolve n=%d\n", len(a))
	pa := liftToRing(r, a)
	pb := liftToRing(r, b)
	r.MForm(pa, pa)
	r.MForm(pb, pb)
	r.NTT(pa, pa)
	r.NTT(pb, pb)
	out := r.NewPoly()
	r.MulCoeffsMontgomery(pa, pb, out)
	r.InvNTT(out, out)
	r.InvMForm(out, out)
	res := make([]uint16, len(a))
	readRing(out, res)
	return res
}
