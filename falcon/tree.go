package falcon

import (
	"math"
	"math/cmplx"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// The signing Gram matrix G = B*B^adj is factored once per key into a
// binary tree of LDL decompositions. Internal nodes store the Fourier
// vector l10 of their level; leaves store, after normalization, the width
// handed to the integer sampler. The whole tree lives in one flat
// complex128 arena indexed by (offset, size), so signing allocates nothing
// on the tree side.

// treeSize returns the arena footprint of a subtree over vectors of
// length m. Leaves take two slots.
func treeSize(m int) int {
	if m == 1 {
		return 2
	}
	return m + 2*treeSize(m/2)
}

type falconTree struct {
	n    int
	data []complex128
}

// newFalconTree runs the ffLDL decomposition of the Gram matrix
// [[g00, g01], [adj(g01), g11]] and normalizes the leaves against sigma.
func newFalconTree(g00, g01, g11 []complex128, sigma float64) *falconTree {
	n := len(g00)
	t := &falconTree{n: n, data: make([]complex128, treeSize(n))}
	t.build(g00, g01, g11, 0)
	t.normalize(0, n, sigma)
	return t
}

// build factors one node. The level vector l10 = adj(g01)/g00 lands at
// data[off:off+m]; D00 = g00 and D11 = g11 - |l10|^2 g00 are split and
// passed to the children, which is where the recursion of the Fourier
// domain happens. An m=2 node writes its two length-2 D vectors straight
// into the leaf slots.
func (t *falconTree) build(g00, g01, g11 []complex128, off int) {
	m := len(g00)
	ell := t.data[off : off+m]
	d11 := make([]complex128, m)
	for i := range ell {
		l := cmplx.Conj(g01[i]) / g00[i]
		ell[i] = l
		d11[i] = g11[i] - l*cmplx.Conj(l)*g00[i]
	}
	left := off + m
	right := left + treeSize(m/2)
	if m == 2 {
		copy(t.data[left:left+2], g00)
		copy(t.data[right:right+2], d11)
		return
	}
	s0, s1 := splitFFT(g00)
	t.build(s0, s1, s0, left)
	s0, s1 = splitFFT(d11)
	t.build(s0, s1, s0, right)
}

// normalize rewrites every leaf from its variance value d to the sampler
// width sigma/sqrt(d). The second leaf slot is cleared.
func (t *falconTree) normalize(off, m int, sigma float64) {
	if m == 1 {
		t.data[off] = complex(sigma/math.Sqrt(real(t.data[off])), 0)
		t.data[off+1] = 0
		return
	}
	left := off + m
	t.normalize(left, m/2, sigma)
	t.normalize(left+treeSize(m/2), m/2, sigma)
}

// levelScratch holds the working vectors of one recursion depth: the two
// split halves, the two child outputs, and the adjusted t0.
type levelScratch struct {
	h0, h1 []complex128
	r0, r1 []complex128
	t0b    []complex128
}

// ffSampler walks a falconTree and draws a lattice point close to a target
// pair (t0, t1). One instance is reusable across signatures; the per-level
// scratch keeps the recursion allocation-free.
type ffSampler struct {
	tree   *falconTree
	prng   utils.PRNG
	sigMin float64
	levels []levelScratch
}

func newFFSampler(tree *falconTree, sigMin float64) *ffSampler {
	logn := 0
	for m := tree.n; m > 1; m /= 2 {
		logn++
	}
	levels := make([]levelScratch, logn+1)
	for lg := 1; lg <= logn; lg++ {
		m := 1 << lg
		levels[lg] = levelScratch{
			h0:  make([]complex128, m/2),
			h1:  make([]complex128, m/2),
			r0:  make([]complex128, m/2),
			r1:  make([]complex128, m/2),
			t0b: make([]complex128, m),
		}
	}
	return &ffSampler{tree: tree, levels: levels}
}

// sample writes into z0, z1 the Fourier vectors of an integer lattice
// point near (t0, t1). All four vectors have length tree.n. The traversal
// resolves t1 before t0, feeding the residual of the first draw into the
// second target.
func (s *ffSampler) sample(t0, t1, z0, z1 []complex128) error {
	return s.walk(t0, t1, z0, z1, 0)
}

func (s *ffSampler) walk(t0, t1, z0, z1 []complex128, off int) error {
	m := len(t0)
	if m == 1 {
		sig := real(s.tree.data[off])
		v0, err := samplerZ(s.prng, real(t0[0]), sig, s.sigMin)
		if err != nil {
			return err
		}
		v1, err := samplerZ(s.prng, real(t1[0]), sig, s.sigMin)
		if err != nil {
			return err
		}
		z0[0] = complex(float64(v0), 0)
		z1[0] = complex(float64(v1), 0)
		return nil
	}
	lg := 0
	for mm := m; mm > 1; mm /= 2 {
		lg++
	}
	w := &s.levels[lg]
	ell := s.tree.data[off : off+m]
	left := off + m
	right := left + treeSize(m/2)

	splitFFTInto(t1, w.h0, w.h1)
	if err := s.walk(w.h0, w.h1, w.r0, w.r1, right); err != nil {
		return err
	}
	mergeFFTInto(w.r0, w.r1, z1)

	for i := range w.t0b {
		w.t0b[i] = t0[i] + (t1[i]-z1[i])*ell[i]
	}
	splitFFTInto(w.t0b, w.h0, w.h1)
	if err := s.walk(w.h0, w.h1, w.r0, w.r1, left); err != nil {
		return err
	}
	mergeFFTInto(w.r0, w.r1, z0)
	return nil
}
