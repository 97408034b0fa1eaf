package falcon

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"
)

// TestSolveNTRUIdentity solves the NTRU equation at a reduced degree and
// checks f*G - g*F = q exactly. Individual trials may fail when the
// resultants share a factor, so the test redraws until one solves.
func TestSolveNTRUIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(0xfa15e))
	const n = 16
	for trial := 0; trial < 64; trial++ {
		f := randSmallPoly(rng, n, 4)
		g := randSmallPoly(rng, n, 4)
		F, G, err := solveNTRU(f, g)
		if err != nil {
			if errors.Is(err, errSolveRetry) {
				continue
			}
			t.Fatalf("trial %d: %v", trial, err)
		}
		lhs := mulNegacyclicBig(int16ToBigPoly(f), G)
		rhs := mulNegacyclicBig(int16ToBigPoly(g), F)
		for i := 0; i < n; i++ {
			lhs[i].Sub(lhs[i], rhs[i])
			want := int64(0)
			if i == 0 {
				want = Q
			}
			if lhs[i].Cmp(big.NewInt(want)) != 0 {
				t.Fatalf("trial %d coefficient %d: got %s want %d", trial, i, lhs[i], want)
			}
		}
		return
	}
	t.Fatal("no solvable trial in 64 draws")
}

// TestFieldNormProjection checks the defining property of the field norm,
// f(x) * f(-x) = N(f)(x^2) in the negacyclic ring.
func TestFieldNormProjection(t *testing.T) {
	rng := rand.New(rand.NewSource(88))
	const n = 8
	f := int16ToBigPoly(randSmallPoly(rng, n, 20))
	lhs := mulNegacyclicBig(f, galoisConjugateBig(f))
	rhs := liftBig(fieldNormBig(f))
	for i := 0; i < n; i++ {
		if lhs[i].Cmp(rhs[i]) != 0 {
			t.Fatalf("coefficient %d: got %s want %s", i, lhs[i], rhs[i])
		}
	}
}

func TestByteSizeWindows(t *testing.T) {
	cases := []struct {
		in   int64
		want int
	}{
		{0, 0},
		{1, 8},
		{255, 8},
		{256, 16},
		{-70000, 24},
	}
	for _, c := range cases {
		if got := byteSize(big.NewInt(c.in)); got != c.want {
			t.Fatalf("byteSize(%d) = %d, want %d", c.in, got, c.want)
		}
	}
	polys := [][]*big.Int{int64ToBigPoly([]int64{1, 70000})}
	if got := maxByteSize(polys...); got != 53 {
		t.Fatalf("maxByteSize floor: got %d, want 53", got)
	}
	big1 := int64ToBigPoly([]int64{1})
	big1[0].Lsh(big1[0], 80)
	if got := maxByteSize(big1); got != 88 {
		t.Fatalf("maxByteSize(2^80) = %d, want 88", got)
	}
}

// TestShiftToFloatsExact checks the 53-bit windowing truncates toward
// minus infinity, the same direction for both signs.
func TestShiftToFloatsExact(t *testing.T) {
	v := new(big.Int).Lsh(big.NewInt(3), 60)
	v.Add(v, big.NewInt(5))
	a := []*big.Int{new(big.Int).Set(v), new(big.Int).Neg(v)}
	size := maxByteSize(a)
	if size != 64 {
		t.Fatalf("window size: got %d, want 64", size)
	}
	got := shiftToFloats(a, size)
	lead := float64(int64(3) << 49)
	if got[0] != lead {
		t.Fatalf("positive: got %v want %v", got[0], lead)
	}
	if got[1] != -lead-1 {
		t.Fatalf("negative floor: got %v want %v", got[1], -lead-1)
	}
}
