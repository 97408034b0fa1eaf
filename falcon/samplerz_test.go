package falcon

import (
	"bytes"
	"math"
	"testing"

	"github.com/tuneinsight/lattigo/v4/utils"
)

func testPRNG(tb testing.TB, fill byte) utils.PRNG {
	tb.Helper()
	prng, err := NewSeededPRNG(bytes.Repeat([]byte{fill}, SeedLen))
	if err != nil {
		tb.Fatalf("seeded prng: %v", err)
	}
	return prng
}

func TestBaseSamplerRange(t *testing.T) {
	prng := testPRNG(t, 1)
	for i := 0; i < 5000; i++ {
		z0, err := baseSampler(prng)
		if err != nil {
			t.Fatalf("trial %d: %v", i, err)
		}
		if z0 < 0 || z0 > int64(len(rcdt)) {
			t.Fatalf("trial %d: z0=%d outside table range", i, z0)
		}
	}
}

// TestApproxExp compares the fixed-point exponential against the float
// one across the scaling range the tree leaves produce.
func TestApproxExp(t *testing.T) {
	for _, ccs := range []float64{0.99, 0.73, 0.5} {
		for x := 0.0; x < math.Ln2; x += 0.01 {
			got := float64(approxExp(x, ccs)) / (1 << 63)
			want := ccs * math.Exp(-x)
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("approxExp(%v, %v) = %v, want %v", x, ccs, got, want)
			}
		}
	}
}

// TestBerExpProbability estimates the acceptance rate at x = ln 2 and
// ccs = 1/2, where the exact probability is one quarter.
func TestBerExpProbability(t *testing.T) {
	prng := testPRNG(t, 2)
	const trials = 4000
	accepted := 0
	for i := 0; i < trials; i++ {
		ok, err := berExp(prng, math.Ln2, 0.5)
		if err != nil {
			t.Fatalf("trial %d: %v", i, err)
		}
		if ok {
			accepted++
		}
	}
	rate := float64(accepted) / trials
	if rate < 0.2 || rate > 0.3 {
		t.Fatalf("acceptance rate %f, want about 0.25", rate)
	}
}

func TestSamplerZStatistics(t *testing.T) {
	cases := []struct {
		mu    float64
		sigma float64
	}{
		{0, 1.5},
		{0.37, 1.7},
		{-2.6, 1.3},
	}
	for _, c := range cases {
		prng := testPRNG(t, 3)
		const trials = 20000
		mean := 0.0
		m2 := 0.0
		for i := 0; i < trials; i++ {
			z, err := samplerZ(prng, c.mu, c.sigma, 1.2778336969128337)
			if err != nil {
				t.Fatalf("mu=%v trial %d: %v", c.mu, i, err)
			}
			x := float64(z)
			delta := x - mean
			mean += delta / float64(i+1)
			m2 += delta * (x - mean)
		}
		variance := m2 / float64(trials-1)
		if math.Abs(mean-c.mu) > 0.15 {
			t.Fatalf("mu=%v: mean drift %f", c.mu, mean-c.mu)
		}
		target := c.sigma * c.sigma
		if variance < 0.7*target || variance > 1.3*target {
			t.Fatalf("mu=%v: variance %f outside window around %f", c.mu, variance, target)
		}
	}
}

// TestSamplerZDeterministic checks that one seed always produces one draw
// sequence, the property deterministic signing rests on.
func TestSamplerZDeterministic(t *testing.T) {
	a := testPRNG(t, 4)
	b := testPRNG(t, 4)
	for i := 0; i < 200; i++ {
		za, err := samplerZ(a, 0.5, 1.6, 1.3)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		zb, err := samplerZ(b, 0.5, 1.6, 1.3)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if za != zb {
			t.Fatalf("draw %d diverged: %d vs %d", i, za, zb)
		}
	}
}

// TestGenPolyStatistics checks the secret polynomial sampler sums to the
// advertised per-coefficient width.
func TestGenPolyStatistics(t *testing.T) {
	prng := testPRNG(t, 5)
	const n = 512
	const polys = 6
	target := float64(4096/n) * sigmaFG * sigmaFG
	mean := 0.0
	m2 := 0.0
	count := 0
	for p := 0; p < polys; p++ {
		f, err := genPoly(prng, n)
		if err != nil {
			t.Fatalf("poly %d: %v", p, err)
		}
		for _, v := range f {
			x := float64(v)
			count++
			delta := x - mean
			mean += delta / float64(count)
			m2 += delta * (x - mean)
		}
	}
	variance := m2 / float64(count-1)
	if math.Abs(mean) > 0.3 {
		t.Fatalf("mean drift %f", mean)
	}
	if variance < 0.7*target || variance > 1.3*target {
		t.Fatalf("variance %f outside window around %f", variance, target)
	}
}
