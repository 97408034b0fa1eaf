package falcon

import (
	"bytes"
	"sync"
	"testing"
)

// One deterministic Falcon-512 key pair shared by the whole package. Key
// generation solves the NTRU equation, so tests that only need some valid
// key reuse this one instead of paying for their own.
var (
	testKeyOnce sync.Once
	testKeyPK   *PublicKey
	testKeySK   *SecretKey
	testKeyErr  error
)

func testFalcon512Key(tb testing.TB) (*PublicKey, *SecretKey) {
	tb.Helper()
	testKeyOnce.Do(func() {
		prng, err := NewSeededPRNG(bytes.Repeat([]byte{0x42}, SeedLen))
		if err != nil {
			testKeyErr = err
			return
		}
		testKeyPK, testKeySK, testKeyErr = Keygen(Falcon512(), prng, KeygenOpts{})
	})
	if testKeyErr != nil {
		tb.Fatalf("shared test key: %v", testKeyErr)
	}
	return testKeyPK, testKeySK
}

// TestKeygenDeterministic checks that a seed pins the key pair down to the
// encoded bytes and that another seed leaves the pinned one.
func TestKeygenDeterministic(t *testing.T) {
	pk, sk := testFalcon512Key(t)

	prng, err := NewSeededPRNG(bytes.Repeat([]byte{0x42}, SeedLen))
	if err != nil {
		t.Fatalf("prng: %v", err)
	}
	pk2, sk2, err := Keygen(Falcon512(), prng, KeygenOpts{})
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	if !bytes.Equal(pk.Encode(), pk2.Encode()) {
		t.Fatal("same seed produced different public keys")
	}
	if !bytes.Equal(sk.Encode(), sk2.Encode()) {
		t.Fatal("same seed produced different secret keys")
	}

	prng, err = NewSeededPRNG(bytes.Repeat([]byte{0x43}, SeedLen))
	if err != nil {
		t.Fatalf("prng: %v", err)
	}
	pk3, _, err := Keygen(Falcon512(), prng, KeygenOpts{})
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	if bytes.Equal(pk.Encode(), pk3.Encode()) {
		t.Fatal("different seeds produced the same public key")
	}
}

// TestKeygenTrapdoorIdentity verifies f*G - g*F = q exactly over the
// integers.
func TestKeygenTrapdoorIdentity(t *testing.T) {
	_, sk := testFalcon512Key(t)
	f, g, F, G := sk.Basis()
	lhs := mulNegacyclicSmall(f, G)
	rhs := mulNegacyclicSmall(g, F)
	for i := range lhs {
		want := int64(0)
		if i == 0 {
			want = Q
		}
		if lhs[i]-rhs[i] != want {
			t.Fatalf("coefficient %d: f*G - g*F = %d, want %d", i, lhs[i]-rhs[i], want)
		}
	}
}

// TestKeygenPublicKeyMatchesTrapdoor checks h = g * f^-1 through the
// equivalent product f*h = g mod q.
func TestKeygenPublicKeyMatchesTrapdoor(t *testing.T) {
	pk, sk := testFalcon512Key(t)
	f, g, _, _ := sk.Basis()
	fh, err := Convolve(DecenterToModQ(f), pk.Coefficients())
	if err != nil {
		t.Fatalf("convolve: %v", err)
	}
	gq := DecenterToModQ(g)
	for i := range fh {
		if fh[i] != gq[i] {
			t.Fatalf("coefficient %d: f*h = %d, g = %d", i, fh[i], gq[i])
		}
	}
}

func TestKeygenQualityGates(t *testing.T) {
	_, sk := testFalcon512Key(t)
	par := sk.Params()
	f, g, F, G := sk.Basis()
	if gs := gsNorm(f, g); gs > gsNormBound {
		t.Fatalf("gram-schmidt norm %f over bound %f", gs, gsNormBound)
	}
	lim := int16(1<<(par.WidthFG-1)) - 1
	if m := maxAbs(f); m > lim {
		t.Fatalf("f coefficient %d outside %d-bit width", m, par.WidthFG)
	}
	if m := maxAbs(g); m > lim {
		t.Fatalf("g coefficient %d outside %d-bit width", m, par.WidthFG)
	}
	if m := maxAbs(F); m > 127 {
		t.Fatalf("F coefficient %d outside 8-bit width", m)
	}
	if m := maxAbs(G); m > 127 {
		t.Fatalf("G coefficient %d outside 8-bit width", m)
	}
}

func TestKeygenRejectsInvalidParams(t *testing.T) {
	prng, err := NewSeededPRNG(bytes.Repeat([]byte{1}, SeedLen))
	if err != nil {
		t.Fatalf("prng: %v", err)
	}
	if _, _, err := Keygen(Params{N: 100}, prng, KeygenOpts{}); err == nil {
		t.Fatal("expected an error for a non-preset parameter struct")
	}
}
