package falcon

import (
	"bytes"
	"os"
	"testing"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pk, sk := testFalcon512Key(t)
	signer := NewSigner(sk)
	prng := testPRNG(t, 0x11)

	msg := []byte("falcon round trip message")
	sig, err := signer.Sign(msg, prng)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !pk.Verify(msg, sig) {
		t.Fatal("valid signature rejected")
	}
	if pk.Verify([]byte("falcon round trip messagE"), sig) {
		t.Fatal("signature accepted for a different message")
	}
	if got := signer.Attempts(); got < 1 || got > defaultSignTrials {
		t.Fatalf("recorded %d attempts, want between 1 and %d", got, defaultSignTrials)
	}
}

// TestSignatureNormWithinBound recomputes the full (s1, s2) vector the way
// a verifier does and checks the acceptance bound directly.
func TestSignatureNormWithinBound(t *testing.T) {
	pk, sk := testFalcon512Key(t)
	par := sk.Params()
	sig, err := NewSigner(sk).Sign([]byte("norm check"), testPRNG(t, 0x12))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	point := HashToPoint(par.N, sig.Salt(), []byte("norm check"))
	prod, err := Convolve(DecenterToModQ(sig.Coefficients()), pk.Coefficients())
	if err != nil {
		t.Fatalf("convolve: %v", err)
	}
	var norm int64
	for i := range point {
		s1 := int64(centerCoeff(modSub(uint32(point[i]), uint32(prod[i]))))
		s2 := int64(sig.s2[i])
		norm += s1*s1 + s2*s2
	}
	if norm > par.SigBound {
		t.Fatalf("signature norm %d over bound %d", norm, par.SigBound)
	}
	if norm == 0 {
		t.Fatal("degenerate zero signature")
	}
}

func TestSignaturesUseFreshSalts(t *testing.T) {
	_, sk := testFalcon512Key(t)
	signer := NewSigner(sk)
	prng := testPRNG(t, 0x13)
	msg := []byte("same message twice")
	first, err := signer.Sign(msg, prng)
	if err != nil {
		t.Fatalf("first sign: %v", err)
	}
	second, err := signer.Sign(msg, prng)
	if err != nil {
		t.Fatalf("second sign: %v", err)
	}
	if bytes.Equal(first.Salt(), second.Salt()) {
		t.Fatal("two signatures reused one salt")
	}
	if len(first.Salt()) != 40 {
		t.Fatalf("salt length %d, want 40", len(first.Salt()))
	}
}

// TestSignDeterministicStream checks signing is a pure function of the
// key, the message and the generator stream.
func TestSignDeterministicStream(t *testing.T) {
	_, sk := testFalcon512Key(t)
	msg := []byte("replayed stream")
	a, err := NewSigner(sk).Sign(msg, testPRNG(t, 0x14))
	if err != nil {
		t.Fatalf("sign a: %v", err)
	}
	b, err := NewSigner(sk).Sign(msg, testPRNG(t, 0x14))
	if err != nil {
		t.Fatalf("sign b: %v", err)
	}
	ea, err := a.Encode()
	if err != nil {
		t.Fatalf("encode a: %v", err)
	}
	eb, err := b.Encode()
	if err != nil {
		t.Fatalf("encode b: %v", err)
	}
	if !bytes.Equal(ea, eb) {
		t.Fatal("same stream produced different signatures")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	pk, sk := testFalcon512Key(t)
	msg := []byte("tamper target")
	sig, err := NewSigner(sk).Sign(msg, testPRNG(t, 0x15))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	for _, idx := range []int{0, 17, 255, 511} {
		mod := &Signature{par: sig.par, salt: sig.Salt(), s2: sig.Coefficients()}
		mod.s2[idx] += 3
		if pk.Verify(msg, mod) {
			t.Fatalf("accepted signature with s2[%d] shifted", idx)
		}
	}
	mod := &Signature{par: sig.par, salt: sig.Salt(), s2: sig.Coefficients()}
	mod.salt[0] ^= 0x01
	if pk.Verify(msg, mod) {
		t.Fatal("accepted signature with a flipped salt bit")
	}
}

// Verify is total: anything malformed resolves to false.
func TestVerifyTotalOnBadInputs(t *testing.T) {
	pk, sk := testFalcon512Key(t)
	if pk.Verify([]byte("x"), nil) {
		t.Fatal("accepted nil signature")
	}
	sig, err := NewSigner(sk).Sign([]byte("x"), testPRNG(t, 0x16))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	short := &Signature{par: sig.par, salt: sig.Salt()[:20], s2: sig.Coefficients()}
	if pk.Verify([]byte("x"), short) {
		t.Fatal("accepted short salt")
	}
	mismatched := &Signature{par: Falcon1024(), salt: sig.Salt(), s2: sig.Coefficients()}
	if pk.Verify([]byte("x"), mismatched) {
		t.Fatal("accepted mismatched degree")
	}
}

func TestSignVerifyFalcon1024(t *testing.T) {
	if os.Getenv("RUN_FALCON1024") == "" {
		t.Skip("set RUN_FALCON1024=1 to exercise the n=1024 preset")
	}
	prng, err := NewSeededPRNG(bytes.Repeat([]byte{0x77}, SeedLen))
	if err != nil {
		t.Fatalf("prng: %v", err)
	}
	pk, sk, err := Keygen(Falcon1024(), prng, KeygenOpts{})
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	msg := []byte("falcon-1024 round trip")
	sig, err := NewSigner(sk).Sign(msg, prng)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !pk.Verify(msg, sig) {
		t.Fatal("valid signature rejected")
	}
	enc, err := sig.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(enc) != Falcon1024().SignatureBytes {
		t.Fatalf("signature length %d, want %d", len(enc), Falcon1024().SignatureBytes)
	}
}
