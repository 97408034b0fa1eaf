package falcon

import (
	"bytes"
	"errors"
	"testing"
)

// TestGenerateKeyPairFromZeroSeed pins the all-zero seed scenario: the
// pair must come out byte-identical on every call, at the preset sizes.
func TestGenerateKeyPairFromZeroSeed(t *testing.T) {
	seed := make([]byte, SeedLen)
	pub, sec, err := GenerateKeyPair(seed)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pub) != 897 || len(sec) != 1281 {
		t.Fatalf("encoded sizes %d/%d, want 897/1281", len(pub), len(sec))
	}
	pub2, sec2, err := GenerateKeyPair(seed)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if !bytes.Equal(pub, pub2) || !bytes.Equal(sec, sec2) {
		t.Fatal("zero seed produced two different key pairs")
	}
}

func TestGenerateKeyPairSeedLength(t *testing.T) {
	if _, _, err := GenerateKeyPair(make([]byte, 16)); !errors.Is(err, ErrInvalidSeedLength) {
		t.Fatalf("short seed: got %v, want ErrInvalidSeedLength", err)
	}
	if _, _, err := GenerateKeyPair(nil); !errors.Is(err, ErrInvalidSeedLength) {
		t.Fatalf("nil seed: got %v, want ErrInvalidSeedLength", err)
	}
}

func TestByteAPISignVerify(t *testing.T) {
	pk, sk := testFalcon512Key(t)
	sig, err := SignMessage([]byte("test"), sk.Encode(), testPRNG(t, 0x51))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if len(sig) != 666 {
		t.Fatalf("signature length %d, want 666", len(sig))
	}
	if !VerifyMessage([]byte("test"), sig, pk.Encode()) {
		t.Fatal("valid signature rejected")
	}
	if VerifyMessage([]byte("tset"), sig, pk.Encode()) {
		t.Fatal("signature accepted for a different message")
	}
}

func TestByteAPIMalformedInputs(t *testing.T) {
	pk, sk := testFalcon512Key(t)
	sig, err := SignMessage([]byte("m"), sk.Encode(), testPRNG(t, 0x52))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if VerifyMessage([]byte("m"), sig, nil) {
		t.Fatal("accepted nil public key")
	}
	if VerifyMessage([]byte("m"), nil, pk.Encode()) {
		t.Fatal("accepted nil signature")
	}
	if VerifyMessage([]byte("m"), sig[:100], pk.Encode()) {
		t.Fatal("accepted truncated signature")
	}
	if _, err := SignMessage([]byte("m"), []byte{0x59, 0x00}, testPRNG(t, 0x53)); !errors.Is(err, ErrInvalidKeyEncoding) {
		t.Fatalf("malformed secret key: got %v", err)
	}
}
