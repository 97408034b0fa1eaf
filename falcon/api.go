package falcon

import "github.com/tuneinsight/lattigo/v4/utils"

// Byte-level entry points for transport, storage and UI layers. Only
// encoded buffers cross this boundary; underneath sit the typed Keygen,
// Signer.Sign and PublicKey.Verify.

// GenerateKeyPair deterministically derives a Falcon-512 key pair from a
// 32-byte seed and returns both halves encoded.
func GenerateKeyPair(seed []byte) ([]byte, []byte, error) {
	prng, err := NewSeededPRNG(seed)
	if err != nil {
		return nil, nil, err
	}
	pk, sk, err := Keygen(Falcon512(), prng, KeygenOpts{})
	if err != nil {
		return nil, nil, err
	}
	return pk.Encode(), sk.Encode(), nil
}

// SignMessage signs message under an encoded secret key, drawing the salt
// and all sampler randomness from prng.
func SignMessage(message, secretKey []byte, prng utils.PRNG) ([]byte, error) {
	sk, err := DecodeSecretKey(secretKey)
	if err != nil {
		return nil, err
	}
	sig, err := NewSigner(sk).Sign(message, prng)
	if err != nil {
		return nil, err
	}
	return sig.Encode()
}

// VerifyMessage reports whether signature is valid over message under an
// encoded public key. Malformed input of any kind verifies false.
func VerifyMessage(message, signature, publicKey []byte) bool {
	pk, err := DecodePublicKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := DecodeSignature(signature)
	if err != nil {
		return false
	}
	return pk.Verify(message, sig)
}
