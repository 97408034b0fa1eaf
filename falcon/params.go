package falcon

import "errors"

// Q is the field modulus shared by every parameter set. It is prime and
// satisfies Q = 1 mod 2N for both supported degrees, so the same NTT ring
// serves exact products at N=512 and N=1024.
const Q = 12289

// saltLen is the per-signature nonce length in bytes.
const saltLen = 40

// headerLen is the single format byte prefixed to every encoding.
const headerLen = 1

// Params fixes one Falcon degree together with its sampler widths, norm
// bound and encoded sizes. Values are immutable; obtain them through the
// Falcon512 and Falcon1024 presets.
type Params struct {
	N    int // ring degree, power of two
	LogN int

	Sigma    float64 // Gaussian width of the signature distribution
	SigMin   float64 // lower sampler width handed to SamplerZ
	SigBound int64   // maximal accepted squared norm of (s1, s2)

	WidthFG int // secret-key bit width for f and g coefficients

	PublicKeyBytes int
	SecretKeyBytes int
	SignatureBytes int
}

// Falcon512 returns the n=512 parameter set (NIST level I).
func Falcon512() Params {
	return Params{
		N:              512,
		LogN:           9,
		Sigma:          165.7366171829776,
		SigMin:         1.2778336969128337,
		SigBound:       34034726,
		WidthFG:        6,
		PublicKeyBytes: 897,
		SecretKeyBytes: 1281,
		SignatureBytes: 666,
	}
}

// Falcon1024 returns the n=1024 parameter set (NIST level V).
func Falcon1024() Params {
	return Params{
		N:              1024,
		LogN:           10,
		Sigma:          168.38857144654395,
		SigMin:         1.298280334344292,
		SigBound:       70265242,
		WidthFG:        5,
		PublicKeyBytes: 1793,
		SecretKeyBytes: 2305,
		SignatureBytes: 1280,
	}
}

// paramsForLogN maps an encoding header degree back to its preset.
func paramsForLogN(logn int) (Params, error) {
	switch logn {
	case 9:
		return Falcon512(), nil
	case 10:
		return Falcon1024(), nil
	}
	return Params{}, errors.New("falcon: unsupported degree")
}

// validate rejects parameter structs that did not come from a preset.
func (p Params) validate() error {
	if p.N != 512 && p.N != 1024 {
		return errors.New("falcon: N must be 512 or 1024")
	}
	if 1<<p.LogN != p.N {
		return errors.New("falcon: LogN inconsistent with N")
	}
	if p.Sigma <= 0 || p.SigMin <= 0 || p.SigBound <= 0 {
		return errors.New("falcon: sampler parameters must be positive")
	}
	return nil
}

// compressedSigBytes is the byte budget left for the compressed s2 once the
// header byte and the salt are accounted for.
func (p Params) compressedSigBytes() int {
	return p.SignatureBytes - headerLen - saltLen
}
