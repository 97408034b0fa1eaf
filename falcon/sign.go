package falcon

import (
	"fmt"
	"os"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// defaultSignTrials bounds the rejection loop when the caller does not set
// a budget. Acceptance probability per attempt is close to one, so hitting
// the bound indicates a broken key or RNG rather than bad luck.
const defaultSignTrials = 32

// Signature pairs the salt with the short second half s2. The first half
// s1 is recomputed from the public key during verification.
type Signature struct {
	par  Params
	salt []byte
	s2   []int16
}

// Params returns the parameter set the signature was produced under.
func (sig *Signature) Params() Params { return sig.par }

// Salt returns a copy of the 40-byte salt.
func (sig *Signature) Salt() []byte { return append([]byte(nil), sig.salt...) }

// Coefficients returns a copy of the centered coefficients of s2.
func (sig *Signature) Coefficients() []int16 {
	return append([]int16(nil), sig.s2...)
}

// Signer carries the reusable signing state for one secret key: the
// Fourier-domain target and output vectors plus the tree sampler with its
// per-level scratch. A Signer is not safe for concurrent use.
type Signer struct {
	// MaxTrials bounds the rejection loop; zero selects defaultSignTrials.
	MaxTrials int

	sk       *SecretKey
	smp      *ffSampler
	attempts int

	t0, t1 []complex128
	z0, z1 []complex128
	tmp    []complex128
	v0, v1 []int64
	salt   []byte
}

// Attempts reports how many sampling attempts the previous Sign call
// consumed, including the accepted one.
func (s *Signer) Attempts() int { return s.attempts }

// NewSigner allocates the signing state for sk. The returned Signer can
// produce any number of signatures.
func NewSigner(sk *SecretKey) *Signer {
	n := sk.par.N
	return &Signer{
		sk:   sk,
		smp:  newFFSampler(sk.tree, sk.par.SigMin),
		t0:   make([]complex128, n),
		t1:   make([]complex128, n),
		z0:   make([]complex128, n),
		z1:   make([]complex128, n),
		tmp:  make([]complex128, n),
		v0:   make([]int64, n),
		v1:   make([]int64, n),
		salt: make([]byte, saltLen),
	}
}

// Sign produces a signature over msg, drawing all randomness from prng.
// Every attempt uses a fresh salt. An attempt is rejected and restarted
// when the sampled vector's norm exceeds the bound or its compressed form
// exceeds the byte budget. PRNG failure and budget exhaustion both abort
// with ErrSigningAborted.
func (s *Signer) Sign(msg []byte, prng utils.PRNG) (*Signature, error) {
	par := s.sk.par
	trials := s.MaxTrials
	if trials == 0 {
		trials = defaultSignTrials
	}
	s.smp.prng = prng
	a, b, c, d := s.sk.b0[0], s.sk.b0[1], s.sk.b0[2], s.sk.b0[3]
	for attempt := 0; attempt < trials; attempt++ {
		s.attempts = attempt + 1
		if err := readFull(prng, s.salt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSigningAborted, err)
		}
		point := HashToPoint(par.N, s.salt, msg)
		pf := make([]complex128, par.N)
		for i, v := range point {
			pf[i] = complex(float64(v), 0)
		}
		chat := fft(pf)

		// Target t = (1/q) * chat * [[d], [-b]], the preimage of the hash
		// point under the secret basis.
		for i := 0; i < par.N; i++ {
			s.t0[i] = chat[i] * d[i] / Q
			s.t1[i] = -chat[i] * b[i] / Q
		}
		if err := s.smp.sample(s.t0, s.t1, s.z0, s.z1); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSigningAborted, err)
		}

		// v = z * B0 back in the integer domain.
		mulFFT(s.z0, a, s.t0)
		mulFFT(s.z1, c, s.tmp)
		addFFT(s.t0, s.tmp, s.t0)
		ifftRoundInto(s.t0, s.v0)
		mulFFT(s.z0, b, s.t1)
		mulFFT(s.z1, d, s.tmp)
		addFFT(s.t1, s.tmp, s.t1)
		ifftRoundInto(s.t1, s.v1)

		var norm int64
		for i := 0; i < par.N; i++ {
			d0 := int64(point[i]) - s.v0[i]
			d1 := -s.v1[i]
			s.v0[i] = d0
			s.v1[i] = d1
			norm += d0*d0 + d1*d1
		}
		if norm > par.SigBound {
			dbg(os.Stderr, "[sign] attempt %d: norm %d over bound\n", attempt, norm)
			continue
		}
		s2 := make([]int16, par.N)
		for i, v := range s.v1 {
			s2[i] = int16(v)
		}
		if _, ok := compress(s2, par.compressedSigBytes()); !ok {
			dbg(os.Stderr, "[sign] attempt %d: compressed form over budget\n", attempt)
			continue
		}
		return &Signature{
			par:  par,
			salt: append([]byte(nil), s.salt...),
			s2:   s2,
		}, nil
	}
	return nil, fmt.Errorf("%w: %d attempts rejected", ErrSigningAborted, trials)
}
