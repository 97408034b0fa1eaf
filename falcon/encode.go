package falcon

import "fmt"

// Every encoding starts with one header byte: the high nibble gives the
// object type, the low nibble log2(n). Lengths are byte-exact, decoders
// reject anything else.
const (
	headerPublic = 0x00
	headerSig    = 0x30
	headerSecret = 0x50
)

// qBits is the fixed width of one public key coefficient.
const qBits = 14

// Encode packs the public key as the header byte followed by n 14-bit
// big-endian coefficients.
func (pk *PublicKey) Encode() []byte {
	w := newBitWriter(pk.par.PublicKeyBytes - headerLen)
	for _, v := range pk.h {
		w.writeBits(uint32(v), qBits)
	}
	out := make([]byte, 0, pk.par.PublicKeyBytes)
	out = append(out, headerPublic|byte(pk.par.LogN))
	return append(out, w.buf...)
}

// DecodePublicKey parses an encoded public key. Wrong length, wrong
// header, and coefficients at or above q all yield ErrInvalidKeyEncoding.
func DecodePublicKey(data []byte) (*PublicKey, error) {
	if len(data) < headerLen || data[0]&0xF0 != headerPublic {
		return nil, ErrInvalidKeyEncoding
	}
	par, err := paramsForLogN(int(data[0] & 0x0F))
	if err != nil || len(data) != par.PublicKeyBytes {
		return nil, ErrInvalidKeyEncoding
	}
	r := &bitReader{buf: data[headerLen:]}
	h := make([]uint16, par.N)
	for i := range h {
		v, ok := r.readBits(qBits)
		if !ok || v >= Q {
			return nil, ErrInvalidKeyEncoding
		}
		h[i] = uint16(v)
	}
	return &PublicKey{par: par, h: h}, nil
}

// Encode packs the secret key as the header byte, then f and g as
// two's-complement fields of the preset width, then F on eight bits.
// G is not stored; decoding recomputes it from the congruence
// G = f^-1 * g * F mod q.
func (sk *SecretKey) Encode() []byte {
	par := sk.par
	w := newBitWriter(par.SecretKeyBytes - headerLen)
	for _, v := range sk.f {
		w.writeBits(uint32(int32(v)), par.WidthFG)
	}
	for _, v := range sk.g {
		w.writeBits(uint32(int32(v)), par.WidthFG)
	}
	for _, v := range sk.bigF {
		w.writeBits(uint32(int32(v)), 8)
	}
	out := make([]byte, 0, par.SecretKeyBytes)
	out = append(out, headerSecret|byte(par.LogN))
	return append(out, w.buf...)
}

// readSigned reads count two's-complement fields of the given width. The
// most negative value of the width is not a valid coefficient and fails
// the read.
func readSigned(r *bitReader, count, width int) ([]int16, bool) {
	out := make([]int16, count)
	half := int32(1) << (width - 1)
	for i := range out {
		v, ok := r.readBits(width)
		if !ok {
			return nil, false
		}
		c := int32(v)
		if c >= half {
			c -= half * 2
			if c == -half {
				return nil, false
			}
		}
		out[i] = int16(c)
	}
	return out, true
}

// DecodeSecretKey parses an encoded secret key, recomputes G, verifies
// the exact NTRU identity f*G - g*F = q, and rebuilds the signing state.
// Any inconsistency yields ErrInvalidKeyEncoding; a stored key never
// degrades silently into garbage key material.
func DecodeSecretKey(data []byte) (*SecretKey, error) {
	if len(data) < headerLen || data[0]&0xF0 != headerSecret {
		return nil, ErrInvalidKeyEncoding
	}
	par, err := paramsForLogN(int(data[0] & 0x0F))
	if err != nil || len(data) != par.SecretKeyBytes {
		return nil, ErrInvalidKeyEncoding
	}
	r := &bitReader{buf: data[headerLen:]}
	f, ok := readSigned(r, par.N, par.WidthFG)
	if !ok {
		return nil, ErrInvalidKeyEncoding
	}
	g, ok := readSigned(r, par.N, par.WidthFG)
	if !ok {
		return nil, ErrInvalidKeyEncoding
	}
	bigF, ok := readSigned(r, par.N, 8)
	if !ok {
		return nil, ErrInvalidKeyEncoding
	}
	fInv, err := InvertModQ(DecenterToModQ(f))
	if err != nil {
		return nil, fmt.Errorf("%w: f not invertible", ErrInvalidKeyEncoding)
	}
	gF, err := Convolve(DecenterToModQ(g), DecenterToModQ(bigF))
	if err != nil {
		return nil, err
	}
	bigGq, err := Convolve(gF, fInv)
	if err != nil {
		return nil, err
	}
	bigG := CenterModQ(bigGq)
	lhs := mulNegacyclicSmall(f, bigG)
	rhs := mulNegacyclicSmall(g, bigF)
	for i := range lhs {
		want := int64(0)
		if i == 0 {
			want = Q
		}
		if lhs[i]-rhs[i] != want {
			return nil, fmt.Errorf("%w: ntru identity does not hold", ErrInvalidKeyEncoding)
		}
	}
	return newSecretKey(par, f, g, bigF, bigG)
}

// Encode packs the signature as the header byte, the salt, and the
// compressed s2 padded to the fixed preset size. A signature whose
// compressed form cannot fit yields ErrInvalidSignatureEncoding; Sign
// never produces one.
func (sig *Signature) Encode() ([]byte, error) {
	par := sig.par
	comp, ok := compress(sig.s2, par.compressedSigBytes())
	if !ok {
		return nil, ErrInvalidSignatureEncoding
	}
	out := make([]byte, 0, par.SignatureBytes)
	out = append(out, headerSig|byte(par.LogN))
	out = append(out, sig.salt...)
	return append(out, comp...), nil
}

// DecodeSignature parses an encoded signature. The length must match the
// preset named in the header exactly, and the compressed payload must
// decode cleanly under the decompress rules.
func DecodeSignature(data []byte) (*Signature, error) {
	if len(data) < headerLen+saltLen || data[0]&0xF0 != headerSig {
		return nil, ErrInvalidSignatureEncoding
	}
	par, err := paramsForLogN(int(data[0] & 0x0F))
	if err != nil || len(data) != par.SignatureBytes {
		return nil, ErrInvalidSignatureEncoding
	}
	salt := append([]byte(nil), data[headerLen:headerLen+saltLen]...)
	s2, ok := decompress(data[headerLen+saltLen:], par.N)
	if !ok {
		return nil, ErrInvalidSignatureEncoding
	}
	return &Signature{par: par, salt: salt, s2: s2}, nil
}
