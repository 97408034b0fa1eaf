package falcon

import (
	"math"
	"math/bits"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// rcdt is the reverse cumulative distribution table of the half-Gaussian
// with sigma0 = 1.8205, at 72-bit precision. Entry i stores the probability
// that a sample exceeds i, split into the high 8 bits and the low 64 bits.
var rcdt = [...]struct {
	hi uint8
	lo uint64
}{
	{0xA3, 0xF7F42ED3AC391802},
	{0x54, 0xD32B181F3F7DDB82},
	{0x22, 0x7DCDD0934829C1FF},
	{0x0A, 0xD1754377C7994AE4},
	{0x02, 0x95846CAEF33F1F6F},
	{0x00, 0x774AC754ED74BD5F},
	{0x00, 0x1024DD542B776AE4},
	{0x00, 0x01A1FFDC65AD63DA},
	{0x00, 0x001F80D88A7B6428},
	{0x00, 0x0001C3FDB2040C69},
	{0x00, 0x000012CF24D031FB},
	{0x00, 0x000000949F8B091F},
	{0x00, 0x00000003665DA998},
	{0x00, 0x000000000EBF6EBB},
	{0x00, 0x00000000002F5D7E},
	{0x00, 0x0000000000007098},
	{0x00, 0x00000000000000C6},
	{0x00, 0x0000000000000001},
}

// expCoeffs holds the degree-12 polynomial approximating exp(-x) on [0, ln 2],
// with coefficients scaled by 2^63.
var expCoeffs = [...]uint64{
	0x00000004741183A3,
	0x00000036548CFC06,
	0x0000024FDCBF140A,
	0x0000171D939DE045,
	0x0000D00CF58F6F84,
	0x000680681CF796E3,
	0x002D82D8305B0FEA,
	0x011111110E066FD0,
	0x0555555555070F00,
	0x155555555581FF00,
	0x400000000002B400,
	0x7FFFFFFFFFFF4800,
	0x8000000000000000,
}

// sigma0 is the standard deviation of the base half-Gaussian behind rcdt.
const sigma0 = 1.8205

// baseSampler draws z0 from the half-Gaussian of width sigma0. It consumes
// nine bytes from prng, read big-endian as a 72-bit integer, and counts the
// table entries strictly above it.
func baseSampler(prng utils.PRNG) (int64, error) {
	var buf [9]byte
	if err := readFull(prng, buf[:]); err != nil {
		return 0, err
	}
	hi := buf[0]
	var lo uint64
	for _, b := range buf[1:] {
		lo = lo<<8 | uint64(b)
	}
	z0 := int64(0)
	for _, e := range rcdt {
		if hi < e.hi || (hi == e.hi && lo < e.lo) {
			z0++
		}
	}
	return z0, nil
}

// approxExp returns ccs * exp(-x) * 2^63 for x in [0, ln 2], evaluated by
// Horner's rule over expCoeffs in 64x64 fixed point.
func approxExp(x, ccs float64) uint64 {
	y := expCoeffs[0]
	z := uint64(int64(x*(1<<63))) << 1
	for _, c := range expCoeffs[1:] {
		hi, _ := bits.Mul64(z, y)
		y = c - hi
	}
	z = uint64(int64(ccs*(1<<63))) << 1
	hi, _ := bits.Mul64(z, y)
	return hi
}

// berExp samples a Bernoulli outcome with success probability ccs * exp(-x).
// Bytes are drawn lazily; most calls settle on the first byte.
func berExp(prng utils.PRNG, x, ccs float64) (bool, error) {
	s := int(x / math.Ln2)
	r := x - float64(s)*math.Ln2
	if s > 63 {
		s = 63
	}
	z := (approxExp(r, ccs)<<1 - 1) >> s
	var buf [1]byte
	for i := 56; i >= 0; i -= 8 {
		if err := readFull(prng, buf[:]); err != nil {
			return false, err
		}
		w := int32(buf[0]) - int32((z>>i)&0xFF)
		if w != 0 {
			return w < 0, nil
		}
	}
	return false, nil
}

// samplerZ draws an integer from the discrete Gaussian of center mu and
// standard deviation sigma, which must lie in [sigMin, sigma0]. sigMin scales
// the acceptance probability so the rejection rate stays flat across the
// sigma range used by the tree leaves.
func samplerZ(prng utils.PRNG, mu, sigma, sigMin float64) (int64, error) {
	s := math.Floor(mu)
	r := mu - s
	dss := 1 / (2 * sigma * sigma)
	ccs := sigMin / sigma
	var buf [1]byte
	for {
		z0, err := baseSampler(prng)
		if err != nil {
			return 0, err
		}
		if err := readFull(prng, buf[:]); err != nil {
			return 0, err
		}
		b := int64(buf[0] & 1)
		z := b + (2*b-1)*z0
		d := float64(z) - r
		x := d*d*dss - float64(z0*z0)/(2*sigma0*sigma0)
		ok, err := berExp(prng, x, ccs)
		if err != nil {
			return 0, err
		}
		if ok {
			return z + int64(s), nil
		}
	}
}
