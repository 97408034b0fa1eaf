package falcon

import "golang.org/x/crypto/sha3"

// acceptBound is the largest SHAKE-derived 16-bit value kept by
// HashToPoint. It is the greatest multiple of Q below 2^16, so accepted
// values reduce to uniform residues.
const acceptBound = 5 * Q

// HashToPoint maps salt||msg to a ring element of degree n. SHAKE256
// output is read two bytes at a time as big-endian integers; values at
// or above acceptBound are discarded, the rest are reduced mod Q.
func HashToPoint(n int, salt, msg []byte) []uint16 {
	shake := sha3.NewShake256()
	shake.Write(salt)
	shake.Write(msg)
	c := make([]uint16, n)
	var buf [2]byte
	for i := 0; i < n; {
		shake.Read(buf[:])
		v := uint32(buf[0])<<8 | uint32(buf[1])
		if v < acceptBound {
			c[i] = uint16(v % Q)
			i++
		}
	}
	return c
}
