package falcon

// Verify reports whether sig is a valid signature over msg under pk. It is
// total: nil or mismatched inputs and failed checks all resolve to false,
// never to a panic or an error.
func (pk *PublicKey) Verify(msg []byte, sig *Signature) bool {
	if sig == nil || sig.par.N != pk.par.N {
		return false
	}
	if len(sig.salt) != saltLen || len(sig.s2) != pk.par.N {
		return false
	}
	point := HashToPoint(pk.par.N, sig.salt, msg)
	prod, err := Convolve(DecenterToModQ(sig.s2), pk.h)
	if err != nil {
		return false
	}
	// s1 = c - s2*h mod q, centered; accept on the combined norm.
	s1 := CenterModQ(SubModQ(point, prod))
	var norm int64
	for i := range s1 {
		c1 := int64(s1[i])
		c2 := int64(sig.s2[i])
		norm += c1*c1 + c2*c2
	}
	return norm <= pk.par.SigBound
}
