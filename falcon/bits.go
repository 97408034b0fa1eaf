package falcon

// Fixed-capacity big-endian bit IO shared by the key and signature
// encoders. Bit 0 of the stream is the most significant bit of byte 0.

type bitWriter struct {
	buf []byte
	pos int
}

func newBitWriter(size int) *bitWriter {
	return &bitWriter{buf: make([]byte, size)}
}

// writeBits appends the width lowest bits of v, most significant first.
// It reports false once the buffer capacity would be exceeded.
func (w *bitWriter) writeBits(v uint32, width int) bool {
	if w.pos+width > 8*len(w.buf) {
		return false
	}
	for i := width - 1; i >= 0; i-- {
		if v>>uint(i)&1 == 1 {
			w.buf[w.pos>>3] |= 0x80 >> uint(w.pos&7)
		}
		w.pos++
	}
	return true
}

type bitReader struct {
	buf []byte
	pos int
}

// readBits consumes width bits, most significant first. It reports false
// when fewer than width bits remain.
func (r *bitReader) readBits(width int) (uint32, bool) {
	if r.pos+width > 8*len(r.buf) {
		return 0, false
	}
	var v uint32
	for i := 0; i < width; i++ {
		v <<= 1
		if r.buf[r.pos>>3]&(0x80>>uint(r.pos&7)) != 0 {
			v |= 1
		}
		r.pos++
	}
	return v, true
}

// remainingZero reports whether every unread bit is zero.
func (r *bitReader) remainingZero() bool {
	for p := r.pos; p < 8*len(r.buf); p++ {
		if r.buf[p>>3]&(0x80>>uint(p&7)) != 0 {
			return false
		}
	}
	return true
}
