package ltc2983

// bitWriter packs values of arbitrary bit width into a big-endian byte
// sequence, most-significant bit first. Finalizing mid-byte left-shifts
// the partial byte so the stream stays aligned to its own start.
type bitWriter struct {
	buf  []byte
	cur  uint8
	used uint8 // bits consumed in cur
}

// writeBits appends the low width bits of v, MSB first. Width must be in
// [1, 64]; values wider than width are masked down. Range checks belong
// to the callers, which pre-validate through the fixed-point codec.
func (w *bitWriter) writeBits(v uint64, width uint) {
	if width < 64 {
		v &= (1 << width) - 1
	}
	for i := int(width) - 1; i >= 0; i-- {
		w.cur <<= 1
		w.cur |= uint8((v >> uint(i)) & 1)
		w.used++
		if w.used == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur = 0
			w.used = 0
		}
	}
}

func (w *bitWriter) writeByte(b uint8) {
	w.writeBits(uint64(b), 8)
}

func (w *bitWriter) writeUint16(v uint16) {
	w.writeBits(uint64(v), 16)
}

// bits returns the number of bits written so far.
func (w *bitWriter) bits() int {
	return len(w.buf)*8 + int(w.used)
}

// bytes flushes any partial byte (zero-padded on the right) and returns
// the accumulated sequence.
func (w *bitWriter) bytes() []byte {
	if w.used > 0 {
		w.buf = append(w.buf, w.cur<<(8-w.used))
		w.cur = 0
		w.used = 0
	}
	return w.buf
}

// bitReader consumes a byte sequence in the same MSB-first order.
type bitReader struct {
	buf []byte
	pos uint // bit offset from the start of buf
}

// readBits consumes width bits and returns them right-aligned. Reading
// past the end of the buffer yields zero bits.
func (r *bitReader) readBits(width uint) uint64 {
	var v uint64
	for i := uint(0); i < width; i++ {
		v <<= 1
		byteIdx := r.pos >> 3
		if byteIdx < uint(len(r.buf)) {
			bit := (r.buf[byteIdx] >> (7 - r.pos&7)) & 1
			v |= uint64(bit)
		}
		r.pos++
	}
	return v
}
