package ltc2983

// Fixed-point formats used by the channel configuration and result
// registers. Encodes truncate toward zero to the nearest representable
// step; no other rounding is applied.

// fixedResistanceBits is the fractional width of the 27-bit unsigned
// sense-resistor field. The datasheet defines the field as (17,10); an
// earlier revision of this driver used 25 fractional bits, which cannot
// represent resistances above 4 ohms and was wrong for kilohm-range
// sense resistors.
const fixedResistanceBits = 10

// fixedIdealityBits is the fractional width of the diode ideality
// factor field, a (2,20) value occupying the low 22 bits of the
// configuration word.
const fixedIdealityBits = 20

// encodeUnsignedFixed converts v into an unsigned fixed-point value with
// fracBits fractional bits, masked to totalBits. Negative inputs clamp
// to zero, values beyond the field's range clamp to the field maximum.
func encodeUnsignedFixed(v float64, totalBits, fracBits uint) uint32 {
	if v < 0 {
		return 0
	}
	max := uint64(1)<<totalBits - 1
	raw := uint64(v * float64(uint64(1)<<fracBits))
	if raw > max {
		raw = max
	}
	return uint32(raw)
}

// decodeUnsignedFixed is the inverse of encodeUnsignedFixed.
func decodeUnsignedFixed(raw uint32, fracBits uint) float64 {
	return float64(raw) / float64(uint64(1)<<fracBits)
}

// decodeTemperature interprets a 24-bit two's-complement value with 10
// fractional bits, as found in the low 3 bytes of a result register.
// The top bit of b[0] is the sign; the value is sign-extended to 32
// bits before scaling. Resolution is 1/1024 degC over roughly
// [-8192, 8192).
func decodeTemperature(b [3]byte) float64 {
	raw := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	if b[0]&0x80 != 0 {
		raw |= 0xFF000000
	}
	return float64(int32(raw)) / 1024.0
}
