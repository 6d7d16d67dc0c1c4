package ltc2983

// Channel identifies one of the device's 20 measurement inputs. The
// zero value is not a channel; it is the wire sentinel for "none" used
// by the cold-junction field and the multi-channel start command.
type Channel uint8

const (
	CH1 Channel = iota + 1
	CH2
	CH3
	CH4
	CH5
	CH6
	CH7
	CH8
	CH9
	CH10
	CH11
	CH12
	CH13
	CH14
	CH15
	CH16
	CH17
	CH18
	CH19
	CH20
)

// NumChannels is the number of measurement inputs on the device.
const NumChannels = 20

// Valid reports whether ch names a real channel.
func (ch Channel) Valid() bool {
	return ch >= CH1 && ch <= CH20
}

// StartAddress is the channel's 32-bit configuration register address.
func (ch Channel) StartAddress() uint16 {
	return configRegBase + 4*(uint16(ch)-1)
}

// ResultAddress is the channel's 32-bit conversion result register
// address.
func (ch Channel) ResultAddress() uint16 {
	return resultRegBase + 4*(uint16(ch)-1)
}

// Mask is the channel's one-hot bit in the multi-channel mask register.
func (ch Channel) Mask() uint32 {
	return 1 << (uint32(ch) - 1)
}

// ChannelMask ORs the masks of the given channels. Invalid channels are
// ignored; callers validate before building a mask they intend to write.
func ChannelMask(channels []Channel) uint32 {
	var mask uint32
	for _, ch := range channels {
		if ch.Valid() {
			mask |= ch.Mask()
		}
	}
	return mask
}
