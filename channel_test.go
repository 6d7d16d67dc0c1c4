package ltc2983

import "testing"

func TestChannelAddresses(t *testing.T) {
	for n := 1; n <= NumChannels; n++ {
		ch := Channel(n)
		if !ch.Valid() {
			t.Fatalf("channel %d should be valid", n)
		}
		if got, want := ch.StartAddress(), uint16(0x200+4*(n-1)); got != want {
			t.Fatalf("CH%d StartAddress = %#x, want %#x", n, got, want)
		}
		if got, want := ch.ResultAddress(), uint16(0x010+4*(n-1)); got != want {
			t.Fatalf("CH%d ResultAddress = %#x, want %#x", n, got, want)
		}
		if got, want := ch.Mask(), uint32(1)<<(n-1); got != want {
			t.Fatalf("CH%d Mask = %#x, want %#x", n, got, want)
		}
	}
}

func TestChannelValidity(t *testing.T) {
	if Channel(0).Valid() {
		t.Fatal("channel 0 is the none sentinel, not a valid channel")
	}
	if Channel(21).Valid() {
		t.Fatal("channel 21 should be invalid")
	}
}

func TestChannelMask(t *testing.T) {
	got := ChannelMask([]Channel{CH1, CH3, CH20})
	if want := uint32(0b10000000000000000101); got != want {
		t.Fatalf("ChannelMask = %#b, want %#b", got, want)
	}
	// Invalid channels contribute nothing.
	if got := ChannelMask([]Channel{0, 21}); got != 0 {
		t.Fatalf("ChannelMask of invalid channels = %#x, want 0", got)
	}
}
