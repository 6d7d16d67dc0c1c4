package ltc2983

import (
	"errors"
	"testing"
)

func TestEncodeThermocoupleBareWiring(t *testing.T) {
	// No cold junction and no custom curve: bits [26:22] and [11:0]
	// must be zero, the sentinels for "none".
	word, err := EncodeConfig(Thermocouple{Type: TypeK, OcCurrent: Oc10uA})
	if err != nil {
		t.Fatal(err)
	}
	if got := word >> 27; got != uint32(TypeK) {
		t.Fatalf("probe type field = %d, want %d", got, TypeK)
	}
	if got := (word >> 22) & 0x1F; got != 0 {
		t.Fatalf("cold junction field = %d, want 0", got)
	}
	if got := word & 0xFFF; got != 0 {
		t.Fatalf("custom address field = %#x, want 0", got)
	}
	if got := (word >> 18) & 0xF; got != uint32(Oc10uA) {
		t.Fatalf("sensor config nibble = %#x, want %#x", got, uint32(Oc10uA))
	}
}

func TestThermocoupleRoundTrip(t *testing.T) {
	in := Thermocouple{
		Type:          TypeJ,
		ColdJunction:  CH2,
		Mode:          SingleEnded,
		OcCurrent:     Oc1mA,
		CustomAddress: 0x123,
	}
	word, err := EncodeConfig(in)
	if err != nil {
		t.Fatal(err)
	}
	p, err := DecodeConfig(word)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := p.(Thermocouple)
	if !ok {
		t.Fatalf("decoded %T, want Thermocouple", p)
	}
	if got != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, in)
	}
}

func TestSenseResistorRoundTrip(t *testing.T) {
	word, err := EncodeConfig(SenseResistor{Ohms: 2000.0})
	if err != nil {
		t.Fatal(err)
	}
	if got := word >> 27; got != uint32(IDSenseResistor) {
		t.Fatalf("probe type field = %d, want %d", got, IDSenseResistor)
	}
	if got := word & 0x7FFFFFF; got != 2000<<10 {
		t.Fatalf("resistance field = %#x, want %#x", got, 2000<<10)
	}
	p, err := DecodeConfig(word)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.(SenseResistor).Ohms; got != 2000.0 {
		t.Fatalf("decoded resistance = %v, want 2000", got)
	}
}

func TestDiodeRoundTrip(t *testing.T) {
	in := Diode{
		Mode:           SingleEnded,
		ThreeReadings:  true,
		Averaging:      true,
		Excitation:     Diode20uA,
		IdealityFactor: 1.0,
	}
	word, err := EncodeConfig(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := word >> 27; got != uint32(IDDiode) {
		t.Fatalf("probe type field = %d, want %d", got, IDDiode)
	}
	p, err := DecodeConfig(word)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.(Diode); got != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, in)
	}
}

func TestDiodeDefaultIdealityIsZeroField(t *testing.T) {
	word, err := EncodeConfig(Diode{Excitation: Diode10uA})
	if err != nil {
		t.Fatal(err)
	}
	if got := word & 0x3FFFFF; got != 0 {
		t.Fatalf("ideality field = %#x, want 0 (device default)", got)
	}
}

func TestEncodeUnsupportedFamilies(t *testing.T) {
	for _, p := range []Probe{
		RTD{Type: IDRTDPT100},
		Thermistor{Type: IDThermistorYSI400},
		CustomThermocouple{},
		DirectADC{},
	} {
		if _, err := EncodeConfig(p); !errors.Is(err, ErrUnsupportedProbe) {
			t.Fatalf("EncodeConfig(%T) err = %v, want ErrUnsupportedProbe", p, err)
		}
	}
}

func TestEncodeRejectsBadFields(t *testing.T) {
	if _, err := EncodeConfig(Thermocouple{Type: TypeK, ColdJunction: 21}); !errors.Is(err, ErrInvalidChannel) {
		t.Fatalf("bad cold junction err = %v, want ErrInvalidChannel", err)
	}
	if _, err := EncodeConfig(Thermocouple{Type: TypeK, CustomAddress: 0x1000}); !errors.Is(err, ErrCustomAddress) {
		t.Fatalf("oversized custom address err = %v, want ErrCustomAddress", err)
	}
}

func TestDecodeConfigSentinels(t *testing.T) {
	if _, err := DecodeConfig(0); !errors.Is(err, ErrChannelNotConfigured) {
		t.Fatalf("DecodeConfig(0) err = %v, want ErrChannelNotConfigured", err)
	}
	// RTD PT-100 readback decodes as unsupported, not as garbage.
	if _, err := DecodeConfig(uint32(IDRTDPT100) << 27); !errors.Is(err, ErrUnsupportedProbe) {
		t.Fatalf("RTD readback err = %v, want ErrUnsupportedProbe", err)
	}
}
