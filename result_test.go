package ltc2983

import (
	"errors"
	"testing"
)

func TestDecodeResultStatusMapping(t *testing.T) {
	// Each of the 8 one-hot codes maps to exactly one outcome.
	codes := map[uint8]Fault{
		0x01: FaultNone,
		0x02: FaultADCOutOfRange,
		0x04: FaultSensorUnderRange,
		0x08: FaultSensorOverRange,
		0x10: FaultCJSoft,
		0x20: FaultCJHard,
		0x40: FaultHardADC,
		0x80: FaultSensorHard,
	}
	seen := make(map[Fault]bool)
	for code, want := range codes {
		r, err := decodeResult([4]byte{code, 0x00, 0x04, 0x00})
		if err != nil {
			t.Fatalf("decodeResult(%#02x) err = %v", code, err)
		}
		if r.Fault != want {
			t.Fatalf("decodeResult(%#02x) fault = %v, want %v", code, r.Fault, want)
		}
		if seen[r.Fault] {
			t.Fatalf("fault %v produced by more than one code", r.Fault)
		}
		seen[r.Fault] = true
	}
}

func TestDecodeResultValues(t *testing.T) {
	r, err := decodeResult([4]byte{0x01, 0x00, 0x04, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if !r.Valid() || r.Celsius != 1.0 {
		t.Fatalf("valid result = %+v, want 1.0°C", r)
	}

	// Soft faults still carry the clamped reading.
	r, err = decodeResult([4]byte{0x10, 0xFF, 0xFC, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if r.Fault != FaultCJSoft || r.Celsius != -1.0 {
		t.Fatalf("soft fault result = %+v, want CJ soft at -1.0°C", r)
	}

	// Hard faults carry no reading even if the value bytes are set.
	r, err = decodeResult([4]byte{0x80, 0x10, 0x00, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if r.Fault != FaultSensorHard || r.Celsius != 0 {
		t.Fatalf("hard fault result = %+v, want no reading", r)
	}
	if r.Fault.HasReading() {
		t.Fatal("sensor hard fault should not report a reading")
	}
}

func TestDecodeResultRejectsNonOneHot(t *testing.T) {
	for _, code := range []uint8{0x00, 0x03, 0x81, 0xFF, 0x18} {
		if _, err := decodeResult([4]byte{code, 0, 0, 0}); !errors.Is(err, ErrBadResultStatus) {
			t.Fatalf("decodeResult(%#02x) err = %v, want ErrBadResultStatus", code, err)
		}
	}
}

func TestDecodeStatus(t *testing.T) {
	s := decodeStatus(0xC5)
	if !s.Start || !s.Done || s.Channel != CH5 {
		t.Fatalf("decodeStatus(0xC5) = %+v", s)
	}
	s = decodeStatus(0x40)
	if s.Start || !s.Done || s.Channel != 0 {
		t.Fatalf("decodeStatus(0x40) = %+v", s)
	}
}
