package ltc2983

import "fmt"

// ProbeID is the device's 5-bit probe-type code, written verbatim into
// bits [31:27] of a channel configuration register. The values are wire
// constants from the datasheet and are non-contiguous; they must never
// be renumbered.
type ProbeID uint8

const (
	IDThermocoupleJ      ProbeID = 1
	IDThermocoupleK      ProbeID = 2
	IDThermocoupleE      ProbeID = 3
	IDThermocoupleN      ProbeID = 4
	IDThermocoupleR      ProbeID = 5
	IDThermocoupleS      ProbeID = 6
	IDThermocoupleT      ProbeID = 7
	IDThermocoupleB      ProbeID = 8
	IDCustomThermocouple ProbeID = 9
	IDRTDPT10            ProbeID = 10
	IDRTDPT50            ProbeID = 11
	IDRTDPT100           ProbeID = 12
	IDRTDPT200           ProbeID = 13
	IDRTDPT500           ProbeID = 14
	IDRTDPT1000          ProbeID = 15
	IDRTD1000            ProbeID = 16
	IDRTDNI120           ProbeID = 17
	IDCustomRTD          ProbeID = 18
	IDThermistor44004    ProbeID = 19
	IDThermistor44005    ProbeID = 20
	IDThermistor44007    ProbeID = 21
	IDThermistor44006    ProbeID = 22
	IDThermistor44008    ProbeID = 23
	IDThermistorYSI400   ProbeID = 24
	IDThermistorSpectrum ProbeID = 25
	IDCustomSteinhart    ProbeID = 26
	IDCustomThermistor   ProbeID = 27
	IDDiode              ProbeID = 28
	IDSenseResistor      ProbeID = 29
	IDDirectADC          ProbeID = 30
)

// Probe describes the sensor wired to a channel. Implementations are a
// closed set; each knows its wire identifier.
type Probe interface {
	ID() ProbeID
}

// ThermocoupleType selects one of the eight standard thermocouple
// curves. The values double as probe identifiers.
type ThermocoupleType = ProbeID

const (
	TypeJ = IDThermocoupleJ
	TypeK = IDThermocoupleK
	TypeE = IDThermocoupleE
	TypeN = IDThermocoupleN
	TypeR = IDThermocoupleR
	TypeS = IDThermocoupleS
	TypeT = IDThermocoupleT
	TypeB = IDThermocoupleB
)

// Thermocouple configures a standard thermocouple input.
//
// ColdJunction names the channel providing cold-junction compensation;
// the zero value means no compensation and encodes as channel id 0 on
// the wire. CustomAddress points at a custom curve table in device
// memory; 0 means none. Both sentinels are part of the wire contract.
type Thermocouple struct {
	Type          ThermocoupleType
	ColdJunction  Channel
	Mode          SensorMode
	OcCurrent     OcCurrent
	CustomAddress uint16
}

func (t Thermocouple) ID() ProbeID { return t.Type }

// sensorConfig packs the 4-bit sensor configuration nibble: the
// single-ended/differential bit above the 3-bit excitation code.
func (t Thermocouple) sensorConfig() uint8 {
	return uint8(t.Mode)<<3 | uint8(t.OcCurrent)&0x07
}

// SenseResistor configures a channel wired to a precision resistor used
// as the reference for ratiometric measurements. Ohms is encoded as an
// unsigned (17,10) fixed-point value in the low 27 bits.
type SenseResistor struct {
	Ohms float64
}

func (SenseResistor) ID() ProbeID { return IDSenseResistor }

// Diode configures a diode temperature input.
//
// IdealityFactor overrides the device default when nonzero; it is
// encoded as a (2,20) fixed-point value masked to the low 22 bits of
// the word. Zero leaves the field empty, which the device reads as
// "use the default ideality factor".
type Diode struct {
	Mode           SensorMode
	ThreeReadings  bool
	Averaging      bool
	Excitation     DiodeCurrent
	IdealityFactor float64
}

func (Diode) ID() ProbeID { return IDDiode }

// RTD declares a platinum/nickel RTD input. The register layout
// (sense-resistor pointer, wire count, excitation) is not implemented;
// encoding one returns ErrUnsupportedProbe.
type RTD struct {
	Type ProbeID // IDRTDPT10 .. IDRTDNI120
}

func (r RTD) ID() ProbeID { return r.Type }

// Thermistor declares a thermistor input. Not implemented; encoding one
// returns ErrUnsupportedProbe.
type Thermistor struct {
	Type ProbeID // IDThermistor44004 .. IDThermistorSpectrum
}

func (t Thermistor) ID() ProbeID { return t.Type }

// CustomThermocouple declares a table-driven thermocouple. Not
// implemented.
type CustomThermocouple struct{}

func (CustomThermocouple) ID() ProbeID { return IDCustomThermocouple }

// DirectADC declares a raw voltage input. Not implemented.
type DirectADC struct{}

func (DirectADC) ID() ProbeID { return IDDirectADC }

// EncodeConfig assembles the 32-bit channel configuration word for a
// probe. Families without a defined layout return ErrUnsupportedProbe.
func EncodeConfig(p Probe) (uint32, error) {
	w := &bitWriter{}
	switch s := p.(type) {
	case Thermocouple:
		if s.Type < TypeJ || s.Type > TypeB {
			return 0, fmt.Errorf("%w: thermocouple type %d", ErrUnsupportedProbe, s.Type)
		}
		if s.ColdJunction != 0 && !s.ColdJunction.Valid() {
			return 0, fmt.Errorf("%w: cold junction %d", ErrInvalidChannel, s.ColdJunction)
		}
		if s.CustomAddress > 0xFFF {
			return 0, ErrCustomAddress
		}
		// [31:27] probe type, [26:22] cold-junction channel (0 = none),
		// [21:18] sensor configuration, [17:12] reserved, [11:0] custom
		// curve pointer (0 = none).
		w.writeBits(uint64(s.Type), 5)
		w.writeBits(uint64(s.ColdJunction), 5)
		w.writeBits(uint64(s.sensorConfig()), 4)
		w.writeBits(0, 6)
		w.writeBits(uint64(s.CustomAddress), 12)

	case SenseResistor:
		// [31:27] probe type, [26:0] resistance as unsigned (17,10).
		w.writeBits(uint64(IDSenseResistor), 5)
		w.writeBits(uint64(encodeUnsignedFixed(s.Ohms, 27, fixedResistanceBits)), 27)

	case Diode:
		// [31:27] probe type, [26] single-ended/differential, [25]
		// 2/3 readings, [24] averaging, [23:22] excitation current,
		// [21:0] ideality factor as (2,20), 0 = device default.
		w.writeBits(uint64(IDDiode), 5)
		w.writeBits(uint64(s.Mode), 1)
		w.writeBits(boolBit(s.ThreeReadings), 1)
		w.writeBits(boolBit(s.Averaging), 1)
		w.writeBits(uint64(s.Excitation)&0x3, 2)
		ideality := encodeUnsignedFixed(s.IdealityFactor, 22, fixedIdealityBits)
		w.writeBits(uint64(ideality)&0x3FFFFF, 22)

	default:
		return 0, fmt.Errorf("%w: probe id %d", ErrUnsupportedProbe, p.ID())
	}

	if got := w.bits(); got != 32 {
		return 0, fmt.Errorf("configuration word is %d bits, want 32", got)
	}
	b := w.bytes()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// DecodeConfig recovers a typed probe description from a configuration
// word read back from the device. A zeroed probe-type field means the
// channel was never configured. Families without a defined layout
// return ErrUnsupportedProbe.
func DecodeConfig(word uint32) (Probe, error) {
	r := &bitReader{buf: []byte{
		byte(word >> 24), byte(word >> 16), byte(word >> 8), byte(word),
	}}
	id := ProbeID(r.readBits(5))
	switch {
	case id == 0:
		return nil, ErrChannelNotConfigured

	case id >= TypeJ && id <= TypeB:
		tc := Thermocouple{Type: id}
		tc.ColdJunction = Channel(r.readBits(5))
		cfg := uint8(r.readBits(4))
		tc.Mode = SensorMode(cfg >> 3)
		tc.OcCurrent = OcCurrent(cfg & 0x07)
		r.readBits(6) // reserved
		tc.CustomAddress = uint16(r.readBits(12))
		return tc, nil

	case id == IDSenseResistor:
		raw := uint32(r.readBits(27))
		return SenseResistor{Ohms: decodeUnsignedFixed(raw, fixedResistanceBits)}, nil

	case id == IDDiode:
		d := Diode{}
		d.Mode = SensorMode(r.readBits(1))
		d.ThreeReadings = r.readBits(1) == 1
		d.Averaging = r.readBits(1) == 1
		d.Excitation = DiodeCurrent(r.readBits(2))
		d.IdealityFactor = decodeUnsignedFixed(uint32(r.readBits(22)), fixedIdealityBits)
		return d, nil

	default:
		return nil, fmt.Errorf("%w: probe id %d", ErrUnsupportedProbe, id)
	}
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
