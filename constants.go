package ltc2983

// SPI instruction bytes. Every transaction starts with one of these
// followed by a 16-bit register address.
const (
	opWrite uint8 = 0x02
	opRead  uint8 = 0x03
)

const (
	statusReg        uint16 = 0x000
	globalConfigReg  uint16 = 0x0F0
	multiChanMaskReg uint16 = 0x0F4

	// Channel register banks; each channel occupies 4 bytes.
	resultRegBase uint16 = 0x010
	configRegBase uint16 = 0x200
)

const (
	statusStart    uint8 = 0x80
	statusDone     uint8 = 0x40
	statusChanMask uint8 = 0x1F

	// Conversion start command: 0b100 in the top 3 bits, channel id
	// (or 0 for "use multi-channel mask") in the low 5.
	cmdStartConversion uint8 = 0x80
)

const (
	globalFahrenheit uint8 = 0x04
	globalFilterMask uint8 = 0x03
)

// NotchFilter selects the ADC's line-frequency rejection mode.
type NotchFilter uint8

const (
	Reject50Hz60Hz NotchFilter = iota
	Reject60Hz
	Reject50Hz
)

// Result status codes, one per bit. Exactly one is set in a well-formed
// result register; anything else is a decode error.
const (
	resultValid           uint8 = 0x01
	resultADCOutOfRange   uint8 = 0x02
	resultSensorUnder     uint8 = 0x04
	resultSensorOver      uint8 = 0x08
	resultCJSoftFault     uint8 = 0x10
	resultCJHardFault     uint8 = 0x20
	resultHardADCFault    uint8 = 0x40
	resultSensorHardFault uint8 = 0x80
)

// OcCurrent is the open-circuit detect excitation current for
// thermocouple inputs.
type OcCurrent uint8

const (
	OcExternal OcCurrent = 0
	Oc10uA     OcCurrent = 4
	Oc100uA    OcCurrent = 5
	Oc500uA    OcCurrent = 6
	Oc1mA      OcCurrent = 7
)

// DiodeCurrent is the base diode excitation current; the device scales
// it across the 2- or 3-reading sequence.
type DiodeCurrent uint8

const (
	Diode10uA DiodeCurrent = 0
	Diode20uA DiodeCurrent = 1
	Diode40uA DiodeCurrent = 2
	Diode80uA DiodeCurrent = 3
)

// SensorMode selects single-ended or differential input wiring.
type SensorMode uint8

const (
	Differential SensorMode = 0
	SingleEnded  SensorMode = 1
)
