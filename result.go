package ltc2983

import (
	"fmt"
	"math/bits"
)

// Status is the decoded command status register. It is recomputed from
// every read and never cached; the device is the only source of truth
// for conversion state.
type Status struct {
	// Start is set while a conversion command is latched.
	Start bool
	// Done is set once the commanded conversion has completed.
	Done bool
	// Channel is the input most recently or currently converting; 0
	// when a multi-channel mask conversion was commanded.
	Channel Channel
}

func decodeStatus(b uint8) Status {
	return Status{
		Start:   b&statusStart != 0,
		Done:    b&statusDone != 0,
		Channel: Channel(b & statusChanMask),
	}
}

// Fault classifies a conversion outcome.
type Fault uint8

const (
	// FaultNone means a valid reading.
	FaultNone Fault = iota
	// FaultADCOutOfRange: ADC saturated but a clamped reading exists.
	FaultADCOutOfRange
	// FaultSensorUnderRange: reading below the probe's defined range.
	FaultSensorUnderRange
	// FaultSensorOverRange: reading above the probe's defined range.
	FaultSensorOverRange
	// FaultCJSoft: cold-junction reading suspect; value still reported.
	FaultCJSoft
	// FaultCJHard: cold-junction sensor failed; no reading.
	FaultCJHard
	// FaultHardADC: ADC hard out-of-range; no reading.
	FaultHardADC
	// FaultSensorHard: sensor open or shorted; no reading.
	FaultSensorHard
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "valid"
	case FaultADCOutOfRange:
		return "adc out of range"
	case FaultSensorUnderRange:
		return "sensor under range"
	case FaultSensorOverRange:
		return "sensor over range"
	case FaultCJSoft:
		return "cold junction soft fault"
	case FaultCJHard:
		return "cold junction hard fault"
	case FaultHardADC:
		return "hard adc out of range"
	case FaultSensorHard:
		return "sensor hard fault"
	}
	return "unknown fault"
}

// HasReading reports whether results with this fault class carry a
// usable temperature value. Hard faults do not.
func (f Fault) HasReading() bool {
	switch f {
	case FaultSensorHard, FaultHardADC, FaultCJHard:
		return false
	}
	return true
}

// Result is a decoded conversion result register.
type Result struct {
	Fault Fault
	// Celsius is the decoded reading. It is meaningful only when
	// Fault.HasReading() is true.
	Celsius float64
}

// Valid reports a fault-free reading.
func (r Result) Valid() bool { return r.Fault == FaultNone }

// decodeResult decodes the 4 bytes of a result register: a one-hot
// status byte followed by a signed 24-bit fixed-point temperature.
// Exactly one status bit must be set; each code is checked on its own
// rather than as an if-chain so a malformed byte can never alias a
// defined outcome.
func decodeResult(b [4]byte) (Result, error) {
	if bits.OnesCount8(b[0]) != 1 {
		return Result{}, fmt.Errorf("%w: %#02x", ErrBadResultStatus, b[0])
	}

	var fault Fault
	switch b[0] {
	case resultValid:
		fault = FaultNone
	case resultADCOutOfRange:
		fault = FaultADCOutOfRange
	case resultSensorUnder:
		fault = FaultSensorUnderRange
	case resultSensorOver:
		fault = FaultSensorOverRange
	case resultCJSoftFault:
		fault = FaultCJSoft
	case resultCJHardFault:
		fault = FaultCJHard
	case resultHardADCFault:
		fault = FaultHardADC
	case resultSensorHardFault:
		fault = FaultSensorHard
	}

	r := Result{Fault: fault}
	if fault.HasReading() {
		r.Celsius = decodeTemperature([3]byte{b[1], b[2], b[3]})
	}
	return r, nil
}
