package ltc2983

import "errors"

var (
	// ErrUnsupportedProbe is returned when encoding a probe family that
	// has no register layout implemented yet (RTDs, thermistors, custom
	// thermocouples, direct ADC). The encoder never emits a zeroed or
	// partial configuration word for these.
	ErrUnsupportedProbe = errors.New("probe family not supported")

	// ErrInvalidChannel is returned for channel ids outside 1..20.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrBadResultStatus is returned when a result register's status
	// byte is zero or has more than one bit set.
	ErrBadResultStatus = errors.New("result status byte is not one-hot")

	// ErrChannelNotConfigured is returned when starting or reading a
	// channel whose configuration register holds no probe type.
	ErrChannelNotConfigured = errors.New("channel not configured")

	// ErrCustomAddress is returned when a custom thermocouple data
	// pointer does not fit the 12-bit field.
	ErrCustomAddress = errors.New("custom address exceeds 12 bits")

	// ErrConversionTimeout is returned by the blocking read helpers
	// when the device does not report done within Opts.PollTimeout.
	ErrConversionTimeout = errors.New("conversion timed out")
)
