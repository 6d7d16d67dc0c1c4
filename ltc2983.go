package ltc2983

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Opts holds various configuration options for the device
type Opts struct {
	// Channel is the input read by Sense and SenseContinuous.
	Channel Channel
	// Filter selects the ADC's line-frequency rejection mode. The
	// default rejects both 50Hz and 60Hz.
	Filter NotchFilter
	// PollInterval is the delay between status-register reads while the
	// blocking read helpers wait for a conversion to finish. A
	// conversion takes roughly 170ms per channel.
	PollInterval time.Duration
	// PollTimeout bounds how long the blocking read helpers wait for a
	// single conversion before giving up with ErrConversionTimeout.
	PollTimeout time.Duration
}

func DefaultOptions() *Opts {
	return &Opts{
		Channel:      CH1,
		PollInterval: 50 * time.Millisecond,
		PollTimeout:  2500 * time.Millisecond,
	}
}

// New opens the LTC2983 on the given SPI port. The device accepts SPI
// mode 0 at up to 2MHz.
func New(p spi.Port, opts *Opts) (*Dev, error) {
	c, err := p.Connect(2*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ltc2983: %v", err)
	}

	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 50 * time.Millisecond
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 2500 * time.Millisecond
	}
	if opts.Channel == 0 {
		opts.Channel = CH1
	}
	if !opts.Channel.Valid() {
		return nil, fmt.Errorf("ltc2983: %w: %d", ErrInvalidChannel, opts.Channel)
	}

	d := &Dev{
		d:    c,
		opts: *opts,
		name: p.String(),
	}

	// Results are always decoded as Celsius; pin the unit bit and set
	// the rejection filter.
	if err := d.writeReg(globalConfigReg, []byte{uint8(opts.Filter) & globalFilterMask}); err != nil {
		return nil, d.wrap(err)
	}

	return d, nil
}

// Dev is a handle to an LTC2983 on an SPI bus. It mirrors no device
// state: channel configuration and conversion status are read back from
// the device whenever they are needed, so out-of-band register changes
// cannot drift from driver assumptions.
type Dev struct {
	d    conn.Conn
	opts Opts
	name string

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s{%s}", d.name, d.d)
}

// SetupChannel writes a probe description into a channel's
// configuration register. The descriptor is consumed by this call; the
// driver keeps no copy.
func (d *Dev) SetupChannel(probe Probe, ch Channel) error {
	if !ch.Valid() {
		return d.wrap(fmt.Errorf("%w: %d", ErrInvalidChannel, ch))
	}
	word, err := EncodeConfig(probe)
	if err != nil {
		return d.wrap(err)
	}
	payload := []byte{byte(word >> 24), byte(word >> 16), byte(word >> 8), byte(word)}
	return d.writeReg(ch.StartAddress(), payload)
}

// ReadChannelConfig reads back and decodes a channel's configuration
// register. Returns ErrChannelNotConfigured when the probe-type field
// is zero.
func (d *Dev) ReadChannelConfig(ch Channel) (Probe, error) {
	if !ch.Valid() {
		return nil, d.wrap(fmt.Errorf("%w: %d", ErrInvalidChannel, ch))
	}
	var b [4]byte
	if err := d.readReg(ch.StartAddress(), b[:]); err != nil {
		return nil, err
	}
	word := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	p, err := DecodeConfig(word)
	if err != nil {
		return nil, d.wrap(err)
	}
	return p, nil
}

// ChannelConfigured reports whether a channel holds a probe
// configuration, by re-reading the device rather than trusting any
// local cache. The top 5 bits of the configuration word are the probe
// type; zero means unassigned.
func (d *Dev) ChannelConfigured(ch Channel) (bool, error) {
	if !ch.Valid() {
		return false, d.wrap(fmt.Errorf("%w: %d", ErrInvalidChannel, ch))
	}
	var b [4]byte
	if err := d.readReg(ch.StartAddress(), b[:]); err != nil {
		return false, err
	}
	return b[0]&0xF8 != 0, nil
}

// StartConversion commands a single-channel conversion. It does not
// wait for completion; poll ReadStatus until Done.
func (d *Dev) StartConversion(ch Channel) error {
	if !ch.Valid() {
		return d.wrap(fmt.Errorf("%w: %d", ErrInvalidChannel, ch))
	}
	if err := d.requireConfigured(ch); err != nil {
		return err
	}
	return d.writeReg(statusReg, []byte{cmdStartConversion | uint8(ch)})
}

// StartConversionMulti commands a conversion across several channels.
// The OR of the channels' one-hot masks is written to the multi-channel
// mask register, then the start command is issued with channel id 0,
// which tells the device to use the mask. Like StartConversion it
// returns immediately.
func (d *Dev) StartConversionMulti(channels []Channel) error {
	if len(channels) == 0 {
		return d.wrap(errors.New("no channels given"))
	}
	for _, ch := range channels {
		if !ch.Valid() {
			return d.wrap(fmt.Errorf("%w: %d", ErrInvalidChannel, ch))
		}
		if err := d.requireConfigured(ch); err != nil {
			return err
		}
	}
	mask := ChannelMask(channels)
	payload := []byte{byte(mask >> 24), byte(mask >> 16), byte(mask >> 8), byte(mask)}
	if err := d.writeReg(multiChanMaskReg, payload); err != nil {
		return err
	}
	return d.writeReg(statusReg, []byte{cmdStartConversion})
}

// ReadStatus reads and decodes the command status register.
func (d *Dev) ReadStatus() (Status, error) {
	var b [1]byte
	if err := d.readReg(statusReg, b[:]); err != nil {
		return Status{}, err
	}
	return decodeStatus(b[0]), nil
}

// ReadResult reads and decodes a channel's conversion result register.
// It does not start a conversion; the value is whatever the device last
// stored for the channel.
func (d *Dev) ReadResult(ch Channel) (Result, error) {
	if !ch.Valid() {
		return Result{}, d.wrap(fmt.Errorf("%w: %d", ErrInvalidChannel, ch))
	}
	if err := d.requireConfigured(ch); err != nil {
		return Result{}, err
	}
	var b [4]byte
	if err := d.readReg(ch.ResultAddress(), b[:]); err != nil {
		return Result{}, err
	}
	r, err := decodeResult(b)
	if err != nil {
		return Result{}, d.wrap(err)
	}
	return r, nil
}

// ReadTemperature starts a conversion on a channel, waits for it to
// finish and returns the decoded result. Waiting is a poll loop over
// ReadStatus at Opts.PollInterval, bounded by Opts.PollTimeout; the
// protocol primitives themselves never block.
func (d *Dev) ReadTemperature(ch Channel) (Result, error) {
	if err := d.StartConversion(ch); err != nil {
		return Result{}, err
	}
	if err := d.waitDone(); err != nil {
		return Result{}, err
	}
	return d.ReadResult(ch)
}

// ReadTemperatureMulti converts several channels in one commanded
// conversion and returns their results in the order given. The bus has
// no multiplexing, so the result registers are read sequentially.
func (d *Dev) ReadTemperatureMulti(channels []Channel) ([]Result, error) {
	if err := d.StartConversionMulti(channels); err != nil {
		return nil, err
	}
	if err := d.waitDone(); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(channels))
	for _, ch := range channels {
		r, err := d.ReadResult(ch)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Sense reads Opts.Channel once. Faulted conversions are reported as
// errors; soft faults still fill in the out-of-range reading.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return d.wrap(errors.New("already sensing continuously"))
	}

	return d.sense(e)
}

// SenseContinuous returns measurements as °C on a continuous basis.
//
// The application must call Halt() to stop the sensing when done to
// stop the device polling and close the channel.
//
// It's the responsibility of the caller to retrieve the values from the
// channel as fast as possible, otherwise the interval may not be
// respected.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
		d.wg.Wait()
	}

	sensing := make(chan physic.Env)
	d.stop = make(chan struct{})
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(sensing)
		d.sensingContinuous(interval, sensing, d.stop)
	}()
	return sensing, nil
}

// Precision reports the 1/1024°C step of the 24-bit result format.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Kelvin / 1024
}

// Halt stops continuous sensing as initiated by SenseContinuous().
//
// It is recommended to call this function before terminating the
// process to avoid a goroutine leak.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == nil {
		return nil
	}
	close(d.stop)
	d.stop = nil
	d.wg.Wait()

	return nil
}

func (d *Dev) sense(e *physic.Env) error {
	r, err := d.ReadTemperature(d.opts.Channel)
	if err != nil {
		return err
	}
	if r.Fault.HasReading() {
		e.Temperature = physic.Temperature(r.Celsius*1000)*physic.MilliCelsius + physic.ZeroCelsius
	}
	if !r.Valid() {
		return d.wrap(fmt.Errorf("channel %d: %s", d.opts.Channel, r.Fault))
	}
	return nil
}

func (d *Dev) sensingContinuous(interval time.Duration, sensing chan<- physic.Env, stop <-chan struct{}) {
	// A conversion takes the device roughly 170ms; don't poll faster.
	if interval < d.opts.PollInterval {
		interval = d.opts.PollInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	var err error
	for {
		// Do one initial sensing right away.
		e := physic.Env{}
		d.mu.Lock()
		err = d.sense(&e)
		d.mu.Unlock()
		if err != nil {
			return
		}
		select {
		case sensing <- e:
		case <-stop:
			return
		}
		select {
		case <-stop:
			return
		case <-t.C:
		}
	}
}

// waitDone polls the status register until the device reports the
// commanded conversion finished. All timeout policy lives here, above
// the protocol primitives.
func (d *Dev) waitDone() error {
	deadline := time.Now().Add(d.opts.PollTimeout)
	for {
		s, err := d.ReadStatus()
		if err != nil {
			return err
		}
		if s.Done {
			return nil
		}
		if time.Now().After(deadline) {
			return d.wrap(ErrConversionTimeout)
		}
		time.Sleep(d.opts.PollInterval)
	}
}

func (d *Dev) requireConfigured(ch Channel) error {
	ok, err := d.ChannelConfigured(ch)
	if err != nil {
		return err
	}
	if !ok {
		return d.wrap(fmt.Errorf("%w: channel %d", ErrChannelNotConfigured, ch))
	}
	return nil
}

// readReg reads len(b) bytes starting at a register address. The write
// frame is the read opcode, the 16-bit address, then one dummy byte per
// payload byte; the device shifts the payload out on the dummy bytes.
func (d *Dev) readReg(reg uint16, b []byte) error {
	write := make([]byte, len(b)+3)
	read := make([]byte, len(write))

	write[0] = opRead
	write[1] = byte(reg >> 8)
	write[2] = byte(reg)
	if err := d.d.Tx(write, read); err != nil {
		return d.wrap(err)
	}
	copy(b, read[3:])

	return nil
}

// writeReg writes payload bytes starting at a register address.
func (d *Dev) writeReg(reg uint16, payload []byte) error {
	write := make([]byte, 0, len(payload)+3)
	write = append(write, opWrite, byte(reg>>8), byte(reg))
	write = append(write, payload...)

	if err := d.d.Tx(write, nil); err != nil {
		return d.wrap(err)
	}

	return nil
}

func (d *Dev) wrap(err error) error {
	return fmt.Errorf("%s: %w", strings.ToLower(d.name), err)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
