package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mikesmitty/ltc2983"
)

type fileConfig struct {
	Device   deviceConfig    `toml:"device"`
	Channels []channelConfig `toml:"channels"`
}

type deviceConfig struct {
	Port         string `toml:"port"`
	Filter       string `toml:"filter"` // "", "50hz", "60hz"
	PollInterval string `toml:"poll_interval"`
	PollTimeout  string `toml:"poll_timeout"`
}

type channelConfig struct {
	Channel int    `toml:"channel"`
	Probe   string `toml:"probe"` // thermocouple, sense-resistor, diode

	// Thermocouple fields
	Type          string `toml:"type"` // J, K, E, N, R, S, T, B
	ColdJunction  int    `toml:"cold_junction"`
	SingleEnded   bool   `toml:"single_ended"`
	OcCurrent     string `toml:"oc_current"` // external, 10uA, 100uA, 500uA, 1mA
	CustomAddress int    `toml:"custom_address"`

	// Sense resistor fields
	Ohms float64 `toml:"ohms"`

	// Diode fields
	ThreeReadings bool    `toml:"three_readings"`
	Averaging     bool    `toml:"averaging"`
	Excitation    string  `toml:"excitation"` // 10uA, 20uA, 40uA, 80uA
	Ideality      float64 `toml:"ideality"`   // 0 = device default
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("load config: %w", err)
	}
	if len(cfg.Channels) == 0 {
		return fileConfig{}, errors.New("no channels configured")
	}
	for _, cc := range cfg.Channels {
		if !ltc2983.Channel(cc.Channel).Valid() {
			return fileConfig{}, fmt.Errorf("channel %d out of range 1..%d", cc.Channel, ltc2983.NumChannels)
		}
		if _, err := cc.probe(); err != nil {
			return fileConfig{}, fmt.Errorf("channel %d: %w", cc.Channel, err)
		}
	}
	return cfg, nil
}

func (d deviceConfig) opts() (*ltc2983.Opts, error) {
	opts := ltc2983.DefaultOptions()
	switch strings.ToLower(d.Filter) {
	case "", "both":
		opts.Filter = ltc2983.Reject50Hz60Hz
	case "50hz":
		opts.Filter = ltc2983.Reject50Hz
	case "60hz":
		opts.Filter = ltc2983.Reject60Hz
	default:
		return nil, fmt.Errorf("unknown filter %q", d.Filter)
	}
	if d.PollInterval != "" {
		v, err := time.ParseDuration(d.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("parse poll_interval: %w", err)
		}
		opts.PollInterval = v
	}
	if d.PollTimeout != "" {
		v, err := time.ParseDuration(d.PollTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse poll_timeout: %w", err)
		}
		opts.PollTimeout = v
	}
	return opts, nil
}

var tcTypes = map[string]ltc2983.ThermocoupleType{
	"J": ltc2983.TypeJ,
	"K": ltc2983.TypeK,
	"E": ltc2983.TypeE,
	"N": ltc2983.TypeN,
	"R": ltc2983.TypeR,
	"S": ltc2983.TypeS,
	"T": ltc2983.TypeT,
	"B": ltc2983.TypeB,
}

var ocCurrents = map[string]ltc2983.OcCurrent{
	"external": ltc2983.OcExternal,
	"10ua":     ltc2983.Oc10uA,
	"100ua":    ltc2983.Oc100uA,
	"500ua":    ltc2983.Oc500uA,
	"1ma":      ltc2983.Oc1mA,
}

var diodeCurrents = map[string]ltc2983.DiodeCurrent{
	"10ua": ltc2983.Diode10uA,
	"20ua": ltc2983.Diode20uA,
	"40ua": ltc2983.Diode40uA,
	"80ua": ltc2983.Diode80uA,
}

func sensorMode(singleEnded bool) ltc2983.SensorMode {
	if singleEnded {
		return ltc2983.SingleEnded
	}
	return ltc2983.Differential
}

// probe builds the typed probe description for one channel entry.
func (c channelConfig) probe() (ltc2983.Probe, error) {
	switch strings.ToLower(c.Probe) {
	case "thermocouple":
		tc, ok := tcTypes[strings.ToUpper(c.Type)]
		if !ok {
			return nil, fmt.Errorf("unknown thermocouple type %q", c.Type)
		}
		oc := ltc2983.Oc10uA
		if c.OcCurrent != "" {
			oc, ok = ocCurrents[strings.ToLower(c.OcCurrent)]
			if !ok {
				return nil, fmt.Errorf("unknown oc_current %q", c.OcCurrent)
			}
		}
		return ltc2983.Thermocouple{
			Type:          tc,
			ColdJunction:  ltc2983.Channel(c.ColdJunction),
			Mode:          sensorMode(c.SingleEnded),
			OcCurrent:     oc,
			CustomAddress: uint16(c.CustomAddress),
		}, nil

	case "sense-resistor":
		if c.Ohms <= 0 {
			return nil, fmt.Errorf("sense resistor needs ohms > 0, got %v", c.Ohms)
		}
		return ltc2983.SenseResistor{Ohms: c.Ohms}, nil

	case "diode":
		exc := ltc2983.Diode10uA
		if c.Excitation != "" {
			var ok bool
			exc, ok = diodeCurrents[strings.ToLower(c.Excitation)]
			if !ok {
				return nil, fmt.Errorf("unknown excitation %q", c.Excitation)
			}
		}
		return ltc2983.Diode{
			Mode:           sensorMode(c.SingleEnded),
			ThreeReadings:  c.ThreeReadings,
			Averaging:      c.Averaging,
			Excitation:     exc,
			IdealityFactor: c.Ideality,
		}, nil

	default:
		return nil, fmt.Errorf("unknown probe %q", c.Probe)
	}
}

// measured reports whether the channel produces a temperature reading
// of its own. Sense resistors only serve as references for other
// channels and are not converted directly.
func (c channelConfig) measured() bool {
	return strings.ToLower(c.Probe) != "sense-resistor"
}
