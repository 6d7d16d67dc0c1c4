package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikesmitty/ltc2983"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := loadConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Device.Port != "SPI0.0" {
		t.Fatalf("unexpected port: %q", cfg.Device.Port)
	}
	opts, err := cfg.Device.opts()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Filter != ltc2983.Reject60Hz {
		t.Fatalf("unexpected filter: %v", opts.Filter)
	}
	if opts.PollInterval != 50*time.Millisecond || opts.PollTimeout != 2500*time.Millisecond {
		t.Fatalf("unexpected poll settings: %v / %v", opts.PollInterval, opts.PollTimeout)
	}
	if len(cfg.Channels) != 3 {
		t.Fatalf("unexpected channel count: %d", len(cfg.Channels))
	}

	p, err := cfg.Channels[1].probe()
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := p.(ltc2983.Thermocouple)
	if !ok {
		t.Fatalf("channel 2 probe is %T, want Thermocouple", p)
	}
	if tc.Type != ltc2983.TypeK || tc.ColdJunction != ltc2983.CH5 ||
		tc.Mode != ltc2983.SingleEnded || tc.OcCurrent != ltc2983.Oc10uA {
		t.Fatalf("unexpected thermocouple: %+v", tc)
	}

	if cfg.Channels[0].measured() {
		t.Fatal("sense resistor channel should not be measured")
	}
	if !cfg.Channels[1].measured() || !cfg.Channels[2].measured() {
		t.Fatal("thermocouple and diode channels should be measured")
	}
}

func TestLoadConfigRejectsBadEntries(t *testing.T) {
	for name, body := range map[string]string{
		"no channels": `[device]` + "\n" + `port = "SPI0.0"`,
		"bad channel number": `[[channels]]
channel = 21
probe = "diode"`,
		"unknown probe": `[[channels]]
channel = 1
probe = "rtd"`,
		"unknown thermocouple type": `[[channels]]
channel = 1
probe = "thermocouple"
type = "X"`,
		"sense resistor without ohms": `[[channels]]
channel = 1
probe = "sense-resistor"`,
	} {
		if _, err := loadConfig(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDeviceOptsRejectsBadValues(t *testing.T) {
	if _, err := (deviceConfig{Filter: "45hz"}).opts(); err == nil {
		t.Fatal("expected error for unknown filter")
	}
	if _, err := (deviceConfig{PollInterval: "fast"}).opts(); err == nil {
		t.Fatal("expected error for bad poll_interval")
	}
}
