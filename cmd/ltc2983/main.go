package main

import (
	"flag"
	"os"
	"time"

	"github.com/mikesmitty/ltc2983"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func main() {
	configPath := flag.String("config", "ltc2983.toml", "Path to the channel map")
	interval := flag.Duration("interval", time.Second, "Time between measurement rounds")
	flag.Parse()

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", "ltc2983").Logger()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}
	opts, err := cfg.Device.opts()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	if _, err := host.Init(); err != nil {
		logger.Fatal().Err(err).Msg("host init failed")
	}

	sb, err := spireg.Open(cfg.Device.Port)
	if err != nil {
		logger.Fatal().Err(err).Str("port", cfg.Device.Port).Msg("spi open failed")
	}
	defer sb.Close()

	dev, err := ltc2983.New(sb, opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("device init failed")
	}

	var measured []ltc2983.Channel
	for _, cc := range cfg.Channels {
		probe, err := cc.probe()
		if err != nil {
			logger.Fatal().Err(err).Int("channel", cc.Channel).Msg("bad probe description")
		}
		ch := ltc2983.Channel(cc.Channel)
		if err := dev.SetupChannel(probe, ch); err != nil {
			logger.Fatal().Err(err).Int("channel", cc.Channel).Msg("channel setup failed")
		}
		logger.Info().Int("channel", cc.Channel).Str("probe", cc.Probe).Msg("channel configured")
		if cc.measured() {
			measured = append(measured, ch)
		}
	}
	if len(measured) == 0 {
		logger.Fatal().Msg("no measurable channels configured")
	}

	ticker := time.NewTicker(*interval)
	for {
		results, err := dev.ReadTemperatureMulti(measured)
		if err != nil {
			logger.Error().Err(err).Msg("conversion failed")
		}
		for i, r := range results {
			ev := logger.Info().
				Int("channel", int(measured[i])).
				Str("status", r.Fault.String())
			if r.Fault.HasReading() {
				ev = ev.Float64("celsius", r.Celsius)
			}
			ev.Msg("measurement")
		}

		<-ticker.C
	}
}
