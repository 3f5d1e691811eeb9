package main

/*------------------------------------------------------------------
 *
 * Purpose:	Host configuration: sample rate, demodulator variants,
 *		TX timing, audio device, PTT method, and the set of
 *		KISS/TNC2 listeners to start.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/w1tnc/packetmodem/internal/tnc"
)

// Config is the on-disk YAML shape for tncd.
type Config struct {
	SampleRate float64  `yaml:"sample_rate"`
	Variants   []string `yaml:"demod_variants"`
	TXDelayMS  float64  `yaml:"tx_delay_ms"`
	TXTailMS   float64  `yaml:"tx_tail_ms"`

	AudioDevice string `yaml:"audio_device"`

	PTT struct {
		Method string `yaml:"method"` // "none", "gpio", or "serial"
		Chip   string `yaml:"gpio_chip"`
		Line   int    `yaml:"gpio_line"`

		SerialDevice string `yaml:"serial_device"` // e.g. /dev/ttyUSB0
		SerialLine   string `yaml:"serial_line"`    // "rts" or "dtr"
	} `yaml:"ptt"`

	Listeners struct {
		TCP    []string `yaml:"tcp"`    // host:port, KISS
		UDP    []string `yaml:"udp"`    // host:port, KISS
		Unix   []string `yaml:"unix"`   // path, KISS
		Stdio  bool     `yaml:"stdio"`  // KISS over stdin/stdout
		PTY    string   `yaml:"pty"`    // symlink path for a pty KISS endpoint
		TNC2TCP []string `yaml:"tnc2_tcp"` // host:port, text monitor format
	} `yaml:"listeners"`
}

func defaultConfig() Config {
	var c Config
	c.SampleRate = 48000
	c.Variants = []string{"goertzel-optimistic", "goertzel-pessimistic", "quadrature"}
	c.TXDelayMS = 300
	c.TXTailMS = 50
	c.PTT.Method = "none"
	return c
}

func loadConfig(path string) (Config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}

func (c Config) variantSet() (tnc.VariantSet, error) {
	var set tnc.VariantSet
	for _, name := range c.Variants {
		switch name {
		case "goertzel-optimistic":
			set = set.With(tnc.VariantGoertzelOptimistic)
		case "goertzel-pessimistic":
			set = set.With(tnc.VariantGoertzelPessimistic)
		case "quadrature":
			set = set.With(tnc.VariantQuadrature)
		default:
			return 0, fmt.Errorf("unknown demodulator variant %q", name)
		}
	}
	if set == 0 {
		set = tnc.AllVariants()
	}
	return set, nil
}
