// Command tncd is the soundcard TNC host: it wires the core modem
// (internal/tnc) to a real sound card, an optional PTT keyer, and
// a set of KISS/TNC2 client listeners.
package main

/*------------------------------------------------------------------
 *
 * Purpose:	Main program: load config, build the modem, open audio,
 *		start client listeners, run until interrupted.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/w1tnc/packetmodem/internal/tnc"
)

var frameReceived func(frame []byte)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tncd:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath    = pflag.StringP("config", "c", "", "path to tncd.yaml")
		sampleRateOpt = pflag.Float64("sample-rate", 0, "override configured sample rate")
		verbose       = pflag.BoolP("verbose", "v", false, "enable debug logging")
		listDevices   = pflag.Bool("list-audio-devices", false, "list sound cards and exit")
		listGPIO      = pflag.Bool("list-gpio-chips", false, "list gpio chips and exit")
	)
	pflag.Parse()

	if *listDevices {
		return listSoundCards()
	}
	if *listGPIO {
		return listGPIOChips()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *sampleRateOpt > 0 {
		cfg.SampleRate = *sampleRateOpt
	}

	variants, err := cfg.variantSet()
	if err != nil {
		return err
	}

	modem := tnc.NewModem(tnc.Config{
		SampleRate: cfg.SampleRate,
		Variants:   variants,
		TXDelayMS:  cfg.TXDelayMS,
		TXTailMS:   cfg.TXTailMS,
	})

	txRing := tnc.NewSampleRing(int(cfg.SampleRate)) // one second of headroom

	ptt, err := newPTT(cfg)
	if err != nil {
		return err
	}
	defer ptt.Close()

	hub := NewHub(modem, txRing, logger)
	frameReceived = hub.Broadcast

	if err := startListeners(hub, cfg, logger); err != nil {
		return err
	}

	audio, err := NewAudioDriver(cfg.AudioDevice, cfg.SampleRate, modem, txRing, logger)
	if err != nil {
		return fmt.Errorf("opening audio: %w", err)
	}
	defer audio.Close()

	if err := audio.Start(); err != nil {
		return fmt.Errorf("starting audio stream: %w", err)
	}
	logger.Info("tncd running", "sample_rate", cfg.SampleRate, "variants", cfg.Variants)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")
	return nil
}

func startListeners(hub *Hub, cfg Config, logger *log.Logger) error {
	for _, addr := range cfg.Listeners.TCP {
		if err := hub.ServeKISSTCP(addr); err != nil {
			return fmt.Errorf("kiss tcp %s: %w", addr, err)
		}
		logger.Info("kiss tcp listening", "addr", addr)
	}
	for _, addr := range cfg.Listeners.UDP {
		if err := hub.ServeKISSUDP(addr); err != nil {
			return fmt.Errorf("kiss udp %s: %w", addr, err)
		}
		logger.Info("kiss udp listening", "addr", addr)
	}
	for _, path := range cfg.Listeners.Unix {
		if err := hub.ServeKISSUnix(path); err != nil {
			return fmt.Errorf("kiss unix %s: %w", path, err)
		}
		logger.Info("kiss unix listening", "path", path)
	}
	if cfg.Listeners.Stdio {
		hub.ServeKISSStdio()
		logger.Info("kiss stdio enabled")
	}
	if cfg.Listeners.PTY != "" {
		if err := hub.ServeKISSPTY(cfg.Listeners.PTY); err != nil {
			return fmt.Errorf("kiss pty %s: %w", cfg.Listeners.PTY, err)
		}
		logger.Info("kiss pty listening", "link", cfg.Listeners.PTY)
	}
	for _, addr := range cfg.Listeners.TNC2TCP {
		if err := hub.ServeTNC2TCP(addr); err != nil {
			return fmt.Errorf("tnc2 tcp %s: %w", addr, err)
		}
		logger.Info("tnc2 tcp listening", "addr", addr)
	}
	return nil
}
