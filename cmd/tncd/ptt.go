package main

/*------------------------------------------------------------------
 *
 * Purpose:	Push-to-talk keyers: a GPIO line or a serial port's
 *		RTS/DTR control line. tncd opens the configured keyer at
 *		startup (unkeyed) and closes it on exit; it does not call
 *		Key or Unkey around transmissions.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

// PTT keys/unkeys a transmitter through a GPIO output line, a serial
// port's RTS/DTR line, or nothing (nullPTT).
type PTT interface {
	Key() error
	Unkey() error
	Close() error
}

// nullPTT is used when no PTT method is configured.
type nullPTT struct{}

func (nullPTT) Key() error   { return nil }
func (nullPTT) Unkey() error { return nil }
func (nullPTT) Close() error { return nil }

// gpioPTT keys a transmitter by driving a gpiod line high/low.
type gpioPTT struct {
	line *gpiocdev.Line
}

// NewGPIOPTT opens line on chip as an output, initially unkeyed (low).
func NewGPIOPTT(chip string, line int) (PTT, error) {
	l, err := gpiocdev.RequestLine(chip, line, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("requesting gpio line %s:%d: %w", chip, line, err)
	}
	return &gpioPTT{line: l}, nil
}

func (p *gpioPTT) Key() error   { return p.line.SetValue(1) }
func (p *gpioPTT) Unkey() error { return p.line.SetValue(0) }
func (p *gpioPTT) Close() error { return p.line.Close() }

// serialPTT keys a transmitter by toggling the RTS or DTR modem control
// line of a serial port via TIOCMGET/TIOCMSET, the traditional way of
// wiring a TNC's PTT output.
type serialPTT struct {
	f   *os.File
	bit int
}

// NewSerialPTT opens device and prepares to toggle the given modem
// control line ("rts" or "dtr") for PTT.
func NewSerialPTT(device, line string) (PTT, error) {
	var bit int
	switch line {
	case "rts":
		bit = unix.TIOCM_RTS
	case "dtr":
		bit = unix.TIOCM_DTR
	default:
		return nil, fmt.Errorf("unknown serial ptt line %q (want rts or dtr)", line)
	}
	f, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening serial ptt device %s: %w", device, err)
	}
	p := &serialPTT{f: f, bit: bit}
	if err := p.setLine(false); err != nil {
		f.Close()
		return nil, err
	}
	return p, nil
}

func (p *serialPTT) setLine(on bool) error {
	fd := int(p.f.Fd())
	status, err := unix.IoctlGetInt(fd, unix.TIOCMGET)
	if err != nil {
		return fmt.Errorf("TIOCMGET: %w", err)
	}
	if on {
		status |= p.bit
	} else {
		status &^= p.bit
	}
	if err := unix.IoctlSetInt(fd, unix.TIOCMSET, status); err != nil {
		return fmt.Errorf("TIOCMSET: %w", err)
	}
	return nil
}

func (p *serialPTT) Key() error   { return p.setLine(true) }
func (p *serialPTT) Unkey() error { return p.setLine(false) }
func (p *serialPTT) Close() error { return p.f.Close() }

func newPTT(cfg Config) (PTT, error) {
	switch cfg.PTT.Method {
	case "", "none":
		return nullPTT{}, nil
	case "gpio":
		return NewGPIOPTT(cfg.PTT.Chip, cfg.PTT.Line)
	case "serial":
		return NewSerialPTT(cfg.PTT.SerialDevice, cfg.PTT.SerialLine)
	default:
		return nil, fmt.Errorf("unknown ptt method %q", cfg.PTT.Method)
	}
}
