package main

/*------------------------------------------------------------------
 *
 * Purpose:	The sound-card collaborator: a PortAudio full-duplex
 *		stream feeding the core's demodulator bank and draining
 *		the core's modulator output through the SPSC TX ring.
 *
 * Description:	This is explicitly out of scope for the core per
 *		spec.md §1/§6 ("concrete audio I/O drivers ... are
 *		external collaborators"); it lives here in cmd/, not in
 *		internal/tnc.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"

	"github.com/w1tnc/packetmodem/internal/tnc"
)

// AudioDriver owns the full-duplex PortAudio stream.
type AudioDriver struct {
	stream *portaudio.Stream
	txRing *tnc.SampleRing
	modem  *tnc.Modem
	logger *log.Logger
}

// NewAudioDriver opens a full-duplex mono stream at sampleRate. An
// empty deviceName selects the host API's default input/output
// device.
func NewAudioDriver(deviceName string, sampleRate float64, modem *tnc.Modem, txRing *tnc.SampleRing, logger *log.Logger) (*AudioDriver, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	inDev, outDev, err := resolveDevices(deviceName)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	d := &AudioDriver{txRing: txRing, modem: modem, logger: logger}

	params := portaudio.LowLatencyParameters(inDev, outDev)
	params.Input.Channels = 1
	params.Output.Channels = 1
	params.SampleRate = sampleRate
	params.FramesPerBuffer = 256

	stream, err := portaudio.OpenStream(params, d.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening audio stream: %w", err)
	}
	d.stream = stream
	return d, nil
}

func resolveDevices(name string) (in, out *portaudio.DeviceInfo, err error) {
	if name == "" {
		in, err = portaudio.DefaultInputDevice()
		if err != nil {
			return nil, nil, err
		}
		out, err = portaudio.DefaultOutputDevice()
		return in, out, err
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, nil, err
	}
	for _, dev := range devices {
		if dev.Name == name {
			return dev, dev, nil
		}
	}
	return nil, nil, fmt.Errorf("audio device %q not found", name)
}

// callback is the PortAudio RX/TX callback: every in-sample is pushed
// through the modem's demodulator bank, and every out-sample is
// pulled from the TX ring (silence when empty).
func (d *AudioDriver) callback(in, out []float32) {
	if frame, ok := d.modem.Demodulate(in); ok {
		d.logger.Debug("demodulated frame", "bytes", len(frame))
		// Delivery to KISS/TNC2 listeners happens via the
		// frameReceived callback, set to the hub's Broadcast in main.go.
		frameReceived(frame)
	}

	n := d.txRing.Read(out)
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// Start begins streaming.
func (d *AudioDriver) Start() error { return d.stream.Start() }

// Close stops the stream and releases PortAudio.
func (d *AudioDriver) Close() error {
	if d.stream != nil {
		_ = d.stream.Stop()
		_ = d.stream.Close()
	}
	return portaudio.Terminate()
}
