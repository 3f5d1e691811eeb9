// Command tnccal generates a steady mark/space alternating tone for
// aligning transmit audio levels against a real radio, the same role
// main_cal.c plays in the original miniwolf source.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/pflag"

	"github.com/w1tnc/packetmodem/internal/tnc"
)

func main() {
	var (
		sampleRate = pflag.Float64("sample-rate", 48000, "sample rate in Hz")
		seconds    = pflag.Float64("seconds", 5, "duration in seconds")
		out        = pflag.StringP("out", "o", "", "raw float32 output path (stdout if empty)")
	)
	pflag.Parse()

	tones := tnc.DefaultBell202(*sampleRate)
	synth := tnc.NewSynth(*sampleRate)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "tnccal:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	samplesPerBit := int(tones.SampleRate / tones.BaudRate)
	total := int(*seconds * tones.SampleRate)

	bit := 1
	buf := make([]byte, 4)
	count := 0
	for count < total {
		freq := tones.SpaceFreq
		if bit == 1 {
			freq = tones.MarkFreq
		}
		for i := 0; i < samplesPerBit && count < total; i++ {
			v := synth.Next(freq)
			putFloat32LE(buf, v)
			if _, err := w.Write(buf); err != nil {
				fmt.Fprintln(os.Stderr, "tnccal:", err)
				os.Exit(1)
			}
			count++
		}
		bit ^= 1
	}
}

func putFloat32LE(buf []byte, v float32) {
	bits := math.Float32bits(v)
	buf[0] = byte(bits)
	buf[1] = byte(bits >> 8)
	buf[2] = byte(bits >> 16)
	buf[3] = byte(bits >> 24)
}
