package tnc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func examplePacket() *Packet {
	return &Packet{
		Dest:   Address{Callsign: "APN001"},
		Source: Address{Callsign: "XX0TST", SSID: 7},
		Path:   []Address{{Callsign: "WIDE2", SSID: 2}},
		Info:   []byte("!5221.20N/02043.85E# TEST"),
	}
}

func TestPack_WireSizeInvariant(t *testing.T) {
	p := examplePacket()
	b, err := Pack(p)
	require.NoError(t, err)
	assert.Equal(t, p.WireSize(), len(b))
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	p := examplePacket()
	b, err := Pack(p)
	require.NoError(t, err)

	got, err := Unpack(b)
	require.NoError(t, err)

	assert.Equal(t, p.Dest.Callsign, got.Dest.Callsign)
	assert.Equal(t, p.Source.Callsign, got.Source.Callsign)
	assert.Equal(t, p.Source.SSID, got.Source.SSID)
	require.Len(t, got.Path, len(p.Path))
	assert.Equal(t, p.Path[0].Callsign, got.Path[0].Callsign)
	assert.Equal(t, p.Path[0].SSID, got.Path[0].SSID)
	assert.Equal(t, byte(DefaultControl), got.Control)
	assert.Equal(t, byte(DefaultProtocol), got.Proto)
	assert.Equal(t, p.Info, got.Info)
}

func TestUnpack_TooShortReturnsError(t *testing.T) {
	_, err := Unpack(make([]byte, 10))
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestPack_RejectsTooManyPathAddresses(t *testing.T) {
	p := examplePacket()
	for i := 0; i < MaxPathAddresses; i++ {
		p.Path = append(p.Path, Address{Callsign: "RPT"})
	}
	_, err := Pack(p)
	assert.Error(t, err)
}

func randomCallsign(t *rapid.T) string {
	n := rapid.IntRange(1, 6).Draw(t, "len")
	chars := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rapid.IntRange(0, len(chars)-1).Draw(t, "ch")]
	}
	return string(b)
}

func TestPackUnpack_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pathLen := rapid.IntRange(0, MaxPathAddresses).Draw(rt, "pathLen")
		path := make([]Address, pathLen)
		for i := range path {
			path[i] = Address{
				Callsign: randomCallsign(rt),
				SSID:     rapid.IntRange(0, 15).Draw(rt, "ssid"),
				Repeated: rapid.Bool().Draw(rt, "rep"),
			}
		}
		infoLen := rapid.IntRange(0, 256).Draw(rt, "infoLen")
		info := make([]byte, infoLen)
		for i := range info {
			info[i] = byte(rapid.IntRange(0, 255).Draw(rt, "b"))
		}

		p := &Packet{
			Dest:    Address{Callsign: randomCallsign(rt), SSID: rapid.IntRange(0, 15).Draw(rt, "dssid")},
			Source:  Address{Callsign: randomCallsign(rt), SSID: rapid.IntRange(0, 15).Draw(rt, "sssid")},
			Path:    path,
			Control: DefaultControl,
			Proto:   DefaultProtocol,
			Info:    info,
		}

		b, err := Pack(p)
		require.NoError(rt, err)
		got, err := Unpack(b)
		require.NoError(rt, err)

		assert.Equal(rt, p.Dest.Callsign, got.Dest.Callsign)
		assert.Equal(rt, p.Dest.SSID, got.Dest.SSID)
		assert.Equal(rt, p.Source.Callsign, got.Source.Callsign)
		assert.Equal(rt, p.Source.SSID, got.Source.SSID)
		require.Len(rt, got.Path, len(p.Path))
		for i := range p.Path {
			assert.Equal(rt, p.Path[i].Callsign, got.Path[i].Callsign)
			assert.Equal(rt, p.Path[i].SSID, got.Path[i].SSID)
			assert.Equal(rt, p.Path[i].Repeated, got.Path[i].Repeated)
		}
		assert.Equal(rt, p.Info, got.Info)
	})
}
