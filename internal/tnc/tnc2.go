package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	TNC2 monitor-format text encoding and decoding.
 *
 * Grammar:	SOURCE[-SSID]>DEST[-SSID][,PATH[-SSID][*]]...:info
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeTNC2 renders p as one TNC2 monitor-format line, without a
// trailing newline.
func EncodeTNC2(p *Packet) string {
	var b strings.Builder
	b.WriteString(formatCallsign(p.Source))
	b.WriteByte('>')
	b.WriteString(formatCallsign(p.Dest))
	for _, addr := range p.Path {
		b.WriteByte(',')
		b.WriteString(formatCallsign(addr))
		if addr.Repeated {
			b.WriteByte('*')
		}
	}
	b.WriteByte(':')
	b.Write(p.Info)
	return b.String()
}

func formatCallsign(a Address) string {
	if a.SSID == 0 {
		return a.Callsign
	}
	return fmt.Sprintf("%s-%d", a.Callsign, a.SSID)
}

// DecodeTNC2 parses one TNC2 monitor-format line (no trailing
// newline) into a Packet.
func DecodeTNC2(line string) (*Packet, error) {
	header, info, ok := strings.Cut(line, ":")
	if !ok {
		return nil, fmt.Errorf("tnc: tnc2 line missing ':' separator")
	}
	if len(info) > MaxInfoLen {
		return nil, fmt.Errorf("tnc: tnc2 info length %d exceeds max %d", len(info), MaxInfoLen)
	}

	srcPart, rest, ok := strings.Cut(header, ">")
	if !ok {
		return nil, fmt.Errorf("tnc: tnc2 line missing '>' separator")
	}

	source, err := parseCallsign(srcPart, false)
	if err != nil {
		return nil, err
	}

	fields := strings.Split(rest, ",")
	dest, err := parseCallsign(fields[0], false)
	if err != nil {
		return nil, err
	}

	p := &Packet{
		Source:  source,
		Dest:    dest,
		Control: DefaultControl,
		Proto:   DefaultProtocol,
		Info:    []byte(info),
	}

	for _, field := range fields[1:] {
		if field == "" {
			continue
		}
		repeated := strings.HasSuffix(field, "*")
		field = strings.TrimSuffix(field, "*")
		addr, err := parseCallsign(field, true)
		if err != nil {
			return nil, err
		}
		addr.Repeated = repeated
		p.Path = append(p.Path, addr)
	}
	if len(p.Path) > MaxPathAddresses {
		return nil, fmt.Errorf("tnc: tnc2 line has %d path addresses, max %d", len(p.Path), MaxPathAddresses)
	}

	return p, nil
}

func parseCallsign(s string, allowStar bool) (Address, error) {
	call, ssidStr, hasSSID := strings.Cut(s, "-")
	if call == "" || len(call) > 6 {
		return Address{}, fmt.Errorf("tnc: invalid callsign %q", s)
	}
	for i := 0; i < len(call); i++ {
		c := call[i]
		if !isAlphanumeric(c) {
			return Address{}, fmt.Errorf("tnc: callsign %q contains non-alphanumeric character", call)
		}
	}

	ssid := 0
	if hasSSID {
		n, err := strconv.Atoi(ssidStr)
		if err != nil || n < 0 || n > 15 {
			return Address{}, fmt.Errorf("tnc: invalid SSID in %q", s)
		}
		ssid = n
	}

	return Address{Callsign: call, SSID: ssid}, nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
