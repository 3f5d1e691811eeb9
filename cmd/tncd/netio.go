package main

/*------------------------------------------------------------------
 *
 * Purpose:	Client transports: KISS over TCP/UDP/unix-socket/stdio/
 *		pty, and TNC2 monitor text over TCP. Each accepted
 *		connection gets its own KISS decoder (or, for TNC2, just
 *		writes lines); decoded data frames are handed to the
 *		modem for modulation and TX-ring playback.
 *
 * Description:	This is the I/O event loop named as out-of-core-scope
 *		in spec.md §1/§6; it lives in cmd/, using goroutines per
 *		connection rather than the teacher's select()-based loop,
 *		since Go's net package already multiplexes that way.
 *
 *---------------------------------------------------------------*/

import (
	"bufio"
	"io"
	"net"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/creack/pty"

	"github.com/w1tnc/packetmodem/internal/tnc"
)

// Hub fans decoded AX.25 frames out to every connected KISS/TNC2
// client, and accepts frames from any client for modulation.
type Hub struct {
	mu      sync.Mutex
	clients []chan []byte
	modem   *tnc.Modem
	txRing  *tnc.SampleRing
	logger  *log.Logger
}

func NewHub(modem *tnc.Modem, txRing *tnc.SampleRing, logger *log.Logger) *Hub {
	return &Hub{modem: modem, txRing: txRing, logger: logger}
}

// Broadcast delivers a received frame to every connected client.
func (h *Hub) Broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c <- frame:
		default: // slow client: drop rather than block the RX path
		}
	}
}

func (h *Hub) subscribe() chan []byte {
	c := make(chan []byte, 64)
	h.mu.Lock()
	h.clients = append(h.clients, c)
	h.mu.Unlock()
	return c
}

func (h *Hub) unsubscribe(c chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, cc := range h.clients {
		if cc == c {
			h.clients = append(h.clients[:i], h.clients[i+1:]...)
			break
		}
	}
}

// transmit modulates frame and enqueues its samples on the TX ring.
func (h *Hub) transmit(frame []byte) {
	samples, err := h.modem.Modulate(frame)
	if err != nil {
		h.logger.Warn("modulate failed", "err", err)
		return
	}
	h.txRing.Write(samples)
}

// ServeKISSTCP accepts KISS clients on addr until the listener is closed.
func (h *Hub) ServeKISSTCP(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go h.serveKISSConn(conn)
		}
	}()
	return nil
}

// ServeKISSUDP relays KISS data frames to/from UDP peers; received
// frames are sent only to the most recent peer that sent a datagram.
func (h *Hub) ServeKISSUDP(addr string) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}

	sub := h.subscribe()
	var peer net.Addr
	var peerMu sync.Mutex

	go func() {
		for frame := range sub {
			peerMu.Lock()
			p := peer
			peerMu.Unlock()
			if p == nil {
				continue
			}
			_, _ = conn.WriteTo(tnc.EncodeKISS(0, tnc.KISSCmdDataFrame, frame), p)
		}
	}()

	go func() {
		buf := make([]byte, 65536)
		var dec tnc.KISSDecoder
		for {
			n, from, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			peerMu.Lock()
			peer = from
			peerMu.Unlock()
			for _, b := range buf[:n] {
				if msg, ok := dec.DecodeByte(b); ok && msg.Cmd == tnc.KISSCmdDataFrame {
					h.transmit(msg.Data)
				}
			}
		}
	}()
	return nil
}

// ServeKISSUnix accepts KISS clients on a unix domain socket at path.
func (h *Hub) ServeKISSUnix(path string) error {
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go h.serveKISSConn(conn)
		}
	}()
	return nil
}

// ServeKISSStdio treats stdin/stdout as one KISS client for the
// process's lifetime.
func (h *Hub) ServeKISSStdio() {
	go h.serveKISSRW(os.Stdin, os.Stdout, io.NopCloser(nil))
}

// ServeKISSPTY exposes a KISS endpoint over a freshly allocated
// pseudo-terminal, symlinked at linkPath (the classic "kissattach over
// a pty" deployment).
func (h *Hub) ServeKISSPTY(linkPath string) error {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return err
	}
	_ = os.Remove(linkPath)
	if err := os.Symlink(tty.Name(), linkPath); err != nil {
		_ = ptmx.Close()
		_ = tty.Close()
		return err
	}
	go h.serveKISSRW(ptmx, ptmx, tty)
	return nil
}

func (h *Hub) serveKISSConn(conn net.Conn) {
	defer conn.Close()
	h.serveKISSRW(conn, conn, io.NopCloser(nil))
}

func (h *Hub) serveKISSRW(r io.Reader, w io.Writer, extra io.Closer) {
	defer extra.Close()
	sub := h.subscribe()
	defer h.unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for frame := range sub {
			if _, err := w.Write(tnc.EncodeKISS(0, tnc.KISSCmdDataFrame, frame)); err != nil {
				return
			}
		}
	}()

	var dec tnc.KISSDecoder
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, b := range buf[:n] {
				if msg, ok := dec.DecodeByte(b); ok && msg.Cmd == tnc.KISSCmdDataFrame {
					h.transmit(msg.Data)
				}
			}
		}
		if err != nil {
			break
		}
	}
	<-done
}

// ServeTNC2TCP accepts read-only TNC2 monitor-format text clients: one
// line per received frame.
func (h *Hub) ServeTNC2TCP(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go h.serveTNC2Conn(conn)
		}
	}()
	return nil
}

func (h *Hub) serveTNC2Conn(conn net.Conn) {
	defer conn.Close()
	sub := h.subscribe()
	defer h.unsubscribe(sub)

	bw := bufio.NewWriter(conn)
	for frame := range sub {
		p, err := tnc.Unpack(frame)
		if err != nil {
			h.logger.Warn("tnc2: dropping unparsable frame", "err", err)
			continue
		}
		if _, err := bw.WriteString(tnc.EncodeTNC2(p) + "\n"); err != nil {
			return
		}
		if err := bw.Flush(); err != nil {
			return
		}
	}
}
