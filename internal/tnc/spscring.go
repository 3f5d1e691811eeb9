package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Lock-free single-producer/single-consumer sample ring,
 *		the one piece of state shared across goroutines: it
 *		sits between the core producing TX samples and the
 *		audio driver consuming them.
 *
 * Description:	write_idx is only ever touched by the producer, read_idx
 *		only by the consumer; each publishes its index with a
 *		store-release observed via a load-acquire on the other
 *		side, which is all an SPSC ring needs.
 *
 *---------------------------------------------------------------*/

import "sync/atomic"

// SampleRing is a wait-free SPSC ring of float32 samples.
type SampleRing struct {
	buf      []float32
	writeIdx atomic.Uint64
	readIdx  atomic.Uint64
}

// NewSampleRing allocates a ring with room for capacity samples.
func NewSampleRing(capacity int) *SampleRing {
	return &SampleRing{buf: make([]float32, capacity)}
}

// Available reports how many samples are queued for the consumer.
func (r *SampleRing) Available() int {
	return int(r.writeIdx.Load() - r.readIdx.Load())
}

// Write enqueues samples, silently dropping whatever does not fit in
// the remaining capacity. Returns the number of samples accepted.
// Only the producer goroutine may call Write.
func (r *SampleRing) Write(samples []float32) int {
	free := len(r.buf) - r.Available()
	n := len(samples)
	if n > free {
		n = free
	}
	w := r.writeIdx.Load()
	cap := uint64(len(r.buf))
	for i := 0; i < n; i++ {
		r.buf[(w+uint64(i))%cap] = samples[i]
	}
	r.writeIdx.Store(w + uint64(n))
	return n
}

// Read dequeues up to len(out) samples, returning how many were read.
// Only the consumer goroutine may call Read.
func (r *SampleRing) Read(out []float32) int {
	avail := r.Available()
	n := len(out)
	if n > avail {
		n = avail
	}
	read := r.readIdx.Load()
	cap := uint64(len(r.buf))
	for i := 0; i < n; i++ {
		out[i] = r.buf[(read+uint64(i))%cap]
	}
	r.readIdx.Store(read + uint64(n))
	return n
}
