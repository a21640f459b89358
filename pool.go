package amrproj

// BufferPool reuses scratch grid buffers across rasterization passes.
// Buffers only ever grow: Acquire resizes a pooled buffer when the
// requested grid exceeds its capacity and otherwise hands back the
// same backing memory, zeroed. Pooled memory is never exposed through
// projection results.
//
// A BufferPool is single-owner state: each worker uses its own pool,
// so no locking exists. Do not share one pool across goroutines.
type BufferPool struct {
	free [][]float64
}

// NewBufferPool creates an empty pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{}
}

// Acquire returns a zeroed scratch buffer for an nx×ny grid. The
// buffer stays owned by the pool; hand it back with Release when the
// pass is done.
func (p *BufferPool) Acquire(nx, ny int) []float64 {
	need := nx * ny
	if n := len(p.free); n > 0 {
		buf := p.free[n-1]
		p.free = p.free[:n-1]
		if cap(buf) < need {
			Logger().Debug("amrproj: growing pooled buffer",
				"have", cap(buf), "need", need)
			buf = make([]float64, need)
		} else {
			buf = buf[:need]
			clear(buf)
		}
		return buf
	}
	return make([]float64, need)
}

// Release returns a buffer obtained from Acquire to the pool.
func (p *BufferPool) Release(buf []float64) {
	if buf == nil {
		return
	}
	p.free = append(p.free, buf[:cap(buf)])
}
