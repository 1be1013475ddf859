package model

// priceRing is a fixed-capacity FIFO of accepted prices.
// Pushing onto a full ring evicts the oldest entry.
type priceRing struct {
	buf   []float64
	start int
	n     int
}

func newPriceRing(capacity int) *priceRing {
	if capacity < 1 {
		capacity = 1
	}
	return &priceRing{buf: make([]float64, capacity)}
}

func (r *priceRing) push(v float64) (evicted bool) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = v
		r.n++
		return false
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
	return true
}

func (r *priceRing) len() int { return r.n }

func (r *priceRing) last() (float64, bool) {
	if r.n == 0 {
		return 0, false
	}
	return r.buf[(r.start+r.n-1)%len(r.buf)], true
}

// tail returns up to k most recent entries, oldest first.
func (r *priceRing) tail(k int) []float64 {
	if k > r.n {
		k = r.n
	}
	if k < 0 {
		k = 0
	}
	out := make([]float64, k)
	first := r.n - k
	for i := 0; i < k; i++ {
		out[i] = r.buf[(r.start+first+i)%len(r.buf)]
	}
	return out
}

func (r *priceRing) values() []float64 {
	return r.tail(r.n)
}
