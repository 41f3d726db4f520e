package monitor

// RSSIRing is a circular buffer over recent RSSI values, used for the
// rolling average shown alongside each reading.
type RSSIRing struct {
	buf   []float64
	pos   int
	count int
}

// NewRSSIRing creates a ring holding up to capacity values.
func NewRSSIRing(capacity int) *RSSIRing {
	return &RSSIRing{
		buf: make([]float64, capacity),
	}
}

// Push adds a value, overwriting the oldest once full.
func (r *RSSIRing) Push(val float64) {
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Average returns the mean of the stored values, or 0 when empty.
func (r *RSSIRing) Average() float64 {
	if r.count == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < r.count; i++ {
		sum += r.buf[i]
	}
	return sum / float64(r.count)
}

// Len returns the number of stored values.
func (r *RSSIRing) Len() int {
	return r.count
}
